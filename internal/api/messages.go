package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type Empty struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ByID struct {
	ID string `json:"id"`
}

type Query struct {
	Query string `json:"query"`
}

// Listing is a listing as the caller is allowed to see it. FullContent is
// empty unless Entitled.
type Listing struct {
	ID            string          `json:"id"`
	SellerID      string          `json:"seller_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Preview       string          `json:"preview"`
	FullContent   string          `json:"full_content,omitempty"`
	Entitled      bool            `json:"entitled"`
	Price         decimal.Decimal `json:"price"`
	SellerAddress string          `json:"seller_address"`
	Status        string          `json:"status"`
	ViewCount     int64           `json:"view_count"`
	PurchaseCount int64           `json:"purchase_count"`
	OwnedByViewer bool            `json:"owned_by_viewer"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type ListingInput struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Content       string          `json:"content"`
	Price         decimal.Decimal `json:"price"`
	SellerAddress string          `json:"seller_address"`
}

type UpdateListingRequest struct {
	ID      string       `json:"id"`
	Listing ListingInput `json:"listing"`
}

type ListingResponse struct {
	Listing *Listing `json:"listing"`
}

type ListingsResponse struct {
	Listings []*Listing `json:"listings"`
}

type SellerAddressResponse struct {
	Address string `json:"address"`
}

type PurchaseRequest struct {
	ListingID    string          `json:"listing_id"`
	TxHash       string          `json:"tx_hash"`
	BuyerAddress string          `json:"buyer_address"`
	Amount       decimal.Decimal `json:"amount"`
}

type PurchaseReceipt struct {
	PurchaseID   string          `json:"purchase_id"`
	ListingID    string          `json:"listing_id"`
	NoteID       string          `json:"note_id"`
	TxHash       string          `json:"tx_hash"`
	Price        decimal.Decimal `json:"price"`
	BuyerAddress string          `json:"buyer_address"`
	PurchasedAt  time.Time       `json:"purchased_at"`
}

type PurchaseRecord struct {
	ID            string          `json:"id"`
	ListingID     string          `json:"listing_id"`
	ListingTitle  string          `json:"listing_title"`
	Price         decimal.Decimal `json:"price"`
	TxHash        string          `json:"tx_hash"`
	BuyerAddress  string          `json:"buyer_address"`
	SellerAddress string          `json:"seller_address"`
	PurchasedAt   time.Time       `json:"purchased_at"`
}

type HistoryResponse struct {
	Purchases []*PurchaseRecord `json:"purchases"`
}

type SalesReport struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Rows int    `json:"rows"`
}

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateNoteRequest struct {
	ID   string    `json:"id"`
	Note NoteInput `json:"note"`
}

type NoteResponse struct {
	Note *Note `json:"note"`
}

type NotesResponse struct {
	Notes []*Note `json:"notes"`
}

type Transaction struct {
	ID               string          `json:"id"`
	TxHash           string          `json:"tx_hash"`
	SenderAddress    string          `json:"sender_address"`
	RecipientAddress string          `json:"recipient_address"`
	Amount           decimal.Decimal `json:"amount"`
	NoteID           string          `json:"note_id,omitempty"`
	NoteTitle        string          `json:"note_title,omitempty"`
	NetworkID        string          `json:"network_id,omitempty"`
	Metadata         string          `json:"metadata,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

type RecordTransactionRequest struct {
	TxHash           string          `json:"tx_hash"`
	SenderAddress    string          `json:"sender_address"`
	RecipientAddress string          `json:"recipient_address"`
	Amount           decimal.Decimal `json:"amount"`
	NoteID           string          `json:"note_id,omitempty"`
	NetworkID        string          `json:"network_id,omitempty"`
	Metadata         string          `json:"metadata,omitempty"`
}

type TransactionByHash struct {
	TxHash string `json:"tx_hash"`
}

type TransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type TransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}
