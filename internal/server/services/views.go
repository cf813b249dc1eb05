package services

import (
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/notemarket/internal/masking"
	"github.com/dmitrijs2005/notemarket/internal/server/models"
	"github.com/shopspring/decimal"
)

const (
	previewLength = 200
	previewSuffix = "..."
)

// ListingView is what callers see of a listing. FullContent is empty unless
// the viewer is entitled to it.
type ListingView struct {
	ID            string
	SellerID      string
	Title         string
	Description   string
	Preview       string
	FullContent   string
	Entitled      bool
	Price         decimal.Decimal
	SellerAddress string
	Status        models.ListingStatus
	ViewCount     int64
	PurchaseCount int64
	OwnedByViewer bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PurchaseHistoryView is one purchase as seen by its buyer or its seller.
type PurchaseHistoryView struct {
	ID            string
	ListingID     string
	ListingTitle  string
	Price         decimal.Decimal
	TxHash        string
	BuyerAddress  string
	SellerAddress string
	PurchasedAt   time.Time
}

// PurchaseReceipt is returned by a successful purchase.
type PurchaseReceipt struct {
	PurchaseID   string
	ListingID    string
	NoteID       string
	TxHash       string
	Price        decimal.Decimal
	BuyerAddress string
	PurchasedAt  time.Time
}

type TransactionView struct {
	ID               string
	TxHash           string
	SenderAddress    string
	RecipientAddress string
	Amount           decimal.Decimal
	NoteID           string
	NoteTitle        string
	NetworkID        string
	Metadata         string
	CreatedAt        time.Time
}

// ContentPreview returns the first 200 characters of content followed by an
// ellipsis, or content itself when it is not longer than that.
func ContentPreview(content string) string {
	if utf8.RuneCountInString(content) <= previewLength {
		return content
	}
	return string([]rune(content)[:previewLength]) + previewSuffix
}

func projectListing(l *models.Listing, viewerID string, entitled bool) *ListingView {
	own := l.SellerID == viewerID
	ownAddress := ""
	if own {
		ownAddress = l.SellerAddress
	}

	v := &ListingView{
		ID:            l.ID,
		SellerID:      l.SellerID,
		Title:         l.Title,
		Description:   l.Description,
		Preview:       ContentPreview(l.Content),
		Entitled:      entitled,
		Price:         l.Price,
		SellerAddress: masking.MaskForViewer(l.SellerAddress, ownAddress),
		Status:        l.Status,
		ViewCount:     l.ViewCount,
		PurchaseCount: l.PurchaseCount,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
		OwnedByViewer: own,
	}
	if entitled {
		v.FullContent = l.Content
	}
	return v
}

type purchaseSide int

const (
	buyerSide purchaseSide = iota
	sellerSide
)

// projectPurchase renders p for one of its parties. The viewer's own
// address is shown in full; the counterparty's is always masked, even when
// both parties used the same address.
func projectPurchase(p *models.Purchase, title string, side purchaseSide) *PurchaseHistoryView {
	v := &PurchaseHistoryView{
		ID:           p.ID,
		ListingID:    p.ListingID,
		ListingTitle: title,
		Price:        p.Price,
		TxHash:       p.TxHash,
		PurchasedAt:  p.PurchasedAt,
	}
	switch side {
	case buyerSide:
		v.BuyerAddress = masking.MaskForViewer(p.BuyerAddress, p.BuyerAddress)
		v.SellerAddress = masking.Mask(p.SellerAddress)
	case sellerSide:
		v.SellerAddress = masking.MaskForViewer(p.SellerAddress, p.SellerAddress)
		v.BuyerAddress = masking.Mask(p.BuyerAddress)
	}
	return v
}

// projectTransaction renders t for its owner. A standalone transaction
// shows both addresses the owner supplied; a purchase payment masks the
// seller's recipient address unless the owner paid themselves.
func projectTransaction(t *models.Transaction, noteTitle string, purchase bool) *TransactionView {
	recipient := t.RecipientAddress
	if purchase {
		recipient = masking.MaskForViewer(t.RecipientAddress, t.SenderAddress)
	}
	v := &TransactionView{
		ID:               t.ID,
		TxHash:           t.TxHash,
		SenderAddress:    t.SenderAddress,
		RecipientAddress: recipient,
		Amount:           t.Amount,
		NoteTitle:        noteTitle,
		Metadata:         t.Metadata,
		CreatedAt:        t.CreatedAt,
	}
	if t.NoteID != nil {
		v.NoteID = *t.NoteID
	}
	if t.NetworkID != nil {
		v.NetworkID = *t.NetworkID
	}
	return v
}
