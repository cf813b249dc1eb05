package client

import (
	"context"

	"github.com/dmitrijs2005/notemarket/internal/api"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) error
	Logout()
	LoggedIn() bool

	CreateListing(ctx context.Context, in api.ListingInput) (*api.Listing, error)
	ListListings(ctx context.Context) ([]*api.Listing, error)
	GetListing(ctx context.Context, id string) (*api.Listing, error)
	MyListings(ctx context.Context) ([]*api.Listing, error)
	SearchListings(ctx context.Context, query string) ([]*api.Listing, error)
	UpdateListing(ctx context.Context, id string, in api.ListingInput) (*api.Listing, error)
	DeleteListing(ctx context.Context, id string) error
	SellerAddress(ctx context.Context, listingID string) (string, error)
	Purchase(ctx context.Context, req api.PurchaseRequest) (*api.PurchaseReceipt, error)
	MyPurchases(ctx context.Context) ([]*api.Listing, error)
	BuyerHistory(ctx context.Context) ([]*api.PurchaseRecord, error)
	SellerHistory(ctx context.Context) ([]*api.PurchaseRecord, error)
	ExportSales(ctx context.Context) (*api.SalesReport, error)

	CreateNote(ctx context.Context, title, content string) (*api.Note, error)
	ListNotes(ctx context.Context) ([]*api.Note, error)
	GetNote(ctx context.Context, id string) (*api.Note, error)
	UpdateNote(ctx context.Context, id, title, content string) (*api.Note, error)
	DeleteNote(ctx context.Context, id string) error
	SearchNotes(ctx context.Context, query string) ([]*api.Note, error)

	RecordTransaction(ctx context.Context, req api.RecordTransactionRequest) (*api.Transaction, error)
	ListTransactions(ctx context.Context) ([]*api.Transaction, error)
	GetTransaction(ctx context.Context, txHash string) (*api.Transaction, error)
	NoteTransactions(ctx context.Context, noteID string) ([]*api.Transaction, error)
}
