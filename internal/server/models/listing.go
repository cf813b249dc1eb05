package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListingStatus is the lifecycle state of a Listing.
type ListingStatus string

const (
	ListingActive   ListingStatus = "active"
	ListingDelisted ListingStatus = "delisted"
)

// Listing is a note offered for sale. Listings are never hard-deleted;
// the seller delists them instead.
type Listing struct {
	ID            string
	SellerID      string
	Title         string
	Description   string
	Content       string
	Price         decimal.Decimal
	SellerAddress string
	Status        ListingStatus
	ViewCount     int64
	PurchaseCount int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (l *Listing) IsActive() bool {
	return l.Status == ListingActive
}
