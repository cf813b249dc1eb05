package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is an immutable ledger entry. It carries payment addresses only;
// the buyer's identity is linked through Entitlement and the buyer's
// Transaction with the same hash.
type Purchase struct {
	ID            string
	ListingID     string
	Price         decimal.Decimal
	TxHash        string
	BuyerAddress  string
	SellerAddress string
	PurchasedAt   time.Time
}

// Entitlement grants UserID access to the full content of ListingID.
// At most one exists per (listing, user).
type Entitlement struct {
	ListingID  string
	UserID     string
	PurchaseID string
	GrantedAt  time.Time
}
