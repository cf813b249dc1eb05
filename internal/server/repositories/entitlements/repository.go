// Package entitlements records which users may read a listing's full
// content because they bought it. It is the identity-keyed companion of the
// address-keyed purchase ledger.
package entitlements

import (
	"context"

	"github.com/dmitrijs2005/notemarket/internal/server/models"
)

type Repository interface {
	// Create grants e. An existing grant for (listing, user) yields
	// common.ErrAlreadyPurchased.
	Create(ctx context.Context, e *models.Entitlement) error
	Exists(ctx context.Context, listingID, userID string) (bool, error)
}
