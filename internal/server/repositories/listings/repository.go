// Package listings is the catalog store behind the marketplace.
package listings

import (
	"context"
	"time"

	"github.com/dmitrijs2005/notemarket/internal/server/models"
)

type Repository interface {
	// Create inserts an active listing, assigning ID and timestamps.
	Create(ctx context.Context, listing *models.Listing) (*models.Listing, error)
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	// GetByIDs returns the listings that exist among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]*models.Listing, error)
	// ListActive returns active listings not sold by excludeSellerID, newest first.
	ListActive(ctx context.Context, excludeSellerID string) ([]*models.Listing, error)
	// ListBySeller returns every listing of sellerID regardless of status, newest first.
	ListBySeller(ctx context.Context, sellerID string) ([]*models.Listing, error)
	// Search matches a LIKE pattern against lower(title) and lower(description)
	// of active listings not sold by excludeSellerID.
	Search(ctx context.Context, pattern, excludeSellerID string) ([]*models.Listing, error)
	// SellerAddresses returns each distinct payment address sellerID has used.
	SellerAddresses(ctx context.Context, sellerID string) ([]string, error)
	Update(ctx context.Context, listing *models.Listing) error
	SetStatus(ctx context.Context, id string, status models.ListingStatus, at time.Time) error
	IncrementViewCount(ctx context.Context, id string) error
	IncrementPurchaseCount(ctx context.Context, id string) error
}
