package entitlements

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notemarket/internal/common"
	"github.com/dmitrijs2005/notemarket/internal/dbx"
	"github.com/dmitrijs2005/notemarket/internal/server/models"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, e *models.Entitlement) error {
	query := `
		INSERT INTO entitlements (listing_id, user_id, purchase_id, granted_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, query, e.ListingID, e.UserID, e.PurchaseID, e.GrantedAt); err != nil {
		if _, ok := dbx.UniqueViolation(err); ok {
			return common.ErrAlreadyPurchased
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Exists(ctx context.Context, listingID, userID string) (bool, error) {
	query := `SELECT COUNT(*) FROM entitlements WHERE listing_id = $1 AND user_id = $2`

	var n int
	if err := r.db.QueryRowContext(ctx, query, listingID, userID).Scan(&n); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}
