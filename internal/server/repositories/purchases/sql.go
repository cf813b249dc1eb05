package purchases

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notemarket/internal/common"
	"github.com/dmitrijs2005/notemarket/internal/dbx"
	"github.com/dmitrijs2005/notemarket/internal/server/models"
)

const purchaseColumns = `id, listing_id, price, tx_hash, buyer_address, seller_address, purchased_at`

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, p *models.Purchase) error {
	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query, p.ID, p.ListingID, p.Price, p.TxHash, p.BuyerAddress, p.SellerAddress, p.PurchasedAt)
	if err != nil {
		if _, ok := dbx.UniqueViolation(err); ok {
			return common.ErrDuplicateTransaction
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) ExistsByTxHash(ctx context.Context, txHash string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM purchases WHERE tx_hash = $1`, txHash).Scan(&n); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *SQLRepository) ListByTxHashes(ctx context.Context, hashes []string) ([]*models.Purchase, error) {
	return r.listIn(ctx, "tx_hash", hashes)
}

func (r *SQLRepository) ListBySellerAddresses(ctx context.Context, addresses []string) ([]*models.Purchase, error) {
	return r.listIn(ctx, "seller_address", addresses)
}

func (r *SQLRepository) listIn(ctx context.Context, column string, values []string) ([]*models.Purchase, error) {
	if len(values) == 0 {
		return nil, nil
	}
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	query := `SELECT ` + purchaseColumns + ` FROM purchases
		WHERE ` + column + ` IN (` + dbx.Placeholders(1, len(values)) + `)
		ORDER BY purchased_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Purchase
	for rows.Next() {
		var p models.Purchase
		if err := rows.Scan(&p.ID, &p.ListingID, &p.Price, &p.TxHash, &p.BuyerAddress, &p.SellerAddress, &p.PurchasedAt); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
