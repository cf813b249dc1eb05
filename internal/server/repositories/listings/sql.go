package listings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notemarket/internal/common"
	"github.com/dmitrijs2005/notemarket/internal/dbx"
	"github.com/dmitrijs2005/notemarket/internal/server/models"
	"github.com/dmitrijs2005/notemarket/internal/timex"
	"github.com/google/uuid"
)

const listingColumns = `id, seller_id, title, description, content, price, seller_address,
	status, view_count, purchase_count, created_at, updated_at`

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanListing(s scanner) (*models.Listing, error) {
	var l models.Listing
	var status string
	if err := s.Scan(&l.ID, &l.SellerID, &l.Title, &l.Description, &l.Content, &l.Price, &l.SellerAddress,
		&status, &l.ViewCount, &l.PurchaseCount, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.Status = models.ListingStatus(status)
	return &l, nil
}

func (r *SQLRepository) Create(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	query := `
		INSERT INTO listings (id, seller_id, title, description, content, price, seller_address,
			status, view_count, purchase_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, $9, $10)`

	l := *listing
	l.ID = uuid.NewString()
	l.Status = models.ListingActive
	l.ViewCount, l.PurchaseCount = 0, 0
	l.CreatedAt = timex.Now()
	l.UpdatedAt = l.CreatedAt

	_, err := r.db.ExecContext(ctx, query, l.ID, l.SellerID, l.Title, l.Description, l.Content, l.Price,
		l.SellerAddress, string(l.Status), l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &l, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	l, err := scanListing(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *SQLRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Listing, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id IN (` + dbx.Placeholders(1, len(ids)) + `)`
	return r.list(ctx, query, args...)
}

func (r *SQLRepository) ListActive(ctx context.Context, excludeSellerID string) ([]*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings
		WHERE status = $1 AND seller_id <> $2
		ORDER BY created_at DESC, id`
	return r.list(ctx, query, string(models.ListingActive), excludeSellerID)
}

func (r *SQLRepository) ListBySeller(ctx context.Context, sellerID string) ([]*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings
		WHERE seller_id = $1
		ORDER BY created_at DESC, id`
	return r.list(ctx, query, sellerID)
}

func (r *SQLRepository) Search(ctx context.Context, pattern, excludeSellerID string) ([]*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings
		WHERE status = $1 AND seller_id <> $2
		  AND (LOWER(title) LIKE $3 ESCAPE '\' OR LOWER(description) LIKE $3 ESCAPE '\')
		ORDER BY created_at DESC, id`
	return r.list(ctx, query, string(models.ListingActive), excludeSellerID, pattern)
}

func (r *SQLRepository) list(ctx context.Context, query string, args ...any) ([]*models.Listing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) SellerAddresses(ctx context.Context, sellerID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT seller_address FROM listings WHERE seller_id = $1`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return nil, err
		}
		result = append(result, addr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) Update(ctx context.Context, listing *models.Listing) error {
	query := `
		UPDATE listings
		SET title = $1, description = $2, content = $3, price = $4, seller_address = $5, updated_at = $6
		WHERE id = $7`

	listing.UpdatedAt = timex.Now()
	return r.exec(ctx, query, listing.Title, listing.Description, listing.Content, listing.Price,
		listing.SellerAddress, listing.UpdatedAt, listing.ID)
}

func (r *SQLRepository) SetStatus(ctx context.Context, id string, status models.ListingStatus, at time.Time) error {
	return r.exec(ctx, `UPDATE listings SET status = $1, updated_at = $2 WHERE id = $3`, string(status), at, id)
}

func (r *SQLRepository) IncrementViewCount(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE listings SET view_count = view_count + 1 WHERE id = $1`, id)
}

func (r *SQLRepository) IncrementPurchaseCount(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE listings SET purchase_count = purchase_count + 1 WHERE id = $1`, id)
}

func (r *SQLRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
