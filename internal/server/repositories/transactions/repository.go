// Package transactions is the append-only log of claimed payments, keyed
// by transaction hash.
package transactions

import (
	"context"

	"github.com/dmitrijs2005/notemarket/internal/server/models"
)

type Repository interface {
	// Create appends t. A hash already in the log yields
	// common.ErrDuplicateTransaction.
	Create(ctx context.Context, t *models.Transaction) error
	ExistsByHash(ctx context.Context, txHash string) (bool, error)
	GetByHash(ctx context.Context, txHash string) (*models.Transaction, error)
	// ListByUser returns userID's transactions, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Transaction, error)
	ListByNote(ctx context.Context, userID, noteID string) ([]*models.Transaction, error)
	// HashesByUser returns every hash recorded by userID.
	HashesByUser(ctx context.Context, userID string) ([]string, error)
}
