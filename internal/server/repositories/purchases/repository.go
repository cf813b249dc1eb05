// Package purchases is the append-only purchase ledger. Records are keyed
// by payment addresses and transaction hash, never by user identity.
package purchases

import (
	"context"

	"github.com/dmitrijs2005/notemarket/internal/server/models"
)

type Repository interface {
	// Create appends p. A hash already in the ledger yields
	// common.ErrDuplicateTransaction.
	Create(ctx context.Context, p *models.Purchase) error
	ExistsByTxHash(ctx context.Context, txHash string) (bool, error)
	ListByTxHashes(ctx context.Context, hashes []string) ([]*models.Purchase, error)
	ListBySellerAddresses(ctx context.Context, addresses []string) ([]*models.Purchase, error)
}
