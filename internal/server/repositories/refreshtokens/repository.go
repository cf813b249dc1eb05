// Package refreshtokens persists login sessions as single-use opaque tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/notemarket/internal/server/models"
)

type Repository interface {
	// Create issues token to userID, valid until now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error
	// Find returns common.ErrorNotFound for unknown tokens.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	// Delete is idempotent.
	Delete(ctx context.Context, token string) error
}
