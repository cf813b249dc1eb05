// Package users stores marketplace accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/notemarket/internal/server/models"
)

// Repository lookups return common.ErrorNotFound for unknown accounts.
type Repository interface {
	// Create assigns ID and CreatedAt. A taken username yields
	// common.ErrUsernameTaken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
