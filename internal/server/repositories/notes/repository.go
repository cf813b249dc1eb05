// Package notes stores personal notes, including buyers' private copies of
// purchased listings.
package notes

import (
	"context"

	"github.com/dmitrijs2005/notemarket/internal/server/models"
)

// Repository is owner-scoped: lookups and writes that name a note not owned
// by userID behave as if the note did not exist.
type Repository interface {
	// Create inserts note, assigning ID and timestamps.
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	GetByID(ctx context.Context, id, userID string) (*models.Note, error)
	// ListByUser returns the user's notes, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Note, error)
	// SearchByTitle matches a LIKE pattern (see dbx.LikePattern) against lower(title).
	SearchByTitle(ctx context.Context, userID, pattern string) ([]*models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id, userID string) error
}
