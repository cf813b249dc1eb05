package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/notemarket/internal/common"
	"github.com/dmitrijs2005/notemarket/internal/dbx"
	"github.com/dmitrijs2005/notemarket/internal/server/models"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/repomanager"
)

// NoteService manages a user's personal notes. A note that is not the
// caller's is reported as common.ErrorNotFound.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, repomanager repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: repomanager}
}

func validateNote(title, content string) error {
	switch {
	case strings.TrimSpace(title) == "":
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	case utf8.RuneCountInString(title) > maxTitleLength:
		return fmt.Errorf("%w: title exceeds %d characters", common.ErrValidation, maxTitleLength)
	case utf8.RuneCountInString(content) > maxContentLength:
		return fmt.Errorf("%w: content exceeds %d characters", common.ErrValidation, maxContentLength)
	}
	return nil
}

func (s *NoteService) Create(ctx context.Context, userID, title, content string) (*models.Note, error) {
	if err := validateNote(title, content); err != nil {
		return nil, err
	}
	return s.repomanager.Notes(s.db).Create(ctx, &models.Note{UserID: userID, Title: title, Content: content})
}

func (s *NoteService) Get(ctx context.Context, id, userID string) (*models.Note, error) {
	return s.repomanager.Notes(s.db).GetByID(ctx, id, userID)
}

func (s *NoteService) List(ctx context.Context, userID string) ([]*models.Note, error) {
	return s.repomanager.Notes(s.db).ListByUser(ctx, userID)
}

func (s *NoteService) Search(ctx context.Context, userID, query string) ([]*models.Note, error) {
	return s.repomanager.Notes(s.db).SearchByTitle(ctx, userID, dbx.LikePattern(strings.TrimSpace(query)))
}

func (s *NoteService) Update(ctx context.Context, id, userID, title, content string) (*models.Note, error) {
	if err := validateNote(title, content); err != nil {
		return nil, err
	}

	note, err := dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Note, error) {
		notes := s.repomanager.Notes(tx)

		n, err := notes.GetByID(ctx, id, userID)
		if err != nil {
			return nil, err
		}
		n.Title = title
		n.Content = content
		if err := notes.Update(ctx, n); err != nil {
			return nil, err
		}
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// Delete removes a note. Transactions that referenced it keep their record
// and lose the link.
func (s *NoteService) Delete(ctx context.Context, id, userID string) error {
	return s.repomanager.Notes(s.db).Delete(ctx, id, userID)
}
