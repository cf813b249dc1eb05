package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notemarket/internal/common"
	"github.com/dmitrijs2005/notemarket/internal/dbx"
	"github.com/dmitrijs2005/notemarket/internal/server/models"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notemarket/internal/timex"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionInput describes a payment recorded outside of a purchase.
type TransactionInput struct {
	TxHash           string
	SenderAddress    string
	RecipientAddress string
	Amount           decimal.Decimal
	NoteID           string
	NetworkID        string
	Metadata         string
}

func (in TransactionInput) validate() error {
	switch {
	case strings.TrimSpace(in.TxHash) == "":
		return fmt.Errorf("%w: transaction hash is required", common.ErrValidation)
	case strings.TrimSpace(in.SenderAddress) == "":
		return fmt.Errorf("%w: sender address is required", common.ErrValidation)
	case strings.TrimSpace(in.RecipientAddress) == "":
		return fmt.Errorf("%w: recipient address is required", common.ErrValidation)
	case !in.Amount.IsPositive():
		return fmt.Errorf("%w: amount must be positive", common.ErrValidation)
	}
	return nil
}

type TransactionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTransactionService(db *sql.DB, repomanager repomanager.RepositoryManager) *TransactionService {
	return &TransactionService{db: db, repomanager: repomanager}
}

// Record appends a payment to userID's log. The hash must be new to both
// the log and the purchase ledger, and a linked note must be userID's.
func (s *TransactionService) Record(ctx context.Context, userID string, in TransactionInput) (*TransactionView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	view, err := dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*TransactionView, error) {
		transactions := s.repomanager.Transactions(tx)

		if err := ensureUnusedHash(ctx, s.repomanager.Purchases(tx), transactions, in.TxHash); err != nil {
			return nil, err
		}

		t := &models.Transaction{
			ID:               uuid.NewString(),
			TxHash:           in.TxHash,
			SenderAddress:    in.SenderAddress,
			RecipientAddress: in.RecipientAddress,
			Amount:           in.Amount,
			UserID:           userID,
			Metadata:         in.Metadata,
			CreatedAt:        timex.Now(),
		}
		if in.NetworkID != "" {
			t.NetworkID = &in.NetworkID
		}

		var noteTitle string
		if in.NoteID != "" {
			note, err := s.repomanager.Notes(tx).GetByID(ctx, in.NoteID, userID)
			if err != nil {
				return nil, err
			}
			t.NoteID = &note.ID
			noteTitle = note.Title
		}

		if err := transactions.Create(ctx, t); err != nil {
			return nil, err
		}
		return projectTransaction(t, noteTitle, false), nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ListMine returns userID's transactions, newest first.
func (s *TransactionService) ListMine(ctx context.Context, userID string) ([]*TransactionView, error) {
	items, err := s.repomanager.Transactions(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return s.projectAll(ctx, userID, items)
}

// GetByHash returns common.ErrorUnauthorized when the transaction belongs
// to someone else.
func (s *TransactionService) GetByHash(ctx context.Context, hash, userID string) (*TransactionView, error) {
	t, err := s.repomanager.Transactions(s.db).GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, common.ErrorUnauthorized
	}

	views, err := s.projectAll(ctx, userID, []*models.Transaction{t})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// ListForNote returns the transactions linked to one of userID's notes.
func (s *TransactionService) ListForNote(ctx context.Context, noteID, userID string) ([]*TransactionView, error) {
	note, err := s.repomanager.Notes(s.db).GetByID(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.repomanager.Transactions(s.db).ListByNote(ctx, userID, note.ID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	purchased, err := s.purchaseHashes(ctx, items)
	if err != nil {
		return nil, err
	}

	views := make([]*TransactionView, 0, len(items))
	for _, t := range items {
		views = append(views, projectTransaction(t, note.Title, purchased[t.TxHash]))
	}
	return views, nil
}

func (s *TransactionService) projectAll(ctx context.Context, userID string, items []*models.Transaction) ([]*TransactionView, error) {
	purchased, err := s.purchaseHashes(ctx, items)
	if err != nil {
		return nil, err
	}

	notes := s.repomanager.Notes(s.db)
	titles := make(map[string]string)

	views := make([]*TransactionView, 0, len(items))
	for _, t := range items {
		var title string
		if t.NoteID != nil {
			cached, ok := titles[*t.NoteID]
			if !ok {
				n, err := notes.GetByID(ctx, *t.NoteID, userID)
				switch {
				case err == nil:
					cached = n.Title
				case !errors.Is(err, common.ErrorNotFound):
					return nil, fmt.Errorf("note title: %w", err)
				}
				titles[*t.NoteID] = cached
			}
			title = cached
		}
		views = append(views, projectTransaction(t, title, purchased[t.TxHash]))
	}
	return views, nil
}

// purchaseHashes reports which of items paid for a marketplace purchase.
func (s *TransactionService) purchaseHashes(ctx context.Context, items []*models.Transaction) (map[string]bool, error) {
	hashes := make([]string, 0, len(items))
	for _, t := range items {
		hashes = append(hashes, t.TxHash)
	}
	records, err := s.repomanager.Purchases(s.db).ListByTxHashes(ctx, hashes)
	if err != nil {
		return nil, fmt.Errorf("purchase lookup: %w", err)
	}
	out := make(map[string]bool, len(records))
	for _, p := range records {
		out[p.TxHash] = true
	}
	return out, nil
}
