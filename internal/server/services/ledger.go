package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notemarket/internal/common"
	"github.com/dmitrijs2005/notemarket/internal/dbx"
	"github.com/dmitrijs2005/notemarket/internal/logging"
	"github.com/dmitrijs2005/notemarket/internal/server/models"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/purchases"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/notemarket/internal/timex"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const purchaseMetadataPrefix = "Marketplace purchase: "

// PurchaseRequest is a buyer's claim to have paid for a listing.
type PurchaseRequest struct {
	ListingID    string
	TxHash       string
	BuyerAddress string
	// Amount is the claimed payment. It is recorded on the transaction; the
	// purchase itself records the listing price at the time of purchase.
	Amount decimal.Decimal
}

// validate checks the payment claim. The listing id is checked separately
// since the listing has to be found before anything else is judged.
func (r PurchaseRequest) validate() error {
	switch {
	case strings.TrimSpace(r.TxHash) == "":
		return fmt.Errorf("%w: transaction hash is required", common.ErrValidation)
	case strings.TrimSpace(r.BuyerAddress) == "":
		return fmt.Errorf("%w: buyer address is required", common.ErrValidation)
	case !r.Amount.IsPositive():
		return fmt.Errorf("%w: amount must be positive", common.ErrValidation)
	}
	return nil
}

// LedgerService records purchases.
type LedgerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	evaluator   *EntitlementEvaluator
	logger      logging.Logger
}

func NewLedgerService(db *sql.DB, repomanager repomanager.RepositoryManager, logger logging.Logger) *LedgerService {
	return &LedgerService{
		db:          db,
		repomanager: repomanager,
		evaluator:   NewEntitlementEvaluator(repomanager),
		logger:      logger.With("module", "ledger"),
	}
}

// Purchase admits buyerID's purchase of a listing. The checks run in this
// order, each with its own error:
//
//	listing missing              common.ErrorNotFound
//	listing delisted             common.ErrListingUnavailable
//	buyer is the seller          common.ErrSelfPurchase
//	malformed payment claim      common.ErrValidation
//	buyer already owns it        common.ErrAlreadyPurchased
//	hash seen before             common.ErrDuplicateTransaction
//
// An empty listing id is a validation error. A seller buying their own
// active listing is rejected as a self purchase whatever the claim holds.
//
// On success the purchase record, the entitlement, the purchase counter,
// the buyer's private copy of the note and the transaction record are
// committed together; on failure none of them is.
func (s *LedgerService) Purchase(ctx context.Context, buyerID string, req PurchaseRequest) (*PurchaseReceipt, error) {
	if strings.TrimSpace(req.ListingID) == "" {
		return nil, fmt.Errorf("%w: listing id is required", common.ErrValidation)
	}

	receipt, err := dbx.InTxRetry(ctx, s.db, s.repomanager.TxOptions(), func(ctx context.Context, tx dbx.DBTX) (*PurchaseReceipt, error) {
		return s.purchase(ctx, tx, buyerID, req)
	})
	if err != nil {
		s.logRejection(ctx, buyerID, req, err)
		return nil, err
	}

	s.logger.Info(ctx, "purchase committed",
		"purchase_id", receipt.PurchaseID, "listing_id", receipt.ListingID, "buyer_id", buyerID)
	return receipt, nil
}

func (s *LedgerService) purchase(ctx context.Context, tx dbx.DBTX, buyerID string, req PurchaseRequest) (*PurchaseReceipt, error) {
	listings := s.repomanager.Listings(tx)
	purchases := s.repomanager.Purchases(tx)
	transactions := s.repomanager.Transactions(tx)

	listing, err := listings.GetByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if !listing.IsActive() {
		return nil, common.ErrListingUnavailable
	}
	if listing.SellerID == buyerID {
		return nil, common.ErrSelfPurchase
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	owned, err := s.evaluator.IsEntitled(ctx, tx, listing, buyerID)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, common.ErrAlreadyPurchased
	}

	if err := ensureUnusedHash(ctx, purchases, transactions, req.TxHash); err != nil {
		return nil, err
	}

	now := timex.Now()

	note, err := s.repomanager.Notes(tx).Create(ctx, &models.Note{
		UserID:  buyerID,
		Title:   listing.Title + common.PurchasedTitleSuffix,
		Content: listing.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("private copy: %w", err)
	}

	p := &models.Purchase{
		ID:            uuid.NewString(),
		ListingID:     listing.ID,
		Price:         listing.Price,
		TxHash:        req.TxHash,
		BuyerAddress:  req.BuyerAddress,
		SellerAddress: listing.SellerAddress,
		PurchasedAt:   now,
	}
	if err := purchases.Create(ctx, p); err != nil {
		return nil, err
	}

	if err := s.repomanager.Entitlements(tx).Create(ctx, &models.Entitlement{
		ListingID:  listing.ID,
		UserID:     buyerID,
		PurchaseID: p.ID,
		GrantedAt:  now,
	}); err != nil {
		return nil, err
	}

	if err := listings.IncrementPurchaseCount(ctx, listing.ID); err != nil {
		return nil, err
	}

	if err := transactions.Create(ctx, &models.Transaction{
		ID:               uuid.NewString(),
		TxHash:           req.TxHash,
		SenderAddress:    req.BuyerAddress,
		RecipientAddress: listing.SellerAddress,
		Amount:           req.Amount,
		UserID:           buyerID,
		NoteID:           &note.ID,
		Metadata:         purchaseMetadataPrefix + listing.Title,
		CreatedAt:        now,
	}); err != nil {
		return nil, err
	}

	return &PurchaseReceipt{
		PurchaseID:   p.ID,
		ListingID:    p.ListingID,
		NoteID:       note.ID,
		TxHash:       p.TxHash,
		Price:        p.Price,
		BuyerAddress: p.BuyerAddress,
		PurchasedAt:  p.PurchasedAt,
	}, nil
}

// ensureUnusedHash fails unless hash appears in neither the purchase ledger
// nor the transaction log.
func ensureUnusedHash(ctx context.Context, pr purchases.Repository, tr transactions.Repository, hash string) error {
	used, err := pr.ExistsByTxHash(ctx, hash)
	if err != nil {
		return err
	}
	if !used {
		if used, err = tr.ExistsByHash(ctx, hash); err != nil {
			return err
		}
	}
	if used {
		return common.ErrDuplicateTransaction
	}
	return nil
}

func (s *LedgerService) logRejection(ctx context.Context, buyerID string, req PurchaseRequest, err error) {
	args := []any{"listing_id", req.ListingID, "buyer_id", buyerID, "error", err}
	switch {
	case errors.Is(err, common.ErrAlreadyPurchased), errors.Is(err, common.ErrDuplicateTransaction):
		s.logger.Warn(ctx, "purchase rejected", args...)
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrListingUnavailable),
		errors.Is(err, common.ErrSelfPurchase), errors.Is(err, common.ErrValidation):
		s.logger.Info(ctx, "purchase rejected", args...)
	default:
		s.logger.Error(ctx, "purchase failed", args...)
	}
}
