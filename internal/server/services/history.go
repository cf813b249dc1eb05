package services

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/notemarket/internal/server/models"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/repomanager"
)

// HistoryService renders the purchase ledger for the two parties of a
// purchase. Purchase records carry addresses only; a buyer is linked to a
// purchase through the transaction hashes the buyer recorded, a seller
// through the payment addresses on the seller's listings.
type HistoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewHistoryService(db *sql.DB, repomanager repomanager.RepositoryManager) *HistoryService {
	return &HistoryService{db: db, repomanager: repomanager}
}

// BuyerHistory shows the buyer's own address in full and the seller's
// masked, newest first.
func (s *HistoryService) BuyerHistory(ctx context.Context, buyerID string) ([]*PurchaseHistoryView, error) {
	hashes, err := s.repomanager.Transactions(s.db).HashesByUser(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("buyer history: %w", err)
	}

	bought, err := s.repomanager.Purchases(s.db).ListByTxHashes(ctx, hashes)
	if err != nil {
		return nil, fmt.Errorf("buyer history: %w", err)
	}

	return s.project(ctx, bought, buyerSide)
}

// SellerHistory shows the seller's own address in full and the buyer's
// masked, newest first.
func (s *HistoryService) SellerHistory(ctx context.Context, sellerID string) ([]*PurchaseHistoryView, error) {
	addresses, err := s.repomanager.Listings(s.db).SellerAddresses(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("seller history: %w", err)
	}

	sold, err := s.repomanager.Purchases(s.db).ListBySellerAddresses(ctx, addresses)
	if err != nil {
		return nil, fmt.Errorf("seller history: %w", err)
	}

	return s.project(ctx, sold, sellerSide)
}

// project de-duplicates records by id, orders them newest first and renders
// them for the given side of the purchase.
func (s *HistoryService) project(ctx context.Context, records []*models.Purchase, side purchaseSide) ([]*PurchaseHistoryView, error) {
	seen := make(map[string]bool, len(records))
	unique := make([]*models.Purchase, 0, len(records))
	ids := make([]string, 0, len(records))
	for _, p := range records {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		unique = append(unique, p)
		ids = append(ids, p.ListingID)
	}

	slices.SortStableFunc(unique, func(a, b *models.Purchase) int {
		if c := b.PurchasedAt.Compare(a.PurchasedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	listed, err := s.repomanager.Listings(s.db).GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("listing titles: %w", err)
	}
	titles := make(map[string]string, len(listed))
	for _, l := range listed {
		titles[l.ID] = l.Title
	}

	views := make([]*PurchaseHistoryView, 0, len(unique))
	for _, p := range unique {
		views = append(views, projectPurchase(p, titles[p.ListingID], side))
	}
	return views, nil
}
