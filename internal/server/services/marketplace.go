package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/notemarket/internal/common"
	"github.com/dmitrijs2005/notemarket/internal/dbx"
	"github.com/dmitrijs2005/notemarket/internal/logging"
	"github.com/dmitrijs2005/notemarket/internal/server/models"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/listings"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notemarket/internal/timex"
	"github.com/shopspring/decimal"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 500
	maxContentLength     = 10000
)

// ListingInput carries the seller-editable fields of a listing.
type ListingInput struct {
	Title         string
	Description   string
	Content       string
	Price         decimal.Decimal
	SellerAddress string
}

func (in ListingInput) validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	case utf8.RuneCountInString(in.Title) > maxTitleLength:
		return fmt.Errorf("%w: title exceeds %d characters", common.ErrValidation, maxTitleLength)
	case utf8.RuneCountInString(in.Description) > maxDescriptionLength:
		return fmt.Errorf("%w: description exceeds %d characters", common.ErrValidation, maxDescriptionLength)
	case strings.TrimSpace(in.Content) == "":
		return fmt.Errorf("%w: content is required", common.ErrValidation)
	case utf8.RuneCountInString(in.Content) > maxContentLength:
		return fmt.Errorf("%w: content exceeds %d characters", common.ErrValidation, maxContentLength)
	case !in.Price.IsPositive():
		return fmt.Errorf("%w: price must be positive", common.ErrValidation)
	case strings.TrimSpace(in.SellerAddress) == "":
		return fmt.Errorf("%w: seller address is required", common.ErrValidation)
	}
	return nil
}

// MarketplaceService is the listing catalog. Every method returns
// projections gated by the entitlement evaluator.
type MarketplaceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	evaluator   *EntitlementEvaluator
	logger      logging.Logger
}

func NewMarketplaceService(db *sql.DB, repomanager repomanager.RepositoryManager, logger logging.Logger) *MarketplaceService {
	return &MarketplaceService{
		db:          db,
		repomanager: repomanager,
		evaluator:   NewEntitlementEvaluator(repomanager),
		logger:      logger.With("module", "marketplace"),
	}
}

func (s *MarketplaceService) CreateListing(ctx context.Context, sellerID string, in ListingInput) (*ListingView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	l, err := s.repomanager.Listings(s.db).Create(ctx, &models.Listing{
		SellerID:      sellerID,
		Title:         in.Title,
		Description:   in.Description,
		Content:       in.Content,
		Price:         in.Price,
		SellerAddress: in.SellerAddress,
	})
	if err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}

	s.logger.Info(ctx, "listing created", "listing_id", l.ID, "seller_id", sellerID)
	return projectListing(l, sellerID, true), nil
}

// ListActive returns every active listing the viewer is not selling.
func (s *MarketplaceService) ListActive(ctx context.Context, viewerID string) ([]*ListingView, error) {
	items, err := s.repomanager.Listings(s.db).ListActive(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list active: %w", err)
	}
	return s.projectAll(ctx, items, viewerID)
}

// Search matches query case-insensitively against title and description of
// active listings the viewer is not selling.
func (s *MarketplaceService) Search(ctx context.Context, query, viewerID string) ([]*ListingView, error) {
	items, err := s.repomanager.Listings(s.db).Search(ctx, dbx.LikePattern(strings.TrimSpace(query)), viewerID)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return s.projectAll(ctx, items, viewerID)
}

// GetListing counts a view and returns the listing. The view counter is
// best effort: a failed increment is logged and the read proceeds.
func (s *MarketplaceService) GetListing(ctx context.Context, id, viewerID string) (*ListingView, error) {
	repo := s.repomanager.Listings(s.db)

	if err := repo.IncrementViewCount(ctx, id); err != nil && !errors.Is(err, common.ErrorNotFound) {
		s.logger.Warn(ctx, "view count not incremented", "listing_id", id, "error", err)
	}

	l, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.evaluator.project(ctx, s.db, l, viewerID)
}

// MyListings returns the seller's listings in every status.
func (s *MarketplaceService) MyListings(ctx context.Context, sellerID string) ([]*ListingView, error) {
	items, err := s.repomanager.Listings(s.db).ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("my listings: %w", err)
	}

	views := make([]*ListingView, 0, len(items))
	for _, l := range items {
		views = append(views, projectListing(l, sellerID, true))
	}
	return views, nil
}

// UpdateListing edits a listing in place. Buyers' private copies keep the
// content they were made from.
func (s *MarketplaceService) UpdateListing(ctx context.Context, id, sellerID string, in ListingInput) (*ListingView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	updated, err := dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Listing, error) {
		repo := s.repomanager.Listings(tx)

		l, err := ownedListing(ctx, repo, id, sellerID)
		if err != nil {
			return nil, err
		}

		l.Title = in.Title
		l.Description = in.Description
		l.Content = in.Content
		l.Price = in.Price
		l.SellerAddress = in.SellerAddress
		if err := repo.Update(ctx, l); err != nil {
			return nil, err
		}
		return l, nil
	})
	if err != nil {
		return nil, err
	}

	return projectListing(updated, sellerID, true), nil
}

// DeleteListing delists a listing. The record, its purchases and every
// buyer's entitlement remain.
func (s *MarketplaceService) DeleteListing(ctx context.Context, id, sellerID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Listings(tx)

		l, err := ownedListing(ctx, repo, id, sellerID)
		if err != nil {
			return err
		}
		if !l.IsActive() {
			return nil
		}

		if err := repo.SetStatus(ctx, id, models.ListingDelisted, timex.Now()); err != nil {
			return err
		}
		s.logger.Info(ctx, "listing delisted", "listing_id", id)
		return nil
	})
}

// MyPurchases returns every listing the buyer bought, with full content.
// Purchases are attributed to the buyer through the transaction hashes the
// buyer recorded.
func (s *MarketplaceService) MyPurchases(ctx context.Context, buyerID string) ([]*ListingView, error) {
	hashes, err := s.repomanager.Transactions(s.db).HashesByUser(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("my purchases: %w", err)
	}

	bought, err := s.repomanager.Purchases(s.db).ListByTxHashes(ctx, hashes)
	if err != nil {
		return nil, fmt.Errorf("my purchases: %w", err)
	}

	byID, err := s.listingsByID(ctx, bought)
	if err != nil {
		return nil, fmt.Errorf("my purchases: %w", err)
	}

	views := make([]*ListingView, 0, len(bought))
	seen := make(map[string]bool, len(bought))
	for _, p := range bought {
		l, ok := byID[p.ListingID]
		if !ok || seen[l.ID] {
			continue
		}
		seen[l.ID] = true

		v, err := s.evaluator.project(ctx, s.db, l, buyerID)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// SellerAddressForPurchase returns the full payment address a buyer has to
// pay to.
func (s *MarketplaceService) SellerAddressForPurchase(ctx context.Context, id, viewerID string) (string, error) {
	l, err := s.repomanager.Listings(s.db).GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	switch {
	case !l.IsActive():
		return "", common.ErrListingUnavailable
	case l.SellerID == viewerID:
		return "", common.ErrSelfPurchase
	}
	return l.SellerAddress, nil
}

func ownedListing(ctx context.Context, repo listings.Repository, id, sellerID string) (*models.Listing, error) {
	l, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.SellerID != sellerID {
		return nil, common.ErrorUnauthorized
	}
	return l, nil
}

func (s *MarketplaceService) listingsByID(ctx context.Context, bought []*models.Purchase) (map[string]*models.Listing, error) {
	ids := make([]string, 0, len(bought))
	for _, p := range bought {
		ids = append(ids, p.ListingID)
	}

	items, err := s.repomanager.Listings(s.db).GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Listing, len(items))
	for _, l := range items {
		byID[l.ID] = l
	}
	return byID, nil
}

func (s *MarketplaceService) projectAll(ctx context.Context, items []*models.Listing, viewerID string) ([]*ListingView, error) {
	views := make([]*ListingView, 0, len(items))
	for _, l := range items {
		v, err := s.evaluator.project(ctx, s.db, l, viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}
