package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notemarket/internal/dbx"
	"github.com/dmitrijs2005/notemarket/internal/server/models"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/repomanager"
)

// EntitlementEvaluator decides whether a viewer may read a listing's full
// content: the seller always may, anyone else only after buying it.
type EntitlementEvaluator struct {
	repomanager repomanager.RepositoryManager
}

func NewEntitlementEvaluator(repomanager repomanager.RepositoryManager) *EntitlementEvaluator {
	return &EntitlementEvaluator{repomanager: repomanager}
}

// IsEntitled reads through db, so it sees uncommitted grants when db is a
// transaction. Delisting or editing a listing does not revoke a grant.
func (e *EntitlementEvaluator) IsEntitled(ctx context.Context, db dbx.DBTX, listing *models.Listing, viewerID string) (bool, error) {
	if viewerID == "" {
		return false, nil
	}
	if listing.SellerID == viewerID {
		return true, nil
	}

	ok, err := e.repomanager.Entitlements(db).Exists(ctx, listing.ID, viewerID)
	if err != nil {
		return false, fmt.Errorf("entitlement lookup: %w", err)
	}
	return ok, nil
}

// project gates l's content for viewerID.
func (e *EntitlementEvaluator) project(ctx context.Context, db dbx.DBTX, l *models.Listing, viewerID string) (*ListingView, error) {
	entitled, err := e.IsEntitled(ctx, db, l, viewerID)
	if err != nil {
		return nil, err
	}
	return projectListing(l, viewerID, entitled), nil
}
