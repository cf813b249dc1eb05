package grpc

import (
	"context"

	"github.com/dmitrijs2005/notemarket/internal/api"
	"github.com/dmitrijs2005/notemarket/internal/server/services"
)

func (s *GRPCServer) CreateListing(ctx context.Context, req *api.ListingInput) (*api.ListingResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	v, err := s.services.Marketplace.CreateListing(ctx, userID, fromListingInput(*req))
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.ListingResponse{Listing: toListing(v)}, nil
}

func (s *GRPCServer) ListListings(ctx context.Context, req *api.Empty) (*api.ListingsResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.services.Marketplace.ListActive(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return toListings(views), nil
}

func (s *GRPCServer) GetListing(ctx context.Context, req *api.ByID) (*api.ListingResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	v, err := s.services.Marketplace.GetListing(ctx, req.ID, userID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.ListingResponse{Listing: toListing(v)}, nil
}

func (s *GRPCServer) MyListings(ctx context.Context, req *api.Empty) (*api.ListingsResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.services.Marketplace.MyListings(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return toListings(views), nil
}

func (s *GRPCServer) SearchListings(ctx context.Context, req *api.Query) (*api.ListingsResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.services.Marketplace.Search(ctx, req.Query, userID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return toListings(views), nil
}

func (s *GRPCServer) UpdateListing(ctx context.Context, req *api.UpdateListingRequest) (*api.ListingResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	v, err := s.services.Marketplace.UpdateListing(ctx, req.ID, userID, fromListingInput(req.Listing))
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.ListingResponse{Listing: toListing(v)}, nil
}

func (s *GRPCServer) DeleteListing(ctx context.Context, req *api.ByID) (*api.Empty, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Marketplace.DeleteListing(ctx, req.ID, userID); err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) SellerAddress(ctx context.Context, req *api.ByID) (*api.SellerAddressResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	addr, err := s.services.Marketplace.SellerAddressForPurchase(ctx, req.ID, userID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.SellerAddressResponse{Address: addr}, nil
}

func (s *GRPCServer) Purchase(ctx context.Context, req *api.PurchaseRequest) (*api.PurchaseReceipt, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	r, err := s.services.Ledger.Purchase(ctx, userID, services.PurchaseRequest{
		ListingID:    req.ListingID,
		TxHash:       req.TxHash,
		BuyerAddress: req.BuyerAddress,
		Amount:       req.Amount,
	})
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	return &api.PurchaseReceipt{
		PurchaseID:   r.PurchaseID,
		ListingID:    r.ListingID,
		NoteID:       r.NoteID,
		TxHash:       r.TxHash,
		Price:        r.Price,
		BuyerAddress: r.BuyerAddress,
		PurchasedAt:  r.PurchasedAt,
	}, nil
}

func (s *GRPCServer) MyPurchases(ctx context.Context, req *api.Empty) (*api.ListingsResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.services.Marketplace.MyPurchases(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return toListings(views), nil
}

func (s *GRPCServer) BuyerHistory(ctx context.Context, req *api.Empty) (*api.HistoryResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.services.History.BuyerHistory(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return toHistory(views), nil
}

func (s *GRPCServer) SellerHistory(ctx context.Context, req *api.Empty) (*api.HistoryResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.services.History.SellerHistory(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return toHistory(views), nil
}

func (s *GRPCServer) ExportSales(ctx context.Context, req *api.Empty) (*api.SalesReport, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	r, err := s.services.Reports.ExportSales(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.SalesReport{Key: r.Key, URL: r.URL, Rows: r.Rows}, nil
}
