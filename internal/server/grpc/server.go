// Package grpc exposes the NoteMarket services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/notemarket/internal/logging"
	"github.com/dmitrijs2005/notemarket/internal/server/models"
	"github.com/dmitrijs2005/notemarket/internal/server/services"
	"google.golang.org/grpc"
)

type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type MarketplaceService interface {
	CreateListing(ctx context.Context, sellerID string, in services.ListingInput) (*services.ListingView, error)
	ListActive(ctx context.Context, viewerID string) ([]*services.ListingView, error)
	GetListing(ctx context.Context, id, viewerID string) (*services.ListingView, error)
	MyListings(ctx context.Context, sellerID string) ([]*services.ListingView, error)
	Search(ctx context.Context, query, viewerID string) ([]*services.ListingView, error)
	UpdateListing(ctx context.Context, id, sellerID string, in services.ListingInput) (*services.ListingView, error)
	DeleteListing(ctx context.Context, id, sellerID string) error
	MyPurchases(ctx context.Context, buyerID string) ([]*services.ListingView, error)
	SellerAddressForPurchase(ctx context.Context, id, viewerID string) (string, error)
}

type LedgerService interface {
	Purchase(ctx context.Context, buyerID string, req services.PurchaseRequest) (*services.PurchaseReceipt, error)
}

type HistoryService interface {
	BuyerHistory(ctx context.Context, buyerID string) ([]*services.PurchaseHistoryView, error)
	SellerHistory(ctx context.Context, sellerID string) ([]*services.PurchaseHistoryView, error)
}

type ReportService interface {
	ExportSales(ctx context.Context, sellerID string) (*services.SalesReport, error)
}

type NoteService interface {
	Create(ctx context.Context, userID, title, content string) (*models.Note, error)
	Get(ctx context.Context, id, userID string) (*models.Note, error)
	List(ctx context.Context, userID string) ([]*models.Note, error)
	Search(ctx context.Context, userID, query string) ([]*models.Note, error)
	Update(ctx context.Context, id, userID, title, content string) (*models.Note, error)
	Delete(ctx context.Context, id, userID string) error
}

type TransactionService interface {
	Record(ctx context.Context, userID string, in services.TransactionInput) (*services.TransactionView, error)
	ListMine(ctx context.Context, userID string) ([]*services.TransactionView, error)
	GetByHash(ctx context.Context, hash, userID string) (*services.TransactionView, error)
	ListForNote(ctx context.Context, noteID, userID string) ([]*services.TransactionView, error)
}

// Services is everything the gRPC server dispatches to.
type Services struct {
	Users        UserService
	Marketplace  MarketplaceService
	Ledger       LedgerService
	History      HistoryService
	Reports      ReportService
	Notes        NoteService
	Transactions TransactionService
}

type GRPCServer struct {
	address   string
	services  Services
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, svc Services, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		services:  svc,
		jwtSecret: []byte(secretKey),
	}
}

// NewServer builds a grpc.Server with the access token interceptor and the
// NoteMarket service registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor)}, opts...)
	srv := grpc.NewServer(opts...)
	srv.RegisterService(&serviceDesc, s)
	return srv
}

// Run serves on the configured address until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
