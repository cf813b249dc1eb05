package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/notemarket/internal/api"
	"github.com/dmitrijs2005/notemarket/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const defaultTimeout = 12 * time.Second

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	cc          grpc.ClientConnInterface

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

// accessTokenInterceptor attaches the access token and, if the server says
// it has expired, trades the refresh token for a new pair and retries once.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	accessToken, refreshToken := s.tokens()
	if accessToken != "" {
		ctx = withAccessToken(ctx, accessToken)
	}

	err := invoker(ctx, method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	if st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refreshToken == "" {
		return err
	}

	pair := &api.TokenPair{}
	refreshReq := &api.RefreshTokenRequest{RefreshToken: refreshToken}
	if rerr := invoker(ctx, api.FullMethod(api.MethodRefreshToken), refreshReq, pair, cc, opts...); rerr != nil {
		if status.Code(rerr) == codes.Unauthenticated {
			s.setTokens("", "")
		}
		return rerr
	}

	s.setTokens(pair.AccessToken, pair.RefreshToken)

	// tokens refreshed, replay with the new access token
	ctx = withAccessToken(ctx, pair.AccessToken)
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewNoteMarketClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// InitGRPCClient dials the endpoint. Extra options are appended after the
// defaults, which lets tests swap the dialer.
func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName)),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.cc = conn
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) call(ctx context.Context, method string, req, resp any) error {
	timeout := s.timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return s.mapError(s.cc.Invoke(ctx, api.FullMethod(method), req, resp))
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	var sentinel error
	switch st.Code() {
	case codes.Unauthenticated:
		sentinel = ErrUnauthorized
	case codes.PermissionDenied:
		sentinel = ErrForbidden
	case codes.Unavailable, codes.DeadlineExceeded:
		sentinel = ErrUnavailable
	case codes.NotFound:
		sentinel = ErrNotFound
	case codes.AlreadyExists:
		sentinel = ErrConflict
	case codes.InvalidArgument:
		sentinel = ErrInvalid
	case codes.FailedPrecondition:
		sentinel = ErrRejected
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
	return fmt.Errorf("%w: %s", sentinel, st.Message())
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp := &api.PingResponse{}
	if err := s.call(ctx, api.MethodPing, &api.Empty{}, resp); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, username, password string) (string, error) {
	resp := &api.RegisterResponse{}
	if err := s.call(ctx, api.MethodRegister, &api.Credentials{Username: username, Password: password}, resp); err != nil {
		return "", err
	}
	return resp.UserID, nil
}

func (s *GRPCClient) Login(ctx context.Context, username, password string) error {
	resp := &api.TokenPair{}
	if err := s.call(ctx, api.MethodLogin, &api.Credentials{Username: username, Password: password}, resp); err != nil {
		return err
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

func (s *GRPCClient) Logout() {
	s.setTokens("", "")
}

func (s *GRPCClient) LoggedIn() bool {
	access, _ := s.tokens()
	return access != ""
}

func (s *GRPCClient) listing(ctx context.Context, method string, req any) (*api.Listing, error) {
	resp := &api.ListingResponse{}
	if err := s.call(ctx, method, req, resp); err != nil {
		return nil, err
	}
	return resp.Listing, nil
}

func (s *GRPCClient) listings(ctx context.Context, method string, req any) ([]*api.Listing, error) {
	resp := &api.ListingsResponse{}
	if err := s.call(ctx, method, req, resp); err != nil {
		return nil, err
	}
	return resp.Listings, nil
}

func (s *GRPCClient) CreateListing(ctx context.Context, in api.ListingInput) (*api.Listing, error) {
	return s.listing(ctx, api.MethodCreateListing, &in)
}

func (s *GRPCClient) ListListings(ctx context.Context) ([]*api.Listing, error) {
	return s.listings(ctx, api.MethodListListings, &api.Empty{})
}

func (s *GRPCClient) GetListing(ctx context.Context, id string) (*api.Listing, error) {
	return s.listing(ctx, api.MethodGetListing, &api.ByID{ID: id})
}

func (s *GRPCClient) MyListings(ctx context.Context) ([]*api.Listing, error) {
	return s.listings(ctx, api.MethodMyListings, &api.Empty{})
}

func (s *GRPCClient) SearchListings(ctx context.Context, query string) ([]*api.Listing, error) {
	return s.listings(ctx, api.MethodSearchListings, &api.Query{Query: query})
}

func (s *GRPCClient) UpdateListing(ctx context.Context, id string, in api.ListingInput) (*api.Listing, error) {
	return s.listing(ctx, api.MethodUpdateListing, &api.UpdateListingRequest{ID: id, Listing: in})
}

func (s *GRPCClient) DeleteListing(ctx context.Context, id string) error {
	return s.call(ctx, api.MethodDeleteListing, &api.ByID{ID: id}, &api.Empty{})
}

func (s *GRPCClient) SellerAddress(ctx context.Context, listingID string) (string, error) {
	resp := &api.SellerAddressResponse{}
	if err := s.call(ctx, api.MethodSellerAddress, &api.ByID{ID: listingID}, resp); err != nil {
		return "", err
	}
	return resp.Address, nil
}

func (s *GRPCClient) Purchase(ctx context.Context, req api.PurchaseRequest) (*api.PurchaseReceipt, error) {
	resp := &api.PurchaseReceipt{}
	if err := s.call(ctx, api.MethodPurchase, &req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *GRPCClient) MyPurchases(ctx context.Context) ([]*api.Listing, error) {
	return s.listings(ctx, api.MethodMyPurchases, &api.Empty{})
}

func (s *GRPCClient) history(ctx context.Context, method string) ([]*api.PurchaseRecord, error) {
	resp := &api.HistoryResponse{}
	if err := s.call(ctx, method, &api.Empty{}, resp); err != nil {
		return nil, err
	}
	return resp.Purchases, nil
}

func (s *GRPCClient) BuyerHistory(ctx context.Context) ([]*api.PurchaseRecord, error) {
	return s.history(ctx, api.MethodBuyerHistory)
}

func (s *GRPCClient) SellerHistory(ctx context.Context) ([]*api.PurchaseRecord, error) {
	return s.history(ctx, api.MethodSellerHistory)
}

func (s *GRPCClient) ExportSales(ctx context.Context) (*api.SalesReport, error) {
	resp := &api.SalesReport{}
	if err := s.call(ctx, api.MethodExportSales, &api.Empty{}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *GRPCClient) note(ctx context.Context, method string, req any) (*api.Note, error) {
	resp := &api.NoteResponse{}
	if err := s.call(ctx, method, req, resp); err != nil {
		return nil, err
	}
	return resp.Note, nil
}

func (s *GRPCClient) notes(ctx context.Context, method string, req any) ([]*api.Note, error) {
	resp := &api.NotesResponse{}
	if err := s.call(ctx, method, req, resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

func (s *GRPCClient) CreateNote(ctx context.Context, title, content string) (*api.Note, error) {
	return s.note(ctx, api.MethodCreateNote, &api.NoteInput{Title: title, Content: content})
}

func (s *GRPCClient) ListNotes(ctx context.Context) ([]*api.Note, error) {
	return s.notes(ctx, api.MethodListNotes, &api.Empty{})
}

func (s *GRPCClient) GetNote(ctx context.Context, id string) (*api.Note, error) {
	return s.note(ctx, api.MethodGetNote, &api.ByID{ID: id})
}

func (s *GRPCClient) UpdateNote(ctx context.Context, id, title, content string) (*api.Note, error) {
	return s.note(ctx, api.MethodUpdateNote, &api.UpdateNoteRequest{ID: id, Note: api.NoteInput{Title: title, Content: content}})
}

func (s *GRPCClient) DeleteNote(ctx context.Context, id string) error {
	return s.call(ctx, api.MethodDeleteNote, &api.ByID{ID: id}, &api.Empty{})
}

func (s *GRPCClient) SearchNotes(ctx context.Context, query string) ([]*api.Note, error) {
	return s.notes(ctx, api.MethodSearchNotes, &api.Query{Query: query})
}

func (s *GRPCClient) RecordTransaction(ctx context.Context, req api.RecordTransactionRequest) (*api.Transaction, error) {
	resp := &api.TransactionResponse{}
	if err := s.call(ctx, api.MethodRecordTransaction, &req, resp); err != nil {
		return nil, err
	}
	return resp.Transaction, nil
}

func (s *GRPCClient) transactions(ctx context.Context, method string, req any) ([]*api.Transaction, error) {
	resp := &api.TransactionsResponse{}
	if err := s.call(ctx, method, req, resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

func (s *GRPCClient) ListTransactions(ctx context.Context) ([]*api.Transaction, error) {
	return s.transactions(ctx, api.MethodListTransactions, &api.Empty{})
}

func (s *GRPCClient) GetTransaction(ctx context.Context, txHash string) (*api.Transaction, error) {
	resp := &api.TransactionResponse{}
	if err := s.call(ctx, api.MethodGetTransaction, &api.TransactionByHash{TxHash: txHash}, resp); err != nil {
		return nil, err
	}
	return resp.Transaction, nil
}

func (s *GRPCClient) NoteTransactions(ctx context.Context, noteID string) ([]*api.Transaction, error) {
	return s.transactions(ctx, api.MethodNoteTransactions, &api.ByID{ID: noteID})
}
