package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/notemarket/internal/api"
	"github.com/dmitrijs2005/notemarket/internal/client/client"
	"github.com/dmitrijs2005/notemarket/internal/client/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	client.Client

	loggedIn  bool
	loginUser string
	loginPass string
	loginErr  error

	regUser string
	regErr  error

	pingErr error

	listing     *api.Listing
	listings    []*api.Listing
	sellerAddr  string
	sellerErr   error
	purchaseReq *api.PurchaseRequest
	purchaseErr error

	created *api.ListingInput
	history []*api.PurchaseRecord
	report  *api.SalesReport
}

func (f *fakeClient) Close() error { return nil }
func (f *fakeClient) Ping(ctx context.Context) error {
	return f.pingErr
}
func (f *fakeClient) LoggedIn() bool { return f.loggedIn }
func (f *fakeClient) Logout()        { f.loggedIn = false }
func (f *fakeClient) Register(ctx context.Context, u, p string) (string, error) {
	f.regUser = u
	return "id-1", f.regErr
}
func (f *fakeClient) Login(ctx context.Context, u, p string) error {
	f.loginUser, f.loginPass = u, p
	if f.loginErr != nil {
		return f.loginErr
	}
	f.loggedIn = true
	return nil
}
func (f *fakeClient) ListListings(ctx context.Context) ([]*api.Listing, error) {
	return f.listings, nil
}
func (f *fakeClient) GetListing(ctx context.Context, id string) (*api.Listing, error) {
	if f.listing == nil || f.listing.ID != id {
		return nil, client.ErrNotFound
	}
	return f.listing, nil
}
func (f *fakeClient) SellerAddress(ctx context.Context, id string) (string, error) {
	return f.sellerAddr, f.sellerErr
}
func (f *fakeClient) Purchase(ctx context.Context, req api.PurchaseRequest) (*api.PurchaseReceipt, error) {
	f.purchaseReq = &req
	if f.purchaseErr != nil {
		return nil, f.purchaseErr
	}
	return &api.PurchaseReceipt{PurchaseID: "p1", ListingID: req.ListingID, NoteID: "n1", Price: req.Amount}, nil
}
func (f *fakeClient) CreateListing(ctx context.Context, in api.ListingInput) (*api.Listing, error) {
	f.created = &in
	return &api.Listing{ID: "l-new", Title: in.Title}, nil
}
func (f *fakeClient) SellerHistory(ctx context.Context) ([]*api.PurchaseRecord, error) {
	return f.history, nil
}
func (f *fakeClient) ExportSales(ctx context.Context) (*api.SalesReport, error) {
	return f.report, nil
}

func newTestApp(t *testing.T, f *fakeClient, input string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return newApp(&config.Config{}, f, strings.NewReader(input), &out), &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func TestLogin_Success(t *testing.T) {
	stubPassword(t, "secret-pass")
	f := &fakeClient{}
	app, out := newTestApp(t, f, "alice\n")

	require.NoError(t, app.Login(context.Background()))
	assert.Equal(t, "alice", f.loginUser)
	assert.Equal(t, "secret-pass", f.loginPass)
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, ModeOnline, app.Mode)
	assert.Equal(t, "(alice online)", app.getStatus())
	assert.Contains(t, out.String(), "Login successful")
}

func TestLogin_Failure(t *testing.T) {
	stubPassword(t, "bad")
	f := &fakeClient{loginErr: client.ErrUnauthorized}
	app, out := newTestApp(t, f, "alice\n")

	err := app.Login(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, app.isLoggedIn())
	assert.Empty(t, app.userName)
	assert.Contains(t, out.String(), "login unsuccessful")
}

func TestRegister_EmptyUsername(t *testing.T) {
	f := &fakeClient{}
	app, _ := newTestApp(t, f, "\n")

	require.ErrorIs(t, app.Register(context.Background()), errEmptyUsername)
	assert.Empty(t, f.regUser)
}

func TestRegister_Success(t *testing.T) {
	stubPassword(t, "password1")
	f := &fakeClient{}
	app, out := newTestApp(t, f, "  bob  \n")

	require.NoError(t, app.Register(context.Background()))
	assert.Equal(t, "bob", f.regUser)
	assert.Contains(t, out.String(), "Registered")
}

func TestLogout(t *testing.T) {
	f := &fakeClient{loggedIn: true}
	app, _ := newTestApp(t, f, "")
	app.userName = "alice"

	require.NoError(t, app.Logout(context.Background()))
	assert.False(t, app.isLoggedIn())
	assert.Empty(t, app.userName)
}

func TestBuy_PaysListedPrice(t *testing.T) {
	price := decimal.RequireFromString("12.5")
	f := &fakeClient{
		loggedIn:   true,
		listing:    &api.Listing{ID: "l1", Title: "Go tips", Price: price},
		sellerAddr: "0xSELLERADDRESS00000000000000000001",
	}
	app, out := newTestApp(t, f, "0xhash\n0xBUYER\ny\n")

	require.NoError(t, app.Buy(context.Background(), "l1"))
	require.NotNil(t, f.purchaseReq)
	assert.Equal(t, "l1", f.purchaseReq.ListingID)
	assert.Equal(t, "0xhash", f.purchaseReq.TxHash)
	assert.Equal(t, "0xBUYER", f.purchaseReq.BuyerAddress)
	assert.True(t, price.Equal(f.purchaseReq.Amount))
	assert.Contains(t, out.String(), "0xSELLERADDRESS00000000000000000001")
	assert.Contains(t, out.String(), "note n1")
}

func TestBuy_StopsWhenSellerAddressRefused(t *testing.T) {
	f := &fakeClient{
		loggedIn:  true,
		listing:   &api.Listing{ID: "l1", Price: decimal.NewFromInt(1)},
		sellerErr: client.ErrForbidden,
	}
	app, out := newTestApp(t, f, "")

	require.ErrorIs(t, app.Buy(context.Background(), "l1"), client.ErrForbidden)
	assert.Nil(t, f.purchaseReq)
	assert.Contains(t, out.String(), "Error:")
}

func TestBuy_ReportsRejection(t *testing.T) {
	f := &fakeClient{
		loggedIn:    true,
		listing:     &api.Listing{ID: "l1", Price: decimal.NewFromInt(1)},
		sellerAddr:  "0xseller",
		purchaseErr: client.ErrConflict,
	}
	app, _ := newTestApp(t, f, "0xhash\n0xbuyer\nyes\n")

	require.ErrorIs(t, app.Buy(context.Background(), "l1"), client.ErrConflict)
}

func TestBuy_DeclinedAtConfirmation(t *testing.T) {
	f := &fakeClient{
		loggedIn:   true,
		listing:    &api.Listing{ID: "l1", Title: "Go tips", Price: decimal.NewFromInt(3)},
		sellerAddr: "0xseller",
	}
	app, out := newTestApp(t, f, "0xhash\n0xbuyer\nn\n")

	require.NoError(t, app.Buy(context.Background(), "l1"))
	assert.Nil(t, f.purchaseReq)
	assert.Contains(t, out.String(), "Purchase cancelled")
}

func TestSell_ParsesPrice(t *testing.T) {
	f := &fakeClient{loggedIn: true}
	app, out := newTestApp(t, f, "Go tips\nshort\nline one\nline two\n\n9.99\n0xseller\n")

	require.NoError(t, app.Sell(context.Background()))
	require.NotNil(t, f.created)
	assert.Equal(t, "Go tips", f.created.Title)
	assert.Equal(t, "short", f.created.Description)
	assert.Equal(t, "line one\nline two", f.created.Content)
	assert.Equal(t, "9.99", f.created.Price.String())
	assert.Equal(t, "0xseller", f.created.SellerAddress)
	assert.Contains(t, out.String(), "l-new")
}

func TestSell_InvalidPrice(t *testing.T) {
	f := &fakeClient{loggedIn: true}
	app, _ := newTestApp(t, f, "Go tips\nshort\nbody\n\nten\n")

	require.Error(t, app.Sell(context.Background()))
	assert.Nil(t, f.created)
}

func TestView_LockedAndUnlocked(t *testing.T) {
	f := &fakeClient{loggedIn: true, listing: &api.Listing{ID: "l1", Title: "T", Preview: "prev...", FullContent: ""}}
	app, out := newTestApp(t, f, "")

	require.NoError(t, app.View(context.Background(), "l1"))
	assert.Contains(t, out.String(), "prev...")
	assert.Contains(t, out.String(), "buy l1")

	out.Reset()
	f.listing = &api.Listing{ID: "l1", Title: "T", Entitled: true, FullContent: "the whole note"}
	require.NoError(t, app.View(context.Background(), "l1"))
	assert.Contains(t, out.String(), "the whole note")
	assert.NotContains(t, out.String(), "buy l1")

	require.ErrorIs(t, app.View(context.Background(), "missing"), client.ErrNotFound)
}

func TestListingsAndSales_Print(t *testing.T) {
	f := &fakeClient{
		loggedIn: true,
		listings: []*api.Listing{{ID: "l1", Title: "Go tips", Price: decimal.NewFromInt(3), OwnedByViewer: true}},
		history:  []*api.PurchaseRecord{{ID: "p1", ListingTitle: "Go tips", TxHash: "0xhash", Price: decimal.NewFromInt(3)}},
		report:   &api.SalesReport{Key: "reports/x.csv", URL: "http://minio/x", Rows: 1},
	}
	app, out := newTestApp(t, f, "")
	ctx := context.Background()

	require.NoError(t, app.Listings(ctx))
	assert.Contains(t, out.String(), "Go tips [yours]")

	require.NoError(t, app.Sales(ctx))
	assert.Contains(t, out.String(), "0xhash")

	t.Chdir(t.TempDir())
	origDownload := downloadReport
	t.Cleanup(func() { downloadReport = origDownload })

	var gotURL string
	downloadReport = func(_ context.Context, url string) ([]byte, error) {
		gotURL = url
		return []byte("purchase_id\np1\n"), nil
	}

	require.NoError(t, app.Export(ctx))
	assert.Equal(t, "http://minio/x", gotURL)
	assert.Contains(t, out.String(), "Saved to")

	saved, err := os.ReadFile(filepath.Join("reports", "x.csv"))
	require.NoError(t, err)
	assert.Equal(t, "purchase_id\np1\n", string(saved))

	downloadReport = func(context.Context, string) ([]byte, error) { return nil, errors.New("403") }
	require.Error(t, app.Export(ctx))
	assert.Contains(t, out.String(), "Download it later from: http://minio/x")
}

func TestExport_ConfiguredReportsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sales")
	f := &fakeClient{loggedIn: true, report: &api.SalesReport{Key: "reports/u1/2026.csv", URL: "http://minio/y", Rows: 2}}
	var out bytes.Buffer
	app := newApp(&config.Config{ReportsDir: dir}, f, strings.NewReader(""), &out)

	origDownload := downloadReport
	t.Cleanup(func() { downloadReport = origDownload })
	downloadReport = func(context.Context, string) ([]byte, error) { return []byte("csv"), nil }

	require.NoError(t, app.Export(context.Background()))
	assert.FileExists(t, filepath.Join(dir, "2026.csv"))
	assert.Contains(t, out.String(), "Exported 2 sales")
}

func TestSetMode_ChangesAndLogsOnce(t *testing.T) {
	app := &App{}
	var buf bytes.Buffer

	old := log.Default().Writer()
	defer log.SetOutput(old)
	log.SetOutput(&buf)

	app.setMode(ModeOnline)
	if app.Mode != ModeOnline {
		t.Fatalf("expected mode to be %q, got %q", ModeOnline, app.Mode)
	}
	if got := buf.String(); got == "" {
		t.Fatalf("expected log output on mode change, got empty")
	}

	buf.Reset()
	app.setMode(ModeOnline)
	if got := buf.String(); got != "" {
		t.Fatalf("expected no log output when mode doesn't change, got: %q", got)
	}

	app.setMode(ModeOffline)
	if app.Mode != ModeOffline {
		t.Fatalf("expected mode to be %q, got %q", ModeOffline, app.Mode)
	}
}

func TestCheckOnline(t *testing.T) {
	old := log.Default().Writer()
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(old) })

	f := &fakeClient{}
	app, _ := newTestApp(t, f, "")

	app.checkOnline(context.Background())
	assert.Equal(t, ModeOnline, app.Mode)

	f.pingErr = client.ErrUnavailable
	app.checkOnline(context.Background())
	assert.Equal(t, ModeOffline, app.Mode)
}

func TestRun_ExitsOnEOF(t *testing.T) {
	capturePrintln(t)
	f := &fakeClient{}
	app, out := newTestApp(t, f, "help\n")

	app.Run(context.Background())
	assert.Contains(t, out.String(), "Welcome to NoteMarket CLI")
}
