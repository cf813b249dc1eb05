package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/notemarket/internal/logging"
	"github.com/dmitrijs2005/notemarket/internal/server/auth"
	"github.com/dmitrijs2005/notemarket/internal/server/models"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notemarket/internal/timex"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	sellerAddr = "addr_test1qzseller9x8c7v6b5n4m3l2k1j0h9g8f7d6s5a4sellerend"
	buyerAddr  = "addr_test1qrbuyer0p9o8i7u6y5t4r3e2w1q0a9s8d7f6g5h4buyerend"
	otherAddr  = "addr_test1qqother1m2n3b4v5c6x7z8l9k0j1h2g3f4d5s6otherend"
)

// market is a marketplace backed by a private in-memory SQLite database
// carrying the real migrations.
type market struct {
	db      *sql.DB
	rm      repomanager.RepositoryManager
	catalog *MarketplaceService
	ledger  *LedgerService
	history *HistoryService
	txs     *TransactionService
	notes   *NoteService
}

func openMarket(ctx context.Context) (*market, error) {
	goose.SetLogger(goose.NopLogger())

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_time_format=sqlite&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	rm := repomanager.NewSQLiteRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return newMarketOn(db, rm), nil
}

func newMarketOn(db *sql.DB, rm repomanager.RepositoryManager) *market {
	log := logging.Nop()
	return &market{
		db:      db,
		rm:      rm,
		catalog: NewMarketplaceService(db, rm, log),
		ledger:  NewLedgerService(db, rm, log),
		history: NewHistoryService(db, rm),
		txs:     NewTransactionService(db, rm),
		notes:   NewNoteService(db, rm),
	}
}

func newMarket(t *testing.T) *market {
	t.Helper()
	m, err := openMarket(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.db.Close() })
	return m
}

// withRepos returns a market over the same database whose repositories
// come from rm.
func (m *market) withRepos(rm repomanager.RepositoryManager) *market {
	return newMarketOn(m.db, rm)
}

var cheapHash = func() []byte {
	h, err := auth.HashPassword("password1")
	if err != nil {
		panic(err)
	}
	return h
}()

func (m *market) user(t require.TestingT, name string) string {
	u, err := m.rm.Users(m.db).Create(context.Background(), &models.User{UserName: name, PasswordHash: cheapHash})
	require.NoError(t, err)
	return u.ID
}

func (m *market) listing(t require.TestingT, sellerID, title, price string) *ListingView {
	v, err := m.catalog.CreateListing(context.Background(), sellerID, ListingInput{
		Title:         title,
		Description:   "about " + title,
		Content:       "full text of " + title,
		Price:         decimal.RequireFromString(price),
		SellerAddress: sellerAddr,
	})
	require.NoError(t, err)
	return v
}

func (m *market) buy(listingID, buyerID, hash string) (*PurchaseReceipt, error) {
	return m.ledger.Purchase(context.Background(), buyerID, PurchaseRequest{
		ListingID:    listingID,
		TxHash:       hash,
		BuyerAddress: buyerAddr,
		Amount:       decimal.RequireFromString("10"),
	})
}

func (m *market) count(t require.TestingT, table string) int {
	var n int
	require.NoError(t, m.db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

// ledgerCounts snapshots every table a purchase writes to.
func (m *market) ledgerCounts(t require.TestingT) map[string]int {
	out := map[string]int{}
	for _, table := range []string{"purchases", "entitlements", "transactions", "notes"} {
		out[table] = m.count(t, table)
	}
	return out
}

// stepClock makes timex.Now advance one second per call.
func stepClock(t *testing.T) {
	t.Helper()
	orig := timex.Now
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var ticks atomic.Int64
	timex.Now = func() time.Time {
		return base.Add(time.Duration(ticks.Add(1)) * time.Second)
	}
	t.Cleanup(func() { timex.Now = orig })
}
