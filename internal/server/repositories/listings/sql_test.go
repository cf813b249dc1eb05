package listings

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/notemarket/internal/common"
	"github.com/dmitrijs2005/notemarket/internal/server/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLRepository(db), mock
}

var cols = []string{"id", "seller_id", "title", "description", "content", "price", "seller_address",
	"status", "view_count", "purchase_count", "created_at", "updated_at"}

func listingRow(rows *sqlmock.Rows, id, seller, status string) *sqlmock.Rows {
	ts := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	return rows.AddRow(id, seller, "Title "+id, "desc", "content", "10.5", "addr_"+seller, status, int64(3), int64(1), ts, ts)
}

func TestCreate_StartsActiveWithZeroCounters(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	price := decimal.RequireFromString("10")
	mock.ExpectExec(`INSERT\s+INTO\s+listings`).
		WithArgs(sqlmock.AnyArg(), "s1", "t", "d", "c", price, "addr", "active", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), &models.Listing{
		SellerID: "s1", Title: "t", Description: "d", Content: "c", Price: price, SellerAddress: "addr",
		Status: models.ListingDelisted, ViewCount: 9,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, models.ListingActive, got.Status)
	assert.Zero(t, got.ViewCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(`FROM\s+listings\s+WHERE\s+id\s*=\s*\$1`).
			WithArgs("l1").
			WillReturnRows(listingRow(sqlmock.NewRows(cols), "l1", "s1", "delisted"))

		got, err := repo.GetByID(context.Background(), "l1")
		require.NoError(t, err)
		assert.Equal(t, models.ListingDelisted, got.Status)
		assert.False(t, got.IsActive())
		assert.True(t, got.Price.Equal(decimal.RequireFromString("10.5")))
		assert.EqualValues(t, 3, got.ViewCount)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(`FROM\s+listings`).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), "nope")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestGetByIDs(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	got, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	mock.ExpectQuery(`WHERE\s+id\s+IN\s+\(\$1,\s*\$2\)`).
		WithArgs("l1", "l2").
		WillReturnRows(listingRow(listingRow(sqlmock.NewRows(cols), "l1", "s1", "active"), "l2", "s1", "active"))

	got, err = repo.GetByIDs(context.Background(), []string{"l1", "l2"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListActive_ExcludesViewer(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`WHERE\s+status\s*=\s*\$1\s+AND\s+seller_id\s*<>\s*\$2`).
		WithArgs("active", "viewer").
		WillReturnRows(listingRow(sqlmock.NewRows(cols), "l1", "s1", "active"))

	got, err := repo.ListActive(context.Background(), "viewer")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].SellerID)
}

func TestSearch(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`LOWER\(title\)\s+LIKE\s+\$3.*LOWER\(description\)\s+LIKE\s+\$3`).
		WithArgs("active", "viewer", "%rust%").
		WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.Search(context.Background(), "%rust%", "viewer")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSellerAddresses(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT\s+DISTINCT\s+seller_address\s+FROM\s+listings\s+WHERE\s+seller_id\s*=\s*\$1`).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"seller_address"}).AddRow("addr_a").AddRow("addr_b"))

	got, err := repo.SellerAddresses(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"addr_a", "addr_b"}, got)
}

func TestCounters(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE\s+listings\s+SET\s+view_count\s*=\s*view_count\s*\+\s*1`).
		WithArgs("l1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE\s+listings\s+SET\s+purchase_count\s*=\s*purchase_count\s*\+\s*1`).
		WithArgs("l1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.IncrementViewCount(context.Background(), "l1"))
	assert.ErrorIs(t, repo.IncrementPurchaseCount(context.Background(), "l1"), common.ErrorNotFound)
}

func TestSetStatus_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE\s+listings\s+SET\s+status`).
		WithArgs("delisted", at, "l1").
		WillReturnError(errors.New("boom"))

	err := repo.SetStatus(context.Background(), "l1", models.ListingDelisted, at)
	assert.ErrorContains(t, err, "db error: boom")
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE\s+listings\s+SET\s+title\s*=\s*\$1`).
		WithArgs("new", "d", "c", decimal.NewFromInt(12), "addr", sqlmock.AnyArg(), "l1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	l := &models.Listing{ID: "l1", Title: "new", Description: "d", Content: "c", Price: decimal.NewFromInt(12), SellerAddress: "addr"}
	require.NoError(t, repo.Update(context.Background(), l))
	assert.False(t, l.UpdatedAt.IsZero())
}
