// Package repomanager vends repositories bound to a dbx.DBTX and owns the
// schema migrations for the configured database driver.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/notemarket/internal/dbx"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/entitlements"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/listings"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/purchases"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	// TxOptions returns the options purchase transactions should begin with.
	TxOptions() *sql.TxOptions
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Notes(db dbx.DBTX) notes.Repository
	Listings(db dbx.DBTX) listings.Repository
	Purchases(db dbx.DBTX) purchases.Repository
	Entitlements(db dbx.DBTX) entitlements.Repository
	Transactions(db dbx.DBTX) transactions.Repository
}
