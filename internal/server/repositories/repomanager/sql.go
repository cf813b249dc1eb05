package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/notemarket/internal/dbx"
	"github.com/dmitrijs2005/notemarket/internal/server/migrations"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/entitlements"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/listings"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/purchases"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager serves both PostgreSQL and SQLite; the repositories
// share one portable SQL dialect and differ only in migrations and
// transaction options.
type SQLRepositoryManager struct {
	gooseDialect  string
	migrationsDir string
	txOptions     *sql.TxOptions
}

func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Notes(db dbx.DBTX) notes.Repository {
	return notes.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Listings(db dbx.DBTX) listings.Repository {
	return listings.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Purchases(db dbx.DBTX) purchases.Repository {
	return purchases.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Entitlements(db dbx.DBTX) entitlements.Repository {
	return entitlements.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Transactions(db dbx.DBTX) transactions.Repository {
	return transactions.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) TxOptions() *sql.TxOptions {
	return m.txOptions
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.gooseDialect); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, m.migrationsDir)
}

// NewPostgresRepositoryManager targets PostgreSQL through pgx. Purchases run
// at REPEATABLE READ; uniqueness is enforced by constraints.
func NewPostgresRepositoryManager() *SQLRepositoryManager {
	return &SQLRepositoryManager{
		gooseDialect:  "pgx",
		migrationsDir: migrations.PostgresDir,
		txOptions:     &sql.TxOptions{Isolation: sql.LevelRepeatableRead},
	}
}

// NewSQLiteRepositoryManager targets modernc.org/sqlite. SQLite
// transactions are already serializable.
func NewSQLiteRepositoryManager() *SQLRepositoryManager {
	return &SQLRepositoryManager{gooseDialect: "sqlite3", migrationsDir: migrations.SQLiteDir}
}

// New picks a manager for the database/sql driver name.
func New(driver string) (*SQLRepositoryManager, error) {
	switch driver {
	case "pgx":
		return NewPostgresRepositoryManager(), nil
	case "sqlite":
		return NewSQLiteRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
