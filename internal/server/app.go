// Package server wires the NoteMarket server: configuration, logging, the
// database and its migrations, the marketplace services and the gRPC
// endpoint, with graceful shutdown on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/notemarket/internal/logging"
	"github.com/dmitrijs2005/notemarket/internal/server/config"
	"github.com/dmitrijs2005/notemarket/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notemarket/internal/server/services"

	gs "github.com/dmitrijs2005/notemarket/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	services gs.Services
}

func NewApp(c *config.Config) (*App, error) {

	logger, err := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	rm, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := openDB(context.Background(), c, rm)
	if err != nil {
		return nil, err
	}

	history := services.NewHistoryService(db, rm)

	svc := gs.Services{
		Users:        services.NewUserService(db, rm, c),
		Marketplace:  services.NewMarketplaceService(db, rm, logger),
		Ledger:       services.NewLedgerService(db, rm, logger),
		History:      history,
		Reports:      services.NewReportService(history, c),
		Notes:        services.NewNoteService(db, rm),
		Transactions: services.NewTransactionService(db, rm),
	}

	return &App{config: c, logger: logger, db: db, services: svc}, nil
}

// openDB connects and migrates the database.
func openDB(ctx context.Context, c *config.Config, rm repomanager.RepositoryManager) (*sql.DB, error) {
	db, err := sql.Open(c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	// SQLite allows a single writer; one connection serializes purchases.
	if c.DatabaseDriver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return db, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.services, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a shutdown signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
