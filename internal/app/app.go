package app

import (
	"context"
	"fmt"
	"io"

	"medibook/internal/booking"
	"medibook/internal/catalog"
	"medibook/internal/config"
	"medibook/internal/domain"
	"medibook/internal/events"
	"medibook/internal/logging"
	"medibook/internal/metrics"
	"medibook/internal/repository"
	"medibook/internal/store"
	"medibook/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// App wires the booking core together for the mobile shell: store with
// failover, repositories, catalogs, lifecycle service, and the background
// backup and export workers.
type App struct {
	Config   *config.Config
	Logger   *zerolog.Logger
	Store    domain.Store
	Bookings *repository.BookingRepository
	Users    *repository.UserRepository
	Catalog  *catalog.Catalog
	Booking  *booking.Service
	Events   *events.EventBus
	Exporter *worker.ReportExporter

	sqlite      *store.SQLiteStore
	redisClient *redis.Client
	backup      *store.BackupService
	logCloser   io.Closer
}

// New loads config and assembles the core. Nothing background runs until
// Start is called.
func New(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	metrics.Register()

	a := &App{Config: cfg, Logger: logger, logCloser: closer}
	if err := a.wire(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) wire() error {
	cfg := a.Config

	sqlite, err := store.NewSQLiteStore(cfg.Storage.Path, a.Logger)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	a.sqlite = sqlite

	// SQLite is the durable primary. An optional Redis layer sits between
	// it and the in-memory store, so a broken store file degrades to Redis
	// first and plain memory last.
	var fallback domain.Store = store.NewMemoryStore()
	if cfg.Redis.Enabled {
		a.redisClient = store.NewRedisClient(cfg.Redis)
		fallback = store.NewFailoverStore(store.NewRedisStore(a.redisClient, cfg.App.Name), fallback, a.Logger)
	}
	a.Store = store.NewFailoverStore(sqlite, fallback, a.Logger)

	a.Bookings = repository.NewBookingRepository(a.Store, a.Logger)
	a.Users = repository.NewUserRepository(a.Store, a.Logger)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	a.Catalog = cat

	a.Events = events.NewEventBus()
	a.Exporter = worker.NewReportExporter(a.Bookings, cfg.Exports.Path, worker.RetryPolicy{}, a.Logger)
	a.Booking = booking.NewService(a.Bookings, a.Events, a.Exporter, cfg.Limits, a.Logger)
	a.backup = store.NewBackupService(cfg.Storage.Path, cfg.Backup, a.Logger)

	return nil
}

// Start launches the backup scheduler and the report exporter. Both stop
// when ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	go a.backup.Start(ctx)
	go a.Exporter.Start(ctx)
}

// Close releases storage handles and the log file, if any.
func (a *App) Close() error {
	var firstErr error

	if a.redisClient != nil {
		if err := store.Close(a.redisClient); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.sqlite != nil {
		if err := a.sqlite.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.logCloser != nil {
		if err := a.logCloser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
