// Package database owns the process-wide gorm handle. The service starts even
// when the database is unreachable; Conn reports ErrUnavailable until a
// connection attempt succeeds.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"esports-registration/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUnavailable is returned while no database connection is established.
var ErrUnavailable = errors.New("database unavailable")

// Manager holds the shared connection and its readiness state.
type Manager struct {
	driver    string
	dsn       string
	slowQuery time.Duration

	mu      sync.Mutex // serializes connect attempts
	db      atomic.Pointer[gorm.DB]
	healthy atomic.Bool
	log     *slog.Logger
}

// NewManager prepares a Manager; it does not connect.
func NewManager(driver, dsn string, slowQuery time.Duration) *Manager {
	return &Manager{
		driver:    driver,
		dsn:       dsn,
		slowQuery: slowQuery,
		log:       slog.With("component", "database"),
	}
}

// FromDB wraps an already-open handle, e.g. one created by a test.
func FromDB(db *gorm.DB) *Manager {
	m := &Manager{log: slog.With("component", "database")}
	m.db.Store(db)
	m.healthy.Store(true)
	return m
}

// Conn returns the live handle or ErrUnavailable.
func (m *Manager) Conn() (*gorm.DB, error) {
	db := m.db.Load()
	if db == nil {
		return nil, ErrUnavailable
	}
	return db, nil
}

// Healthy reports the outcome of the latest connect or ping.
func (m *Manager) Healthy() bool {
	return m.healthy.Load()
}

// Connect opens, pings and migrates the database once. Calling it again after
// success is a no-op.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db.Load() != nil {
		return nil
	}

	db, err := Open(m.driver, m.dsn, m.slowQuery)
	if err != nil {
		m.healthy.Store(false)
		return err
	}
	if err := ping(ctx, db); err != nil {
		closeDB(db)
		m.healthy.Store(false)
		return err
	}
	if err := Migrate(db); err != nil {
		closeDB(db)
		m.healthy.Store(false)
		return err
	}

	m.db.Store(db)
	m.healthy.Store(true)
	m.log.Info("connected", "driver", m.driver)
	return nil
}

// Check connects when disconnected and pings otherwise, updating Healthy.
func (m *Manager) Check(ctx context.Context) error {
	db := m.db.Load()
	if db == nil {
		return m.Connect(ctx)
	}
	if err := ping(ctx, db); err != nil {
		if m.healthy.Swap(false) {
			m.log.Warn("database ping failed", "error", err)
		}
		return err
	}
	if !m.healthy.Swap(true) {
		m.log.Info("database reachable again")
	}
	return nil
}

// Close releases the pool.
func (m *Manager) Close() {
	if db := m.db.Swap(nil); db != nil {
		closeDB(db)
	}
	m.healthy.Store(false)
}

// Open creates a gorm handle for the given driver without touching the schema.
func Open(driver, dsn string, slowQuery time.Duration) (*gorm.DB, error) {
	gormLogger := logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             slowQuery,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	cfg := &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if driver == "sqlite" {
		// sqlite allows one writer; a single connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.AdminAccount{},
		&models.ContactMessage{},
		&models.TournamentRegistration{},
	); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
