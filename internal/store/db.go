package store

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/stuartshay/otel-data-api/internal/config"
	"github.com/stuartshay/otel-data-api/internal/model"
)

// ErrNotFound is returned when a query matched no rows
var ErrNotFound = errors.New("record not found")

// Querier is the minimal query surface services depend on. Every
// statement in this API is hand-assembled SQL executed through it.
type Querier interface {
	// Fetch runs a query and scans all rows into dest (a *[]T).
	Fetch(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	// FetchRow runs a query expected to return one row; ErrNotFound
	// when it returns none.
	FetchRow(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	// FetchVal runs a query and scans a single value into dest.
	FetchVal(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	// Exec runs a statement and returns the number of affected rows.
	Exec(ctx context.Context, query string, args ...interface{}) (int64, error)
}

// Database wraps the pooled gorm handle
type Database struct {
	db  *gorm.DB
	cfg *config.Config
}

// Open connects to the database and configures the connection pool
func Open(cfg *config.Config) (*Database, error) {
	if err := cfg.ValidateDatabase(); err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.DBPoolMin)
	sqlDB.SetMaxOpenConns(cfg.DBPoolMax)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Printf("[DB] Pool initialized (min=%d, max=%d)", cfg.DBPoolMin, cfg.DBPoolMax)
	return &Database{db: db, cfg: cfg}, nil
}

// Close closes the underlying connection pool
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Fetch implements Querier
func (d *Database) Fetch(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return d.db.WithContext(ctx).Raw(query, args...).Scan(dest).Error
}

// FetchRow implements Querier
func (d *Database) FetchRow(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	tx := d.db.WithContext(ctx).Raw(query, args...).Scan(dest)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FetchVal implements Querier
func (d *Database) FetchVal(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return d.db.WithContext(ctx).Raw(query, args...).Scan(dest).Error
}

// Exec implements Querier
func (d *Database) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	tx := d.db.WithContext(ctx).Exec(query, args...)
	return tx.RowsAffected, tx.Error
}

// HealthCheck runs a trivial round-trip query and reports pool state
func (d *Database) HealthCheck(ctx context.Context) (*model.DatabaseHealth, error) {
	var row struct {
		Version    string
		ServerTime string
	}
	err := d.FetchRow(ctx, &row, "SELECT version() AS version, NOW()::text AS server_time")
	if err != nil {
		return nil, err
	}

	sqlDB, err := d.db.DB()
	if err != nil {
		return nil, err
	}
	stats := sqlDB.Stats()

	return &model.DatabaseHealth{
		Status:     "healthy",
		Version:    row.Version,
		ServerTime: row.ServerTime,
		PoolSize:   stats.OpenConnections,
		PoolFree:   stats.Idle,
	}, nil
}
