package postgres

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"fulfillment/internal/adapters/out/postgres/addressrepo"
	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/outboxrepo"

	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrUnknownDriver = errors.New("unknown database driver")

// Options selects and tunes the database connection. DSN is a libpq
// connection string for postgres or a file path for sqlite.
type Options struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	LogQueries   bool
}

// Open connects to the configured database. In-memory sqlite databases are
// limited to one connection so every query sees the same schema.
func Open(opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case DriverPostgres:
		dialector = gorm_postgres.New(gorm_postgres.Config{DSN: opts.DSN})
	case DriverSQLite:
		dialector = sqlite.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}

	level := gormlogger.Silent
	if opts.LogQueries {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.New(log.New(io.Discard, "", log.LstdFlags), gormlogger.Config{LogLevel: level}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s connection: %w", opts.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}
	switch {
	case opts.Driver == DriverSQLite && strings.Contains(opts.DSN, ":memory:"):
		sqlDB.SetMaxOpenConns(1)
	case opts.MaxOpenConns > 0:
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}

	return db, nil
}

// Migrate creates or updates every table owned by the service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&orderrepo.TimelineEntryDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.StampDTO{},
		&outboxrepo.EventDTO{},
		&catalogrepo.ProductDTO{},
		&addressrepo.AddressDTO{},
	)
}
