package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is an opened, migrated store handle. It is safe for concurrent use;
// the underlying medium serializes writers.
type Store struct {
	db          *gorm.DB
	driver      string
	version     int
	collections map[string]Collection
}

// Open connects to the configured medium and brings the schema to the current
// version. A migration failure is fatal: the caller receives no handle and the
// store is left at the last successfully-applied version.
func Open(cfg Config, schema Schema) (*Store, error) {
	if !cfg.IsValidDriver() {
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}

	db, err := connect(cfg)
	if err != nil {
		return nil, err
	}

	s := &Store{
		db:          db,
		driver:      cfg.Driver,
		collections: make(map[string]Collection, len(schema.Collections)),
	}
	for _, c := range schema.Collections {
		s.collections[c.Name] = c
	}

	version, err := s.migrate(schema)
	if err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	s.version = version

	return s, nil
}

// connect establishes the GORM connection for the configured driver.
func connect(cfg Config) (*gorm.DB, error) {
	// Suppress GORM logging; the application logger reports failures.
	// TranslateError turns driver-specific duplicate/not-found errors into
	// gorm.ErrDuplicatedKey / gorm.ErrRecordNotFound across sqlite and mysql.
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	switch cfg.Driver {
	case DriverSQLite:
		dsn := cfg.Path
		if dsn != ":memory:" {
			// WAL for crash recovery, immediate transactions so writers
			// queue at begin instead of failing mid-transaction.
			dsn += "?_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate&_foreign_keys=on"
		}
		db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		// Single connection enforces the single-writer-at-a-time model.
		sqlDB.SetMaxOpenConns(1)
		return db, nil

	case DriverMySQL:
		// URL-encode the password; the driver splits the DSN on '@'.
		userInfo := url.UserPassword(cfg.User, cfg.Password).String()
		dsn := fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
			userInfo, cfg.Host, cfg.Port, cfg.Name, timeout, timeout, timeout)

		db, err := gorm.Open(mysql.Open(dsn), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

// Close releases the underlying connection. Derived handles (Transaction,
// WithContext) share the root connection and must not be closed.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Version returns the schema version the store was opened at.
func (s *Store) Version() int {
	return s.version
}

// Collections returns the registered collection names in stable order.
func (s *Store) Collections() []string {
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithContext returns a derived handle whose operations observe ctx.
func (s *Store) WithContext(ctx context.Context) *Store {
	return s.with(s.db.WithContext(ctx))
}

// Transaction runs fn inside a single transaction. fn's handle commits
// everything or nothing: an error aborts the whole logical operation.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return fn(s.with(tx))
	})
	return wrapAborted(err)
}

// Dump returns every record of the named collection as a typed slice.
func (s *Store) Dump(name string) (any, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, &CollectionNotFoundError{Collection: name}
	}
	slice := reflect.New(reflect.SliceOf(reflect.TypeOf(c.Model).Elem()))
	if err := s.db.Table(c.Name).Find(slice.Interface()).Error; err != nil {
		return nil, &TransactionAbortedError{Err: err}
	}
	return slice.Elem().Interface(), nil
}

// with derives a handle sharing the registry but using db.
func (s *Store) with(db *gorm.DB) *Store {
	return &Store{
		db:          db,
		driver:      s.driver,
		version:     s.version,
		collections: s.collections,
	}
}

// collection resolves a registered collection by name.
func (s *Store) collection(name string) (Collection, error) {
	c, ok := s.collections[name]
	if !ok {
		return Collection{}, &CollectionNotFoundError{Collection: name}
	}
	return c, nil
}

// wrapAborted passes through the store's typed errors and wraps anything else
// as a TransactionAbortedError so medium failures never leak untyped.
func wrapAborted(err error) error {
	if err == nil || isTyped(err) {
		return err
	}
	return &TransactionAbortedError{Err: err}
}

func isTyped(err error) bool {
	var (
		notFound     *NotFoundError
		duplicate    *DuplicateKeyError
		noCollection *CollectionNotFoundError
		noIndex      *IndexNotFoundError
		validation   *ValidationError
		migration    *MigrationError
		txAborted    *TransactionAbortedError
	)
	return errors.As(err, &notFound) ||
		errors.As(err, &duplicate) ||
		errors.As(err, &noCollection) ||
		errors.As(err, &noIndex) ||
		errors.As(err, &validation) ||
		errors.As(err, &migration) ||
		errors.As(err, &txAborted)
}
