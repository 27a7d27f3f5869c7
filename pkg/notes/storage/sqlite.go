package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/mattn/go-sqlite3" // cgo
	_ "modernc.org/sqlite"        // registers "sqlite" (pure Go)

	"notesponge-hq/mdsync/pkg/notes"
)

const (
	// DriverModernc is the pure-Go modernc.org/sqlite driver.
	DriverModernc = "sqlite"

	// DriverMattn is the cgo github.com/mattn/go-sqlite3 driver.
	DriverMattn = "sqlite3"

	// cacheSizePages lifts SQLite's page cache limit so a full export reads
	// each page from disk once.
	cacheSizePages = 1000000000

	tempStorePragma = "PRAGMA temp_store = memory"
)

// Config contains configuration for the SQLite connection handle.
type Config struct {
	// Driver selects the database/sql driver: "sqlite" or "sqlite3".
	// Default: "sqlite"
	Driver string

	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections. SQLite allows
	// a single writer, so callers contend for one connection by default.
	// Default: 1
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 1
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging so the UI can keep writing while an
	// export reads.
	// Default: true
	WALMode bool

	// BusyTimeout is how long a statement waits on a locked database.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// ForeignKeys enables foreign key enforcement on every connection.
	// Default: true
	ForeignKeys bool
}

// DefaultConfig returns the default SQLite configuration.
func DefaultConfig() *Config {
	return &Config{
		Driver:       DriverModernc,
		Path:         "notesponge.db",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
		ForeignKeys:  true,
	}
}

// DB is the process-wide connection handle. It is constructed once, injected
// into an Executor, and closed by its owner.
type DB struct {
	db     *sql.DB
	config *Config
	logger *slog.Logger
}

// Open opens the database and applies the connection pragmas.
func Open(config *Config) (*DB, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Driver == "" {
		config.Driver = DriverModernc
	}
	if config.Path == "" {
		return nil, notes.NewDatabaseError("open", "", fmt.Errorf("database path cannot be empty"))
	}

	logger := slog.Default().With("component", "notes.storage.sqlite")

	dsn, err := buildDSN(config)
	if err != nil {
		return nil, notes.NewDatabaseError("open", "", err)
	}

	var db *sql.DB
	if config.Driver == DriverMattn {
		// mattn has no DSN key for temp_store.
		db = sql.OpenDB(&pragmaConnector{
			driver:  &sqlite3.SQLiteDriver{},
			dsn:     dsn,
			pragmas: []string{tempStorePragma},
		})
	} else {
		db, err = sql.Open(config.Driver, dsn)
		if err != nil {
			return nil, notes.NewDatabaseError("open", "", err)
		}
	}

	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		db.SetMaxIdleConns(config.MaxIdleConns)
	}
	db.SetConnMaxLifetime(0)

	d := &DB{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite database opened",
		"driver", config.Driver,
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return d, nil
}

// buildDSN encodes the pragmas in the driver's connection string so that
// every pooled connection gets them, not only the first.
func buildDSN(config *Config) (string, error) {
	busyMs := config.BusyTimeout.Milliseconds()
	q := url.Values{}

	switch config.Driver {
	case DriverModernc:
		q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyMs))
		if config.WALMode {
			q.Add("_pragma", "journal_mode(WAL)")
		}
		q.Add("_pragma", "synchronous(NORMAL)")
		if config.ForeignKeys {
			q.Add("_pragma", "foreign_keys(1)")
		}
		q.Add("_pragma", fmt.Sprintf("cache_size(%d)", cacheSizePages))
		q.Add("_pragma", "temp_store(memory)")
	case DriverMattn:
		q.Set("_busy_timeout", fmt.Sprint(busyMs))
		if config.WALMode {
			q.Set("_journal_mode", "WAL")
		}
		q.Set("_synchronous", "NORMAL")
		if config.ForeignKeys {
			q.Set("_foreign_keys", "1")
		}
		q.Set("_cache_size", fmt.Sprint(cacheSizePages))
	default:
		return "", fmt.Errorf("unsupported driver %q (want %q or %q)", config.Driver, DriverModernc, DriverMattn)
	}

	return config.Path + "?" + q.Encode(), nil
}

// pragmaConnector opens connections through a driver and runs pragmas on
// each new connection before the pool hands it out.
type pragmaConnector struct {
	driver  driver.Driver
	dsn     string
	pragmas []string
}

func (c *pragmaConnector) Connect(ctx context.Context) (driver.Conn, error) {
	conn, err := c.driver.Open(c.dsn)
	if err != nil {
		return nil, err
	}
	execer, ok := conn.(driver.ExecerContext)
	if !ok {
		conn.Close()
		return nil, fmt.Errorf("driver connection %T cannot execute pragmas", conn)
	}
	for _, pragma := range c.pragmas {
		if _, err := execer.ExecContext(ctx, pragma, nil); err != nil {
			conn.Close()
			return nil, notes.NewDatabaseError("pragma", pragma, err)
		}
	}
	return conn, nil
}

func (c *pragmaConnector) Driver() driver.Driver {
	return c.driver
}

// initialize verifies the database is reachable and logs the journal mode.
func (d *DB) initialize() error {
	if err := d.db.Ping(); err != nil {
		return notes.NewDatabaseError("open", "", err)
	}

	if d.config.WALMode {
		var mode string
		if err := d.db.QueryRow("PRAGMA journal_mode;").Scan(&mode); err != nil {
			return notes.NewDatabaseError("journal_mode", "PRAGMA journal_mode;", err)
		}
		d.logger.Debug("journal mode", "mode", mode)
	}

	return nil
}

// Conn acquires a dedicated connection. The caller must Close it, which
// returns it to the pool. Acquisition blocks while another caller holds the
// connection, bounded only by ctx.
func (d *DB) Conn(ctx context.Context) (*sql.Conn, error) {
	return d.db.Conn(ctx)
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.config.Path
}

// Close closes every connection in the pool.
func (d *DB) Close() error {
	if err := d.db.Close(); err != nil {
		return notes.NewDatabaseError("close", "", err)
	}
	d.logger.Info("SQLite database closed")
	return nil
}
