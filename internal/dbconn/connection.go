// Package dbconn is the connection façade: it owns a driver.Driver, picks
// the matching platform.Platform for a dialect, and wires both into a
// schemamanager.Manager and (on demand) a migration.Migrator, the way the
// teacher's database.DB wraps *sql.DB with driver-aware helpers.
package dbconn

import (
	"context"

	"github.com/alekitto/dbal/internal/config"
	"github.com/alekitto/dbal/internal/dbalerr"
	"github.com/alekitto/dbal/internal/driver"
	"github.com/alekitto/dbal/internal/driver/sqldriver"
	"github.com/alekitto/dbal/internal/events"
	"github.com/alekitto/dbal/internal/logging"
	"github.com/alekitto/dbal/internal/migration"
	"github.com/alekitto/dbal/internal/platform"
	"github.com/alekitto/dbal/internal/schemamanager"
)

// Connection is a single dialect-bound handle: one driver.Driver, never
// shared across concurrent callers without external synchronization (a
// transaction in flight owns the underlying connection until it commits or
// rolls back).
type Connection struct {
	driver     driver.Driver
	platform   platform.Platform
	dispatcher events.Dispatcher
	dialect    string
	sm         *schemamanager.Manager
	logger     logging.Logger
}

// Option configures a Connection at Open time.
type Option func(*Connection)

// WithDispatcher attaches a Dispatcher so DDL events (schema.createTable,
// schema.alterTable, schema.dropTable) can be observed or overridden.
func WithDispatcher(d events.Dispatcher) Option {
	return func(c *Connection) { c.dispatcher = d }
}

// WithLogger attaches a logger (expected to be the "connection" channel of
// the module's logging.Manager) that reports open/close. The same logger is
// also handed down to the Connection's schemamanager.Manager.
func WithLogger(l logging.Logger) Option {
	return func(c *Connection) {
		if l != nil {
			c.logger = l
		}
	}
}

func platformFor(dialect string) (platform.Platform, error) {
	switch dialect {
	case "mysql":
		return platform.NewMySQLPlatform(), nil
	case "mariadb":
		return platform.NewMariaDBPlatform(), nil
	case "postgresql":
		return platform.NewPostgreSQLPlatform(), nil
	case "sqlite":
		return platform.NewSQLitePlatform(), nil
	default:
		return nil, dbalerr.New(dbalerr.Config, "unknown dialect: "+dialect)
	}
}

// Open parses dsn, opens a native database/sql connection through
// sqldriver, and returns a Connection bound to the matching platform.
func Open(dsn string, opts ...Option) (*Connection, error) {
	parsed, err := config.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	return OpenWithOptions(parsed, opts...)
}

// OpenWithOptions is Open for a caller that already has a parsed
// config.ConnectionOptions (e.g. assembled from discrete fields rather than
// a DSN string).
func OpenWithOptions(opts config.ConnectionOptions, connOpts ...Option) (*Connection, error) {
	p, err := platformFor(opts.Dialect)
	if err != nil {
		return nil, err
	}

	db, err := sqldriver.Open(opts.Dialect, opts.NativeDSN())
	if err != nil {
		return nil, err
	}

	c := &Connection{
		driver:   db,
		platform: p,
		dialect:  opts.Dialect,
		logger:   logging.NewNullLogger(),
	}
	for _, o := range connOpts {
		o(c)
	}
	c.sm = schemamanager.New(c.driver, c.platform, c.dispatcher).WithLogger(c.logger)

	c.logger.Info("connection opened", map[string]interface{}{"dialect": c.dialect, "database": opts.Database})
	return c, nil
}

// Dialect returns the logical dialect name ("mysql", "mariadb",
// "postgresql", "sqlite") this Connection was opened with.
func (c *Connection) Dialect() string { return c.dialect }

// Driver satisfies migration.Connection.
func (c *Connection) Driver() driver.Driver { return c.driver }

// Platform returns the dialect implementation backing this Connection.
func (c *Connection) Platform() platform.Platform { return c.platform }

// SchemaManager satisfies migration.Connection.
func (c *Connection) SchemaManager() *schemamanager.Manager { return c.sm }

// BeginTx satisfies migration.Connection.
func (c *Connection) BeginTx(ctx context.Context) (driver.Tx, error) {
	return c.driver.BeginTx(ctx)
}

// Ping verifies the connection is reachable, if the underlying driver
// supports it (sqldriver.DB does; a hand-rolled driver.Driver for tests may
// not, so this degrades to a no-op).
func (c *Connection) Ping(ctx context.Context) error {
	if pinger, ok := c.driver.(interface{ Ping(context.Context) error }); ok {
		return pinger.Ping(ctx)
	}
	return nil
}

// Close releases the underlying driver connection.
func (c *Connection) Close() error {
	c.logger.Info("connection closed", map[string]interface{}{"dialect": c.dialect})
	return c.driver.Close()
}

// Migrate runs migrator against this Connection up to its highest-numbered
// migration. A thin convenience so callers don't have to import
// internal/migration just to drive the common case.
func (c *Connection) Migrate(ctx context.Context, migrator *migration.Migrator) error {
	return migrator.Migrate(ctx, c)
}

// MigrateToVersion runs migrator against this Connection up to (or down to)
// version.
func (c *Connection) MigrateToVersion(ctx context.Context, migrator *migration.Migrator, version int64) error {
	return migrator.MigrateToVersion(ctx, c, version)
}

var _ migration.Connection = (*Connection)(nil)
