package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/meur/pinboard/internal/config"
)

// Store handles all database operations
type Store struct {
	db      *sql.DB
	dialect dialect
}

type dialect struct {
	name      string
	driver    string
	numbered  bool   // $1-style placeholders
	timestamp string // column type for timestamps
}

var (
	sqliteDialect   = dialect{name: "sqlite", driver: "sqlite3", timestamp: "TIMESTAMP"}
	postgresDialect = dialect{name: "postgres", driver: "pgx", numbered: true, timestamp: "TIMESTAMPTZ"}
)

// New opens the configured database and runs migrations
func New(cfg config.StorageConfig) (*Store, error) {
	var (
		d      dialect
		source string
	)
	switch cfg.Driver {
	case "", "sqlite":
		d = sqliteDialect
		source = cfg.Path + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
	case "postgres":
		d = postgresDialect
		source = cfg.DSN
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}

	db, err := sql.Open(d.driver, source)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if d.name == "sqlite" {
		// SQLite allows a single writer
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &Store{db: db, dialect: d}
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Driver returns the dialect name (sqlite or postgres)
func (s *Store) Driver() string {
	return s.dialect.name
}

func (s *Store) migrate(ctx context.Context) error {
	ts := s.dialect.timestamp
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS pins (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL,
			source_url TEXT NOT NULL DEFAULT '',
			created_at ` + ts + ` NOT NULL,
			updated_at ` + ts + ` NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pins_user ON pins(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_pins_created ON pins(created_at)`,
		`CREATE TABLE IF NOT EXISTS collections (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			is_private BOOLEAN NOT NULL DEFAULT FALSE,
			share_code TEXT UNIQUE NOT NULL,
			created_at ` + ts + ` NOT NULL,
			updated_at ` + ts + ` NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_collections_user ON collections(user_id)`,
		`CREATE TABLE IF NOT EXISTS collection_pins (
			collection_id TEXT NOT NULL REFERENCES collections(id) ON DELETE CASCADE,
			pin_id TEXT NOT NULL REFERENCES pins(id) ON DELETE CASCADE,
			added_at ` + ts + ` NOT NULL,
			PRIMARY KEY (collection_id, pin_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_collection_pins_pin ON collection_pins(pin_id)`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			created_at ` + ts + ` NOT NULL,
			updated_at ` + ts + ` NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders for dialects that number them
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) exec(ctx context.Context, q querier, query string, args ...any) (sql.Result, error) {
	return q.ExecContext(ctx, s.dialect.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, q querier, query string, args ...any) (*sql.Rows, error) {
	return q.QueryContext(ctx, s.dialect.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, q querier, query string, args ...any) *sql.Row {
	return q.QueryRowContext(ctx, s.dialect.rebind(query), args...)
}

func newID() string {
	return uuid.New().String()
}

// generateShareCode creates a short unique share code
func generateShareCode() string {
	return uuid.New().String()[:8]
}

func now() time.Time {
	return time.Now().UTC()
}
