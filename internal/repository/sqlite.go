package repository

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteDB struct {
	db *sql.DB
}

var (
	_ RouteRepository    = (*SQLiteDB)(nil)
	_ DisasterRepository = (*SQLiteDB)(nil)
)

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// sqlite serializes writers anyway, and ":memory:" databases are per connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS routes (
			id TEXT PRIMARY KEY,
			disaster_type TEXT NOT NULL,
			start_name TEXT NOT NULL,
			start_lon REAL NOT NULL,
			start_lat REAL NOT NULL,
			safe_name TEXT NOT NULL,
			safe_lon REAL NOT NULL,
			safe_lat REAL NOT NULL,
			waypoints TEXT NOT NULL DEFAULT '[]',
			capacity INTEGER NOT NULL,
			current_users INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'open',
			last_updated INTEGER
		);

		CREATE TABLE IF NOT EXISTS route_status_updates (
			id TEXT PRIMARY KEY,
			route_id TEXT NOT NULL,
			status TEXT NOT NULL,
			reported_by TEXT,
			created_at INTEGER NOT NULL,
			FOREIGN KEY (route_id) REFERENCES routes(id)
		);

		CREATE TABLE IF NOT EXISTS disasters (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			title TEXT NOT NULL,
			magnitude REAL,
			longitude REAL NOT NULL,
			latitude REAL NOT NULL,
			radius_km REAL,
			timestamp INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_routes_start ON routes(start_lat, start_lon);
		CREATE INDEX IF NOT EXISTS idx_routes_type_status ON routes(disaster_type, status);
		CREATE INDEX IF NOT EXISTS idx_status_updates_route_id ON route_status_updates(route_id);
		CREATE INDEX IF NOT EXISTS idx_disasters_location ON disasters(latitude, longitude);
		CREATE INDEX IF NOT EXISTS idx_disasters_type ON disasters(type);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Timestamps are stored as unix milliseconds; NULL means never set.
func toMillis(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func fromMillis(v sql.NullInt64) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return time.UnixMilli(v.Int64).UTC()
}
