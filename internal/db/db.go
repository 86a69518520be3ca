package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // Import for side-effects only

	"github.com/illydh/robo-driver/internal/models"
)

// Connect opens a connection to the SQLite database and ensures the schema exists.
// It automatically applies recommended settings for concurrency (WAL mode).
func Connect(dbPath string) (*sql.DB, error) {
	// Use robust connection settings to prevent "database locked" errors
	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL", dbPath)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err = createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}

// createSchema is private as it's only called by Connect.
func createSchema(db *sql.DB) error {
	lookupsTable := `
	CREATE TABLE IF NOT EXISTS lookups (
	  id TEXT PRIMARY KEY,
	  query TEXT NOT NULL,
	  site TEXT NOT NULL,
	  name TEXT NOT NULL,
	  price TEXT NOT NULL,
	  price_value REAL,
	  url TEXT,
	  looked_up_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_lookups_query ON lookups(query);
	CREATE INDEX IF NOT EXISTS idx_lookups_site ON lookups(site);
	`
	_, err := db.Exec(lookupsTable)
	return err
}

// SaveLookup records one successful lookup under a fresh record id.
func SaveLookup(db *sql.DB, p *models.Product) error {
	_, err := db.Exec(`
		INSERT INTO lookups (id, query, site, name, price, price_value, url)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		p.Query,
		p.Site,
		p.Name,
		p.Price,
		sql.NullFloat64{Float64: p.PriceValue, Valid: p.PriceValue > 0},
		sql.NullString{String: p.URL, Valid: p.URL != ""},
	)
	if err != nil {
		return fmt.Errorf("failed to record lookup for %q: %w", p.Query, err)
	}
	return nil
}

// HistoryEntry is one past lookup as shown by the history command.
type HistoryEntry struct {
	Query      string
	Site       string
	Name       string
	Price      string
	LookedUpAt time.Time
}

// ListHistory returns all recorded lookups, newest first.
func ListHistory(db *sql.DB) ([]HistoryEntry, error) {
	rows, err := db.Query(`
		SELECT query, site, name, price, looked_up_at
		FROM lookups
		ORDER BY looked_up_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.Query, &e.Site, &e.Name, &e.Price, &e.LookedUpAt); err == nil {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// ClearHistory removes the records for a specific query.
func ClearHistory(db *sql.DB, query string) (int64, error) {
	res, err := db.Exec("DELETE FROM lookups WHERE query = ?", query)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ClearAllHistory wipes every recorded lookup.
func ClearAllHistory(db *sql.DB) (int64, error) {
	res, err := db.Exec("DELETE FROM lookups")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
