package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the sqlite connection holding the scraped review store.
type DB struct {
	*sql.DB
	prepared map[string]*sql.Stmt
	mutex    sync.RWMutex
}

// NewDB opens (or creates) the review database at path and prepares the
// statements the reader and writer paths use. Pass "file::memory:?cache=shared"
// for an in-memory database in tests.
func NewDB(path string) (*DB, error) {
	// mattn/go-sqlite3 takes pragmas as _name=value DSN parameters.
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", path)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &DB{
		DB:       db,
		prepared: make(map[string]*sql.Stmt),
	}

	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := database.initPreparedStatements(); err != nil {
		return nil, fmt.Errorf("failed to initialize prepared statements: %w", err)
	}

	slog.Info("Review database initialized", "path", path)
	return database, nil
}

// migrate creates the reviews table used by the scraper and the batch
// pipeline. The column set is the load contract: the reader fails the
// whole batch when any of these is missing.
func (db *DB) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS reviews (
			review_id INTEGER PRIMARY KEY,
			academy_name TEXT NOT NULL,
			rating REAL NOT NULL,
			text TEXT,
			date_created TEXT,
			source_file TEXT
		)`,

		`CREATE INDEX IF NOT EXISTS idx_reviews_academy_name ON reviews(academy_name)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}

// initPreparedStatements initializes frequently used prepared statements
func (db *DB) initPreparedStatements() error {
	statements := map[string]string{
		"insert_review": `INSERT INTO reviews (review_id, academy_name, rating, text, date_created, source_file)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(review_id) DO UPDATE SET
			academy_name = excluded.academy_name,
			rating = excluded.rating,
			text = excluded.text,
			date_created = excluded.date_created,
			source_file = excluded.source_file`,

		"count_reviews": `SELECT COUNT(*) FROM reviews`,

		"count_reviews_by_academy": `SELECT COUNT(*) FROM reviews WHERE academy_name = ?`,
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, query := range statements {
		stmt, err := db.Prepare(query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement %s: %w", name, err)
		}
		db.prepared[name] = stmt
	}

	return nil
}

// GetPreparedStatement retrieves a prepared statement
func (db *DB) GetPreparedStatement(name string) (*sql.Stmt, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	stmt, exists := db.prepared[name]
	if !exists {
		return nil, fmt.Errorf("prepared statement %s not found", name)
	}

	return stmt, nil
}

// Close closes the database connection and prepared statements
func (db *DB) Close() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, stmt := range db.prepared {
		if err := stmt.Close(); err != nil {
			slog.Warn("Failed to close prepared statement", "name", name, "error", err)
		}
	}

	db.prepared = make(map[string]*sql.Stmt)

	return db.DB.Close()
}
