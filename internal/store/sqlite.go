package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) a snippet database at path and runs any
// pending migrations. Use ":memory:" for an in-memory store.
func Open(path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if path == ":memory:" {
		// A second pooled connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save inserts the snippet, or updates it when the id already exists.
// A missing id and timestamps are filled in.
func (s *SQLiteStore) Save(sn *Snippet) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if sn.ID == "" {
		sn.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if sn.CreatedAt.IsZero() {
		sn.CreatedAt = now
	}
	sn.UpdatedAt = now

	_, err := s.db.Exec(
		`INSERT INTO snippets (id, title, kind, source, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title,
		   kind = excluded.kind,
		   source = excluded.source,
		   updated_at = excluded.updated_at`,
		sn.ID, sn.Title, sn.Kind, sn.Source, sn.CreatedAt, sn.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save snippet: %w", err)
	}
	return nil
}

// Get retrieves a snippet by id.
func (s *SQLiteStore) Get(id string) (*Snippet, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	sn := &Snippet{}
	err := s.db.QueryRow(
		`SELECT id, title, kind, source, created_at, updated_at FROM snippets WHERE id = ?`,
		id,
	).Scan(&sn.ID, &sn.Title, &sn.Kind, &sn.Source, &sn.CreatedAt, &sn.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snippet: %w", err)
	}

	return sn, nil
}

// List retrieves snippets ordered by most recent update.
func (s *SQLiteStore) List(limit int) ([]*Snippet, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	q := `SELECT id, title, kind, source, created_at, updated_at FROM snippets ORDER BY updated_at DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snippets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snippets []*Snippet
	for rows.Next() {
		sn := &Snippet{}
		if err := rows.Scan(&sn.ID, &sn.Title, &sn.Kind, &sn.Source, &sn.CreatedAt, &sn.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snippet: %w", err)
		}
		snippets = append(snippets, sn)
	}
	return snippets, rows.Err()
}

// Delete removes a snippet by id.
func (s *SQLiteStore) Delete(id string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	result, err := s.db.Exec(`DELETE FROM snippets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snippet: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
