package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/DjordjeVuckovic/portfolio/internal/domain"
	"github.com/DjordjeVuckovic/portfolio/internal/storage"
)

//go:embed schema.sql
var schemaSQL string

const upsertSQL = `
INSERT INTO content_records (collection, id, position, body)
VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM content_records WHERE collection = ?), ?)
ON CONFLICT (collection, id) DO UPDATE SET
    body = excluded.body,
    updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path. ":memory:" is accepted.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite store path is not set")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time; also keeps ":memory:" on a single connection.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode = WAL", "PRAGMA busy_timeout = 5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) All(ctx context.Context, c domain.Collection) ([]storage.Document, error) {
	if !storage.ValidCollection(c) {
		return nil, fmt.Errorf(string(storage.ErrUnknownCollection), c)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, body FROM content_records WHERE collection = ? ORDER BY position`, string(c))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c, err)
	}
	defer rows.Close()

	docs := []storage.Document{}
	for rows.Next() {
		var (
			id   string
			body string
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", c, err)
		}
		docs = append(docs, storage.Document{ID: id, Body: []byte(body)})
	}
	return docs, rows.Err()
}

func (s *Store) Put(ctx context.Context, c domain.Collection, doc storage.Document) error {
	if !storage.ValidCollection(c) {
		return fmt.Errorf(string(storage.ErrUnknownCollection), c)
	}

	if _, err := s.db.ExecContext(ctx, upsertSQL, string(c), doc.ID, string(c), string(doc.Body)); err != nil {
		return fmt.Errorf("failed to upsert %s %s: %w", c, doc.ID, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, c domain.Collection, id string) (bool, error) {
	if !storage.ValidCollection(c) {
		return false, fmt.Errorf(string(storage.ErrUnknownCollection), c)
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM content_records WHERE collection = ? AND id = ?`, string(c), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s %s: %w", c, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) ReplaceAll(ctx context.Context, c domain.Collection, docs []storage.Document) error {
	if !storage.ValidCollection(c) {
		return fmt.Errorf(string(storage.ErrUnknownCollection), c)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM content_records WHERE collection = ?`, string(c)); err != nil {
		return fmt.Errorf("failed to clear %s: %w", c, err)
	}
	for _, d := range docs {
		if _, err := tx.ExecContext(ctx, upsertSQL, string(c), d.ID, string(c), string(d.Body)); err != nil {
			return fmt.Errorf("failed to insert %s %s: %w", c, d.ID, err)
		}
	}
	return tx.Commit()
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
