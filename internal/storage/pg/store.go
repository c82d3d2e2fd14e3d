package pg

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DjordjeVuckovic/portfolio/internal/domain"
	"github.com/DjordjeVuckovic/portfolio/internal/storage"
)

//go:embed schema.sql
var schemaSQL string

const upsertSQL = `
INSERT INTO content_records (collection, id, position, body)
VALUES ($1, $2, (SELECT COALESCE(MAX(position), 0) + 1 FROM content_records WHERE collection = $1), $3::jsonb)
ON CONFLICT (collection, id) DO UPDATE SET
    body = EXCLUDED.body,
    updated_at = now()`

// Store keeps every collection in one table, ordered by position.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(pool *ConnectionPool) *Store {
	return &Store{db: pool.conn}
}

// EnsureSchema creates the content table when it is missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *Store) All(ctx context.Context, c domain.Collection) ([]storage.Document, error) {
	if !storage.ValidCollection(c) {
		return nil, fmt.Errorf(string(storage.ErrUnknownCollection), c)
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, body::text FROM content_records WHERE collection = $1 ORDER BY position`, string(c))
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

	if _, err := s.db.Exec(ctx, upsertSQL, string(c), doc.ID, string(doc.Body)); err != nil {
		return fmt.Errorf("failed to upsert %s %s: %w", c, doc.ID, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, c domain.Collection, id string) (bool, error) {
	if !storage.ValidCollection(c) {
		return false, fmt.Errorf(string(storage.ErrUnknownCollection), c)
	}

	tag, err := s.db.Exec(ctx,
		`DELETE FROM content_records WHERE collection = $1 AND id = $2`, string(c), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s %s: %w", c, id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ReplaceAll(ctx context.Context, c domain.Collection, docs []storage.Document) error {
	if !storage.ValidCollection(c) {
		return fmt.Errorf(string(storage.ErrUnknownCollection), c)
	}

	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM content_records WHERE collection = $1`, string(c)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", c, err)
		}

		batch := &pgx.Batch{}
		for _, d := range docs {
			batch.Queue(upsertSQL, string(c), d.ID, string(d.Body))
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert %s: %w", c, err)
		}
		return nil
	})
}

// Close releases the pool.
func (s *Store) Close() error {
	s.db.Close()
	return nil
}
