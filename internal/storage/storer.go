package storage

import (
	"context"
	"errors"

	"github.com/DjordjeVuckovic/portfolio/internal/domain"
)

// Document is one stored record: its id and its JSON body.
type Document struct {
	ID   string
	Body []byte
}

// Store is the authoritative content store. Each collection is an ordered
// list of documents keyed by id.
type Store interface {
	// All returns the documents of c in insertion order. A collection that
	// was never written is empty.
	All(ctx context.Context, c domain.Collection) ([]Document, error)
	// Put replaces the document with the same id in place, or appends it.
	Put(ctx context.Context, c domain.Collection, doc Document) error
	// Delete removes id from c and reports whether it was present.
	Delete(ctx context.Context, c domain.Collection, id string) (bool, error)
	// ReplaceAll rewrites c with docs as one unit.
	ReplaceAll(ctx context.Context, c domain.Collection, docs []Document) error
	Close() error
}

type Type string

const (
	Bolt   Type = "bolt"
	JSON   Type = "json"
	SQLite Type = "sqlite"
	PG     Type = "pg"
)

var Types = []Type{Bolt, JSON, SQLite, PG}

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storage type: %s"
	ErrUnknownCollection StorerError = "unknown collection: %s"
)

func (e StorerError) Error() string {
	return string(e)
}

var ErrNotFound = errors.New("record not found")

// ValidCollection reports whether c is one of domain.Collections.
func ValidCollection(c domain.Collection) bool {
	for _, known := range domain.Collections {
		if c == known {
			return true
		}
	}
	return false
}
