package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/portfolio/internal/domain"
)

type Entity interface {
	Key() string
}

// Repository is a typed view over one collection of a Store.
type Repository[T Entity] struct {
	store      Store
	collection domain.Collection
}

func NewRepository[T Entity](store Store, c domain.Collection) *Repository[T] {
	return &Repository[T]{store: store, collection: c}
}

func (r *Repository[T]) Collection() domain.Collection {
	return r.collection
}

// List decodes every document in store order. Documents that no longer decode
// are logged and left out.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	docs, err := r.store.All(ctx, r.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.collection, err)
	}

	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := json.Unmarshal(d.Body, &v); err != nil {
			slog.Warn("skipping malformed record", "collection", r.collection, "id", d.ID, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *Repository[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	items, err := r.List(ctx)
	if err != nil {
		return zero, err
	}
	for _, item := range items {
		if item.Key() == id {
			return item, nil
		}
	}
	return zero, fmt.Errorf("%s %s: %w", r.collection, id, ErrNotFound)
}

func (r *Repository[T]) Save(ctx context.Context, v T) error {
	doc, err := encode(v)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, r.collection, doc); err != nil {
		return fmt.Errorf("failed to save %s %s: %w", r.collection, doc.ID, err)
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := r.store.Delete(ctx, r.collection, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s %s: %w", r.collection, id, err)
	}
	return ok, nil
}

func (r *Repository[T]) ReplaceAll(ctx context.Context, items []T) error {
	docs := make([]Document, 0, len(items))
	for _, item := range items {
		doc, err := encode(item)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	if err := r.store.ReplaceAll(ctx, r.collection, docs); err != nil {
		return fmt.Errorf("failed to replace %s: %w", r.collection, err)
	}
	return nil
}

func encode[T Entity](v T) (Document, error) {
	id := v.Key()
	if id == "" {
		return Document{}, fmt.Errorf("record has no id")
	}
	body, err := json.Marshal(v)
	if err != nil {
		return Document{}, fmt.Errorf("failed to encode record %s: %w", id, err)
	}
	return Document{ID: id, Body: body}, nil
}
