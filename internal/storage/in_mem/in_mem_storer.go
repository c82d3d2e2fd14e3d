package in_mem

import (
	"context"
	"fmt"
	"sync"

	"github.com/DjordjeVuckovic/portfolio/internal/domain"
	"github.com/DjordjeVuckovic/portfolio/internal/storage"
)

// InMemStorer keeps collections in process memory. Nothing survives a
// restart; it backs tests and dry runs.
type InMemStorer struct {
	storageLock sync.RWMutex
	storage     map[domain.Collection][]storage.Document
}

func NewInMemStorer() *InMemStorer {
	return &InMemStorer{
		storage: make(map[domain.Collection][]storage.Document),
	}
}

func (s *InMemStorer) All(ctx context.Context, c domain.Collection) ([]storage.Document, error) {
	if !storage.ValidCollection(c) {
		return nil, fmt.Errorf(string(storage.ErrUnknownCollection), c)
	}
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	out := make([]storage.Document, 0, len(s.storage[c]))
	for _, d := range s.storage[c] {
		out = append(out, copyDoc(d))
	}
	return out, nil
}

func (s *InMemStorer) Put(ctx context.Context, c domain.Collection, doc storage.Document) error {
	if !storage.ValidCollection(c) {
		return fmt.Errorf(string(storage.ErrUnknownCollection), c)
	}
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	docs := s.storage[c]
	for i := range docs {
		if docs[i].ID == doc.ID {
			docs[i] = copyDoc(doc)
			return nil
		}
	}
	s.storage[c] = append(docs, copyDoc(doc))
	return nil
}

func (s *InMemStorer) Delete(ctx context.Context, c domain.Collection, id string) (bool, error) {
	if !storage.ValidCollection(c) {
		return false, fmt.Errorf(string(storage.ErrUnknownCollection), c)
	}
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	docs := s.storage[c]
	for i := range docs {
		if docs[i].ID == id {
			s.storage[c] = append(docs[:i:i], docs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemStorer) ReplaceAll(ctx context.Context, c domain.Collection, docs []storage.Document) error {
	if !storage.ValidCollection(c) {
		return fmt.Errorf(string(storage.ErrUnknownCollection), c)
	}
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	out := make([]storage.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, copyDoc(d))
	}
	s.storage[c] = out
	return nil
}

func (s *InMemStorer) Close() error {
	return nil
}

func copyDoc(d storage.Document) storage.Document {
	return storage.Document{ID: d.ID, Body: append([]byte(nil), d.Body...)}
}
