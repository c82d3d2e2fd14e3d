package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/DjordjeVuckovic/portfolio/internal/domain"
	"github.com/DjordjeVuckovic/portfolio/internal/storage"
)

const (
	indexFile     = "index.json"
	lockFile      = ".index.lock"
	lockRetryWait = 25 * time.Millisecond
)

// dirs maps collections to the directories the site has always used.
var dirs = map[domain.Collection]string{
	domain.CollectionBlogs:    "blogs",
	domain.CollectionPhotos:   "gallery",
	domain.CollectionProjects: "projects",
}

// Store keeps each collection as a JSON array in <root>/<dir>/index.json.
// Every mutation rewrites the whole file under an advisory lock and swaps it
// in with a rename, so readers see either the old or the new array.
type Store struct {
	root string
	mu   sync.Mutex
}

func New(root string) (*Store, error) {
	if root == "" {
		return nil, errors.New("json store root is not set")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create json store root: %w", err)
	}
	return &Store{root: root}, nil
}

// IndexPath returns the file holding collection c.
func (s *Store) IndexPath(c domain.Collection) (string, error) {
	dir, ok := dirs[c]
	if !ok {
		return "", fmt.Errorf(string(storage.ErrUnknownCollection), c)
	}
	return filepath.Join(s.root, dir, indexFile), nil
}

func (s *Store) All(ctx context.Context, c domain.Collection) ([]storage.Document, error) {
	path, err := s.IndexPath(c)
	if err != nil {
		return nil, err
	}
	return readIndex(path)
}

func (s *Store) Put(ctx context.Context, c domain.Collection, doc storage.Document) error {
	return s.update(ctx, c, func(docs []storage.Document) []storage.Document {
		for i := range docs {
			if docs[i].ID == doc.ID {
				docs[i] = doc
				return docs
			}
		}
		return append(docs, doc)
	})
}

func (s *Store) Delete(ctx context.Context, c domain.Collection, id string) (bool, error) {
	found := false
	err := s.update(ctx, c, func(docs []storage.Document) []storage.Document {
		out := docs[:0]
		for _, d := range docs {
			if d.ID == id {
				found = true
				continue
			}
			out = append(out, d)
		}
		return out
	})
	return found, err
}

func (s *Store) ReplaceAll(ctx context.Context, c domain.Collection, docs []storage.Document) error {
	return s.update(ctx, c, func([]storage.Document) []storage.Document {
		return docs
	})
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) update(ctx context.Context, c domain.Collection, fn func([]storage.Document) []storage.Document) error {
	path, err := s.IndexPath(c)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lock := flock.New(filepath.Join(dir, lockFile))
	locked, err := lock.TryLockContext(ctx, lockRetryWait)
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", path, err)
	}
	if !locked {
		return fmt.Errorf("failed to lock %s", path)
	}
	defer lock.Unlock()

	docs, err := readIndex(path)
	if err != nil {
		return err
	}
	return writeIndex(path, fn(docs))
}

func readIndex(path string) ([]storage.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []storage.Document{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []storage.Document{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	docs := make([]storage.Document, 0, len(raw))
	for _, r := range raw {
		docs = append(docs, storage.Document{ID: idOf(r), Body: []byte(r)})
	}
	return docs, nil
}

// idOf returns "" for entries without a usable id; they are kept verbatim.
func idOf(r json.RawMessage) string {
	var head struct {
		ID domain.ID `json:"id"`
	}
	if err := json.Unmarshal(r, &head); err != nil {
		return ""
	}
	return head.ID.String()
}

func writeIndex(path string, docs []storage.Document) error {
	raw := make([]json.RawMessage, 0, len(docs))
	for _, d := range docs {
		raw = append(raw, json.RawMessage(d.Body))
	}
	b, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), indexFile+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
