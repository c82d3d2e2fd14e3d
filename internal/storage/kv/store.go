package kv

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/DjordjeVuckovic/portfolio/internal/domain"
	"github.com/DjordjeVuckovic/portfolio/internal/storage"
)

var (
	orderBucket = []byte("order")
	docsBucket  = []byte("docs")
	indexBucket = []byte("index")
)

// Store keeps collections in a single bbolt file. Every collection bucket
// holds three nested buckets: order (sequence -> id) preserves insertion
// order, docs (id -> body) holds the records and index (id -> sequence)
// lets an update keep its position.
type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("bolt store path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create bolt store dir: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) All(ctx context.Context, c domain.Collection) ([]storage.Document, error) {
	if !storage.ValidCollection(c) {
		return nil, fmt.Errorf(string(storage.ErrUnknownCollection), c)
	}

	docs := []storage.Document{}
	err := s.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(c))
		if root == nil {
			return nil
		}
		order, data := root.Bucket(orderBucket), root.Bucket(docsBucket)

		return order.ForEach(func(_, id []byte) error {
			body := data.Get(id)
			if body == nil {
				return nil
			}
			// bbolt memory is only valid inside the transaction.
			docs = append(docs, storage.Document{
				ID:   string(id),
				Body: append([]byte(nil), body...),
			})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c, err)
	}
	return docs, nil
}

func (s *Store) Put(ctx context.Context, c domain.Collection, doc storage.Document) error {
	return s.update(c, func(b *buckets) error {
		return b.put(doc)
	})
}

func (s *Store) Delete(ctx context.Context, c domain.Collection, id string) (bool, error) {
	found := false
	err := s.update(c, func(b *buckets) error {
		key := []byte(id)
		seq := b.index.Get(key)
		if seq == nil {
			return nil
		}
		found = true
		if err := b.order.Delete(seq); err != nil {
			return err
		}
		if err := b.index.Delete(key); err != nil {
			return err
		}
		return b.docs.Delete(key)
	})
	return found, err
}

func (s *Store) ReplaceAll(ctx context.Context, c domain.Collection, docs []storage.Document) error {
	if !storage.ValidCollection(c) {
		return fmt.Errorf(string(storage.ErrUnknownCollection), c)
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(c)) != nil {
			if err := tx.DeleteBucket([]byte(c)); err != nil {
				return err
			}
		}
		b, err := openBuckets(tx, c)
		if err != nil {
			return err
		}
		for _, d := range docs {
			if err := b.put(d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace %s: %w", c, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the database file is still usable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.View(func(*bolt.Tx) error { return nil })
}

func (s *Store) update(c domain.Collection, fn func(*buckets) error) error {
	if !storage.ValidCollection(c) {
		return fmt.Errorf(string(storage.ErrUnknownCollection), c)
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := openBuckets(tx, c)
		if err != nil {
			return err
		}
		return fn(b)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", c, err)
	}
	return nil
}

type buckets struct {
	order *bolt.Bucket
	docs  *bolt.Bucket
	index *bolt.Bucket
}

func openBuckets(tx *bolt.Tx, c domain.Collection) (*buckets, error) {
	root, err := tx.CreateBucketIfNotExists([]byte(c))
	if err != nil {
		return nil, err
	}
	b := &buckets{}
	if b.order, err = root.CreateBucketIfNotExists(orderBucket); err != nil {
		return nil, err
	}
	if b.docs, err = root.CreateBucketIfNotExists(docsBucket); err != nil {
		return nil, err
	}
	if b.index, err = root.CreateBucketIfNotExists(indexBucket); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *buckets) put(doc storage.Document) error {
	key := []byte(doc.ID)
	if b.index.Get(key) == nil {
		n, err := b.order.NextSequence()
		if err != nil {
			return err
		}
		seq := make([]byte, 8)
		binary.BigEndian.PutUint64(seq, n)
		if err := b.order.Put(seq, key); err != nil {
			return err
		}
		if err := b.index.Put(key, seq); err != nil {
			return err
		}
	}
	return b.docs.Put(key, doc.Body)
}
