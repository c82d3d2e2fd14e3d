package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/portfolio/internal/domain"
	"github.com/DjordjeVuckovic/portfolio/internal/storage"
	"github.com/DjordjeVuckovic/portfolio/internal/storage/storagetest"
)

func open(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path)
	require.NoError(t, err)
	return s
}

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		s := open(t, filepath.Join(t.TempDir(), "content.db"))
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "content.db")

	s := open(t, path)
	require.NoError(t, s.Put(ctx, domain.CollectionBlogs, storage.Document{ID: "1", Body: []byte(`{"id":"1"}`)}))
	require.NoError(t, s.Put(ctx, domain.CollectionBlogs, storage.Document{ID: "2", Body: []byte(`{"id":"2"}`)}))
	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.Close())

	s = open(t, path)
	defer s.Close()

	docs, err := s.All(ctx, domain.CollectionBlogs)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "1", docs[0].ID)
	assert.Equal(t, `{"id":"2"}`, string(docs[1].Body))
}
