// Package storagetest holds the behaviour every storage.Store backend must
// share.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/portfolio/internal/domain"
	"github.com/DjordjeVuckovic/portfolio/internal/storage"
)

func doc(id, body string) storage.Document {
	return storage.Document{ID: id, Body: []byte(body)}
}

func ids(docs []storage.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID)
	}
	return out
}

// Run exercises a fresh store returned by newStore.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	ctx := context.Background()

	t.Run("empty collection", func(t *testing.T) {
		s := newStore(t)
		for _, c := range domain.Collections {
			docs, err := s.All(ctx, c)
			require.NoError(t, err)
			assert.Empty(t, docs)
		}
	})

	t.Run("put appends and updates in place", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, domain.CollectionBlogs, doc("a", `{"id":"a","title":"A"}`)))
		require.NoError(t, s.Put(ctx, domain.CollectionBlogs, doc("b", `{"id":"b","title":"B"}`)))
		require.NoError(t, s.Put(ctx, domain.CollectionBlogs, doc("c", `{"id":"c","title":"C"}`)))
		require.NoError(t, s.Put(ctx, domain.CollectionBlogs, doc("a", `{"id":"a","title":"A2"}`)))

		docs, err := s.All(ctx, domain.CollectionBlogs)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, ids(docs))
		assert.JSONEq(t, `{"id":"a","title":"A2"}`, string(docs[0].Body))
	})

	t.Run("collections are isolated", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, domain.CollectionPhotos, doc("1", `{"id":"1"}`)))

		blogs, err := s.All(ctx, domain.CollectionBlogs)
		require.NoError(t, err)
		assert.Empty(t, blogs)

		photos, err := s.All(ctx, domain.CollectionPhotos)
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, ids(photos))
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, domain.CollectionProjects, doc("x", `{"id":"x"}`)))
		require.NoError(t, s.Put(ctx, domain.CollectionProjects, doc("y", `{"id":"y"}`)))

		ok, err := s.Delete(ctx, domain.CollectionProjects, "x")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.Delete(ctx, domain.CollectionProjects, "x")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, s.Put(ctx, domain.CollectionProjects, doc("z", `{"id":"z"}`)))
		docs, err := s.All(ctx, domain.CollectionProjects)
		require.NoError(t, err)
		assert.Equal(t, []string{"y", "z"}, ids(docs))
	})

	t.Run("replace all", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, domain.CollectionPhotos, doc("old", `{"id":"old"}`)))

		require.NoError(t, s.ReplaceAll(ctx, domain.CollectionPhotos, []storage.Document{
			doc("n2", `{"id":"n2"}`),
			doc("n1", `{"id":"n1"}`),
		}))

		docs, err := s.All(ctx, domain.CollectionPhotos)
		require.NoError(t, err)
		assert.Equal(t, []string{"n2", "n1"}, ids(docs))

		require.NoError(t, s.ReplaceAll(ctx, domain.CollectionPhotos, nil))
		docs, err = s.All(ctx, domain.CollectionPhotos)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("unknown collection", func(t *testing.T) {
		s := newStore(t)
		_, err := s.All(ctx, domain.Collection("nope"))
		assert.Error(t, err)
	})
}
