package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/portfolio/internal/domain"
	"github.com/DjordjeVuckovic/portfolio/internal/storage"
	"github.com/DjordjeVuckovic/portfolio/internal/storage/in_mem"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewRepository[domain.Project](in_mem.NewInMemStorer(), domain.CollectionProjects)

	require.NoError(t, repo.Save(ctx, domain.Project{ID: "1", Title: "CLI"}))
	require.NoError(t, repo.Save(ctx, domain.Project{ID: "2", Title: "Site"}))
	require.NoError(t, repo.Save(ctx, domain.Project{ID: "1", Title: "CLI v2"}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "CLI v2", items[0].Title)

	got, err := repo.Get(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Site", got.Title)

	_, err = repo.Get(ctx, "3")
	assert.True(t, errors.Is(err, storage.ErrNotFound))

	ok, err := repo.Delete(ctx, "1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.ReplaceAll(ctx, []domain.Project{{ID: "9"}, {ID: "8"}}))
	items, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.ID("9"), items[0].ID)
}

func TestRepository_SkipsMalformed(t *testing.T) {
	ctx := context.Background()
	store := in_mem.NewInMemStorer()
	require.NoError(t, store.ReplaceAll(ctx, domain.CollectionPhotos, []storage.Document{
		{ID: "a", Body: []byte(`{"id":"a","title":"ok"}`)},
		{ID: "", Body: []byte(`"garbage"`)},
		{ID: "b", Body: []byte(`{"id":17,"title":"numeric"}`)},
	}))

	photos, err := storage.NewRepository[domain.Photo](store, domain.CollectionPhotos).List(ctx)

	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, domain.ID("17"), photos[1].ID)
}

func TestRepository_RequiresID(t *testing.T) {
	repo := storage.NewRepository[domain.BlogPost](in_mem.NewInMemStorer(), domain.CollectionBlogs)

	err := repo.Save(context.Background(), domain.BlogPost{Title: "no id"})

	assert.Error(t, err)
}
