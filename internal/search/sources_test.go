package search_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/portfolio/internal/domain"
	"github.com/DjordjeVuckovic/portfolio/internal/search"
)

type sliceLister[T any] []T

func (l sliceLister[T]) List(context.Context) ([]T, error) {
	return l, nil
}

func TestBlogSource_Candidates(t *testing.T) {
	long := strings.Repeat("é", 200)
	src := search.NewBlogSource(sliceLister[domain.BlogPost]{
		{ID: "1", Title: "With excerpt", Slug: "with-excerpt", Excerpt: "short", Tags: []string{"go"}, Date: "2026-01-02"},
		{ID: "2", Title: "No slug", Content: long},
	})

	got, err := src.Candidates(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "/blog/with-excerpt", got[0].URL)
	assert.Equal(t, "short", got[0].Snippet)
	assert.Equal(t, "short", got[0].Description)
	assert.Equal(t, []string{"go"}, got[0].Tags)
	assert.Equal(t, domain.ContentBlog, got[0].Type)

	assert.Equal(t, "/blog/2", got[1].URL)
	assert.Equal(t, strings.Repeat("é", 150)+"...", got[1].Snippet)
}

func TestPhotoAndProjectSource_Candidates(t *testing.T) {
	photos, err := search.NewPhotoSource(sliceLister[domain.Photo]{
		{ID: "p1", Title: "Sunset", UploadDate: "2026-03-01T10:00:00Z"},
	}).Candidates(context.Background())
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "/gallery#p1", photos[0].URL)
	assert.Equal(t, "2026-03-01T10:00:00Z", photos[0].Date)

	projects, err := search.NewProjectSource(sliceLister[domain.Project]{
		{ID: "7", Title: "CLI", Tags: []string{"cobra"}},
	}).Candidates(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "/projects/7", projects[0].URL)
	assert.Equal(t, domain.ContentProject, projects[0].Type)
}
