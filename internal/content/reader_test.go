package content_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/portfolio/internal/content"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestReader_Posts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2026-01-week3-hello.mdx", "---\ntitle: Hello\ndate: Jan 16, 2026\ncategory: Go\n---\nbody")
	writeFile(t, dir, "2025-12-week1-no-meta.md", "just text")
	writeFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts.md"), 0o755))

	posts, err := content.NewReader(dir).Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "no-meta", posts[0].Slug)
	assert.Equal(t, "no meta", posts[0].Title)
	assert.Equal(t, content.DefaultCategory, posts[0].Category)
	assert.Equal(t, content.DefaultReadTime, posts[0].ReadTime)
	assert.Equal(t, content.NoDate, posts[0].DisplayDate())
	assert.Equal(t, "just text", posts[0].Body)

	assert.Equal(t, "hello", posts[1].Slug)
	assert.Equal(t, "Hello", posts[1].Title)
	assert.Equal(t, "Go", posts[1].Category)
	assert.Equal(t, "Jan 16, 2026", posts[1].DisplayDate())
}

func TestReader_MissingDir(t *testing.T) {
	files, err := content.NewReader(filepath.Join(t.TempDir(), "nope")).Files(context.Background())

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestReader_PostBySlug(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2026-02-week1-target.md", "---\ntitle: Target\n---\nx")

	r := content.NewReader(dir)

	p, ok, err := r.PostBySlug(context.Background(), "target")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Target", p.Title)

	_, ok, err = r.PostBySlug(context.Background(), "other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSortNewestFirst(t *testing.T) {
	posts := []content.Post{
		content.NewPost("a.md", "no date"),
		content.NewPost("b.md", "---\ndate: 2025-01-01\n---\n"),
		content.NewPost("c.md", "---\ndate: not a date\n---\n"),
		content.NewPost("d.md", "---\ndate: 2026-03-01\n---\n"),
	}

	content.SortNewestFirst(posts)

	var slugs []string
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, slugs)
}

func TestRenderHTML(t *testing.T) {
	html, err := content.RenderHTML("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")

	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.True(t, strings.Contains(html, "<table>"))
}

func TestDirFrom(t *testing.T) {
	assert.Equal(t, content.DefaultDir, content.DirFrom(func(string) string { return "" }))
	assert.Equal(t, "posts", content.DirFrom(func(k string) string {
		if k == "CONTENT_DIR" {
			return "posts"
		}
		return ""
	}))
}
