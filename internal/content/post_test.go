package content_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/DjordjeVuckovic/portfolio/internal/content"
)

func TestPost_Public(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"no status", "---\ntitle: A\n---\n", true},
		{"published", "---\nstatus: published\n---\n", true},
		{"draft", "---\nstatus: draft\n---\n", false},
		{"draft upper case", "---\nstatus: Draft\n---\n", false},
		{"scheduled past", "---\nstatus: scheduled\nscheduledDate: 2026-03-01\n---\n", true},
		{"scheduled future", "---\nstatus: scheduled\nscheduledDate: 2026-04-01\n---\n", false},
		{"scheduled without date", "---\nstatus: scheduled\n---\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, content.NewPost("a.md", tt.raw).Public(now))
		})
	}
}

func TestPublicPosts(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	posts := []content.Post{
		content.NewPost("b.md", "---\nstatus: draft\n---\n"),
		content.NewPost("a.md", ""),
		content.NewPost("c.md", "---\nstatus: scheduled\nscheduledDate: 2099-01-01\n---\n"),
		content.NewPost("d.md", "---\nstatus: published\n---\n"),
	}

	got := content.PublicPosts(posts, now)
	if assert.Len(t, got, 2) {
		assert.Equal(t, "a", got[0].Slug)
		assert.Equal(t, "d", got[1].Slug)
	}
}
