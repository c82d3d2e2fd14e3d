package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/DjordjeVuckovic/portfolio/internal/content"
	"github.com/DjordjeVuckovic/portfolio/internal/domain"
)

// Import upserts posts read from the content directory, keyed by slug. A
// stored post with the same slug is updated in place under its own id.
// The markdown files themselves are left untouched.
func (s *BlogService) Import(ctx context.Context, posts []content.Post) (int, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load blogs: %w", err)
	}
	ids := make(map[string]domain.ID, len(existing))
	for _, e := range existing {
		ids[e.Ref()] = e.ID
	}

	for i, p := range posts {
		post := blogFromPost(p)
		if id, ok := ids[post.Slug]; ok {
			post.ID = id
		}
		if err := s.repo.Save(ctx, post); err != nil {
			return i, fmt.Errorf("failed to import %s: %w", p.Filename, err)
		}
		ids[post.Slug] = post.ID
	}
	return len(posts), nil
}

func blogFromPost(p content.Post) domain.BlogPost {
	post := domain.BlogPost{
		ID:       domain.ID(p.Slug),
		Title:    p.Title,
		Slug:     p.Slug,
		Excerpt:  p.Excerpt,
		Content:  p.Body,
		Category: p.Category,
		Tags:     p.Tags,
		ReadTime: p.ReadTime,
		Status:   domain.BlogStatus(p.Status),
		Author:   p.Author,
	}
	if p.HasDate {
		post.Date = p.Date.Format(time.DateOnly)
	}
	if post.Status == "" {
		post.Status = domain.StatusPublished
	}
	return post
}

// Import upserts every project of a JSON array read from r.
func (s *ProjectService) Import(ctx context.Context, r io.Reader) (int, error) {
	var projects []domain.Project
	if err := json.NewDecoder(r).Decode(&projects); err != nil {
		return 0, fmt.Errorf("failed to decode projects: %w", err)
	}
	for i, p := range projects {
		if p.ID == "" {
			return i, fmt.Errorf("project %d has no id", i)
		}
		if err := s.repo.Save(ctx, p); err != nil {
			return i, fmt.Errorf("failed to import project %s: %w", p.ID, err)
		}
	}
	return len(projects), nil
}
