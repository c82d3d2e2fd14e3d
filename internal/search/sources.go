package search

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/portfolio/internal/domain"
)

const snippetLength = 150

// Lister is the read side of a collection repository.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

type BlogSource struct {
	blogs Lister[domain.BlogPost]
}

func NewBlogSource(blogs Lister[domain.BlogPost]) *BlogSource {
	return &BlogSource{blogs: blogs}
}

func (s *BlogSource) Type() domain.ContentType {
	return domain.ContentBlog
}

func (s *BlogSource) Candidates(ctx context.Context) ([]Candidate, error) {
	posts, err := s.blogs.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(posts))
	for _, p := range posts {
		out = append(out, Candidate{
			ID:          p.ID.String(),
			Type:        domain.ContentBlog,
			Title:       p.Title,
			Category:    p.Category,
			Tags:        p.Tags,
			Description: p.Excerpt,
			Content:     p.Content,
			Snippet:     blogSnippet(p),
			URL:         "/blog/" + p.Ref(),
			Date:        p.Date,
		})
	}
	return out, nil
}

func blogSnippet(p domain.BlogPost) string {
	if p.Excerpt != "" {
		return p.Excerpt
	}
	r := []rune(p.Content)
	if len(r) > snippetLength {
		r = r[:snippetLength]
	}
	return string(r) + "..."
}

type PhotoSource struct {
	photos Lister[domain.Photo]
}

func NewPhotoSource(photos Lister[domain.Photo]) *PhotoSource {
	return &PhotoSource{photos: photos}
}

func (s *PhotoSource) Type() domain.ContentType {
	return domain.ContentPhoto
}

func (s *PhotoSource) Candidates(ctx context.Context) ([]Candidate, error) {
	photos, err := s.photos.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(photos))
	for _, p := range photos {
		out = append(out, Candidate{
			ID:          p.ID.String(),
			Type:        domain.ContentPhoto,
			Title:       p.Title,
			Category:    p.Category,
			Description: p.Description,
			URL:         fmt.Sprintf("/gallery#%s", p.ID),
			Date:        p.UploadDate,
		})
	}
	return out, nil
}

type ProjectSource struct {
	projects Lister[domain.Project]
}

func NewProjectSource(projects Lister[domain.Project]) *ProjectSource {
	return &ProjectSource{projects: projects}
}

func (s *ProjectSource) Type() domain.ContentType {
	return domain.ContentProject
}

func (s *ProjectSource) Candidates(ctx context.Context) ([]Candidate, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(projects))
	for _, p := range projects {
		out = append(out, Candidate{
			ID:          p.ID.String(),
			Type:        domain.ContentProject,
			Title:       p.Title,
			Category:    p.Category,
			Tags:        p.Tags,
			Description: p.Description,
			URL:         fmt.Sprintf("/projects/%s", p.ID),
			Date:        p.Date,
		})
	}
	return out, nil
}
