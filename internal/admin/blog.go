package admin

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/DjordjeVuckovic/portfolio/internal/apperr"
	"github.com/DjordjeVuckovic/portfolio/internal/content"
	"github.com/DjordjeVuckovic/portfolio/internal/domain"
	"github.com/DjordjeVuckovic/portfolio/internal/storage"
)

type sidecarMeta struct {
	Title         string   `yaml:"title"`
	Date          string   `yaml:"date,omitempty"`
	Category      string   `yaml:"category,omitempty"`
	Excerpt       string   `yaml:"excerpt,omitempty"`
	Author        string   `yaml:"author,omitempty"`
	ReadTime      string   `yaml:"readTime,omitempty"`
	Status        string   `yaml:"status,omitempty"`
	ScheduledDate string   `yaml:"scheduledDate,omitempty"`
	Tags          []string `yaml:"tags,omitempty"`
}

// BlogService manages authored posts. The store is authoritative; each save
// also writes a markdown copy into the content directory so the archive and
// the post pages pick it up. The two writes are not atomic.
type BlogService struct {
	repo       *storage.Repository[domain.BlogPost]
	contentDir string
	now        func() time.Time
}

func NewBlogService(store storage.Store, contentDir string) *BlogService {
	return &BlogService{
		repo:       storage.NewRepository[domain.BlogPost](store, domain.CollectionBlogs),
		contentDir: contentDir,
		now:        time.Now,
	}
}

func (s *BlogService) List(ctx context.Context) ([]domain.BlogPost, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.NewOperation("failed to load blogs", err)
	}
	return posts, nil
}

// Save upserts post by id and rewrites its markdown file. Slugs are unique
// across posts: an explicit slug held by another post is rejected, a derived
// one gets a numeric suffix.
func (s *BlogService) Save(ctx context.Context, post domain.BlogPost) (domain.BlogPost, error) {
	post.Title = strings.TrimSpace(post.Title)
	if post.Title == "" {
		return domain.BlogPost{}, apperr.NewValidation("title is required")
	}
	if post.ID == "" {
		post.ID = domain.ID(uuid.NewString())
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return domain.BlogPost{}, apperr.NewOperation("failed to save blog", err)
	}
	var (
		previous    domain.BlogPost
		hadPrevious bool
		taken       = make(map[string]struct{}, len(existing))
	)
	for _, e := range existing {
		if e.ID == post.ID {
			previous, hadPrevious = e, true
			continue
		}
		taken[e.Ref()] = struct{}{}
	}

	if post.Slug != "" {
		if _, ok := taken[post.Slug]; ok {
			return domain.BlogPost{}, apperr.NewValidation(fmt.Sprintf("slug %q is already used by another post", post.Slug))
		}
	} else {
		base := content.Slugify(post.Title)
		if base == "" {
			base = post.ID.String()
		}
		post.Slug = freeSlug(base, taken)
	}
	if post.Status == "" {
		post.Status = domain.StatusDraft
	}
	if post.Category == "" {
		post.Category = content.DefaultCategory
	}
	if post.ReadTime == "" {
		post.ReadTime = content.DefaultReadTime
	}
	if post.Date == "" {
		post.Date = s.now().Format(time.DateOnly)
	}

	if err := s.repo.Save(ctx, post); err != nil {
		return domain.BlogPost{}, apperr.NewOperation("failed to save blog", err)
	}

	name := s.sidecarName(post)
	if err := s.writeSidecar(name, post); err != nil {
		return domain.BlogPost{}, apperr.NewOperation("failed to save blog", err)
	}
	if hadPrevious {
		if old := s.sidecarName(previous); old != name {
			s.removeSidecar(old)
		}
	}
	return post, nil
}

// freeSlug returns base, or base with the first numeric suffix from 2 up that
// no other post holds.
func freeSlug(base string, taken map[string]struct{}) string {
	slug := base
	for n := 2; ; n++ {
		if _, ok := taken[slug]; !ok {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// Delete removes the post and, best effort, its markdown file.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.NewValidation("Blog ID required")
	}

	post, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NewNotFound("Blog not found")
		}
		return apperr.NewOperation("failed to delete blog", err)
	}

	if _, err := s.repo.Delete(ctx, id); err != nil {
		return apperr.NewOperation("failed to delete blog", err)
	}
	s.removeSidecar(s.sidecarName(post))
	return nil
}

// SidecarPath is where post's markdown copy lives.
func (s *BlogService) SidecarPath(post domain.BlogPost) string {
	return filepath.Join(s.contentDir, s.sidecarName(post))
}

func (s *BlogService) sidecarName(post domain.BlogPost) string {
	date, ok := content.ParseDate(post.Date)
	if !ok {
		date = s.now()
	}
	return content.FilenameFor(date, post.Ref(), ".mdx")
}

func (s *BlogService) writeSidecar(name string, post domain.BlogPost) error {
	meta, err := yaml.Marshal(sidecarMeta{
		Title:         post.Title,
		Date:          post.Date,
		Category:      post.Category,
		Excerpt:       post.Excerpt,
		Author:        post.Author,
		ReadTime:      post.ReadTime,
		Status:        string(post.Status),
		ScheduledDate: post.ScheduledDate,
		Tags:          post.Tags,
	})
	if err != nil {
		return fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	if err := os.MkdirAll(s.contentDir, 0o755); err != nil {
		return fmt.Errorf("failed to create content dir: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	b.WriteString(post.Content)
	b.WriteString("\n")

	path := filepath.Join(s.contentDir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (s *BlogService) removeSidecar(name string) {
	path := filepath.Join(s.contentDir, name)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to remove blog file", "path", path, "error", err)
	}
}
