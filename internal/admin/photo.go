package admin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/portfolio/internal/apperr"
	"github.com/DjordjeVuckovic/portfolio/internal/blob"
	"github.com/DjordjeVuckovic/portfolio/internal/domain"
	"github.com/DjordjeVuckovic/portfolio/internal/storage"
)

type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	Title       string
	Category    string
	Description string
}

type PhotoService struct {
	repo  *storage.Repository[domain.Photo]
	blobs blob.Store
	now   func() time.Time
}

func NewPhotoService(store storage.Store, blobs blob.Store) *PhotoService {
	return &PhotoService{
		repo:  storage.NewRepository[domain.Photo](store, domain.CollectionPhotos),
		blobs: blobs,
		now:   time.Now,
	}
}

func (s *PhotoService) List(ctx context.Context) ([]domain.Photo, error) {
	photos, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.NewOperation("failed to load photos", err)
	}
	return photos, nil
}

// Upload stores the image and appends its record. The image is removed again
// if the record cannot be saved.
func (s *PhotoService) Upload(ctx context.Context, u Upload) (domain.Photo, error) {
	if u.Body == nil || u.Filename == "" {
		return domain.Photo{}, apperr.NewValidation("No file provided")
	}

	id := uuid.NewString()
	key := "photo-" + id + strings.ToLower(filepath.Ext(u.Filename))

	url, err := s.blobs.Put(ctx, key, u.Body, u.ContentType)
	if err != nil {
		return domain.Photo{}, apperr.NewOperation("failed to upload photo", err)
	}

	photo := domain.Photo{
		ID:          domain.ID(id),
		Title:       strings.TrimSpace(u.Title),
		Category:    strings.TrimSpace(u.Category),
		Description: strings.TrimSpace(u.Description),
		URL:         url,
		UploadDate:  s.now().UTC().Format(time.RFC3339),
		Size:        u.Size,
		File:        key,
	}
	if err := s.repo.Save(ctx, photo); err != nil {
		if derr := s.blobs.Delete(ctx, key); derr != nil {
			slog.Warn("failed to roll back uploaded photo", "key", key, "error", derr)
		}
		return domain.Photo{}, apperr.NewOperation("failed to upload photo", err)
	}
	return photo, nil
}

// Delete drops the record and, best effort, the image behind it.
func (s *PhotoService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.NewValidation("Photo ID required")
	}

	photo, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NewNotFound("Photo not found")
		}
		return apperr.NewOperation("failed to delete photo", err)
	}

	if _, err := s.repo.Delete(ctx, id); err != nil {
		return apperr.NewOperation("failed to delete photo", err)
	}

	key := photo.File
	if key == "" && photo.URL != "" {
		key = path.Base(photo.URL)
	}
	if key != "" {
		if err := s.blobs.Delete(ctx, key); err != nil {
			slog.Warn("failed to delete photo file", "key", key, "error", err)
		}
	}
	return nil
}

// Replace rewrites the whole gallery, e.g. after reordering.
func (s *PhotoService) Replace(ctx context.Context, photos []domain.Photo) error {
	for _, p := range photos {
		if p.ID == "" {
			return apperr.NewValidation("every photo needs an id")
		}
	}
	if err := s.repo.ReplaceAll(ctx, photos); err != nil {
		return apperr.NewOperation("failed to save photos", err)
	}
	return nil
}
