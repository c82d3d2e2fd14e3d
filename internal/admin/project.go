package admin

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/portfolio/internal/apperr"
	"github.com/DjordjeVuckovic/portfolio/internal/domain"
	"github.com/DjordjeVuckovic/portfolio/internal/storage"
)

type ProjectService struct {
	repo *storage.Repository[domain.Project]
}

func NewProjectService(store storage.Store) *ProjectService {
	return &ProjectService{
		repo: storage.NewRepository[domain.Project](store, domain.CollectionProjects),
	}
}

func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.NewOperation("failed to load projects", err)
	}
	return projects, nil
}

func (s *ProjectService) Save(ctx context.Context, p domain.Project) (domain.Project, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return domain.Project{}, apperr.NewValidation("title is required")
	}
	if p.ID == "" {
		p.ID = domain.ID(uuid.NewString())
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return domain.Project{}, apperr.NewOperation("failed to save project", err)
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.NewValidation("Project ID required")
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperr.NewOperation("failed to delete project", err)
	}
	if !ok {
		return apperr.NewNotFound("Project not found")
	}
	return nil
}
