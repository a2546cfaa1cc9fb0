package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Kusalkumar06/eventia/internal/apperr"
	"github.com/Kusalkumar06/eventia/internal/auth"
	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/Kusalkumar06/eventia/internal/repository"
	"github.com/rs/zerolog"
)

type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, name string, actor auth.Principal) (*models.Category, error)
	SeedDefaults(ctx context.Context) error
}

type categoryService struct {
	repo repository.CategoryRepository
	log  *zerolog.Logger
}

func NewCategoryService(repo repository.CategoryRepository, log *zerolog.Logger) CategoryService {
	return &categoryService{repo: repo, log: log}
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Create(ctx context.Context, name string, actor auth.Principal) (*models.Category, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 {
		return nil, apperr.Validationf("category name must be at least 2 characters")
	}
	category := &models.Category{Name: name, Slug: Slugify(name)}
	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, wrapInternal("create category", err)
	}
	return category, nil
}

// SeedDefaults makes sure the Others sentinel exists.
func (s *categoryService) SeedDefaults(ctx context.Context) error {
	err := s.repo.EnsureExists(ctx, &models.Category{Name: "Others", Slug: models.OthersCategorySlug})
	if err != nil {
		return err
	}
	s.log.Debug().Msg("default categories ensured")
	return nil
}
