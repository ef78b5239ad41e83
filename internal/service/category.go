package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/recipebook/recipebook/internal/metrics"
	"github.com/recipebook/recipebook/internal/model"
	"github.com/recipebook/recipebook/internal/repository"
)

// CategoryService handles category business logic.
type CategoryService struct {
	categories CategoryStore
	metrics    metrics.Recorder
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories CategoryStore, recorder metrics.Recorder) *CategoryService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CategoryService{categories: categories, metrics: recorder}
}

// CategoryInput defines input for creating or replacing a category.
type CategoryInput struct {
	Name        string
	Description *string
}

// List returns every category ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]*model.Category, error) {
	return s.categories.ListCategories(ctx)
}

// Get retrieves a category by ID.
func (s *CategoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	category, err := s.categories.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// Create validates and stores a new category.
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*model.Category, error) {
	name, err := validateCategory(input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := &model.Category{
		ID:          generateULID(),
		Name:        name,
		Description: blankToNil(input.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categories.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.metrics.IncCategoryCreated()

	return category, nil
}

// Update replaces a category's name and description.
func (s *CategoryService) Update(ctx context.Context, id string, input CategoryInput) (*model.Category, error) {
	name, err := validateCategory(input)
	if err != nil {
		return nil, err
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Description = blankToNil(input.Description)
	category.UpdatedAt = time.Now().UTC()

	if err := s.categories.UpdateCategory(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	return category, nil
}

// Delete removes a category. Its recipes become uncategorized.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	s.metrics.IncCategoryDeleted()

	return nil
}

func validateCategory(input CategoryInput) (string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", invalid("Category name is required")
	}
	if err := tooLong("name", name, model.MaxCategoryNameLength); err != nil {
		return "", err
	}
	return name, nil
}
