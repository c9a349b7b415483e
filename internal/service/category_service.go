package service

import (
	"context"
	"log/slog"

	"github.com/konnash/konnash/internal/models"
	"github.com/konnash/konnash/internal/storage"
)

// CategoryService manages debt categories.
type CategoryService struct {
	store storage.Store
}

// NewCategoryService creates a new CategoryService with the given storage backend.
func NewCategoryService(store storage.Store) *CategoryService {
	return &CategoryService{store: store}
}

// Create validates and persists a new category.
func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	category := &models.Category{Name: name}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		slog.Error("create category failed", "name", name, "error", err)
		return nil, err
	}

	slog.Info("category created", "category_id", category.ID, "name", category.Name)
	return category, nil
}

// Get retrieves a category by ID.
func (s *CategoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	return s.store.GetCategory(ctx, id)
}

// List retrieves all categories.
func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.store.ListCategories(ctx)
}

// Rename validates and applies a new category name.
func (s *CategoryService) Rename(ctx context.Context, id int64, name string) (*models.Category, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	category := &models.Category{ID: id, Name: name}
	if err := s.store.UpdateCategory(ctx, category); err != nil {
		slog.Error("rename category failed", "category_id", id, "error", err)
		return nil, err
	}

	slog.Info("category renamed", "category_id", id, "name", name)
	return category, nil
}

// Delete removes a category. The store refuses with ErrCategoryInUse while
// any debt still references it.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		slog.Warn("delete category refused or failed", "category_id", id, "error", err)
		return err
	}

	slog.Info("category deleted", "category_id", id)
	return nil
}
