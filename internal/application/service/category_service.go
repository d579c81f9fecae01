package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
	"github.com/kamandelane/tillpoint-api/internal/domain/repository"
	"github.com/kamandelane/tillpoint-api/pkg/apperror"
	"github.com/kamandelane/tillpoint-api/pkg/pagination"
	"github.com/kamandelane/tillpoint-api/pkg/utils"
)

// CategoryService handles category-related operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	UserID uuid.UUID
	Name   string
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	slug := utils.Slugify(input.Name)

	// Check if slug already exists
	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category with this name already exists")
	}

	category := &entity.Category{
		UserID: input.UserID,
		Name:   input.Name,
		Slug:   slug,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories lists categories with optional name search
func (s *CategoryService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}

// UpdateCategoryInput represents the update category input
type UpdateCategoryInput struct {
	ID   uuid.UUID
	Name string
}

// UpdateCategory updates a category
func (s *CategoryService) UpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	newSlug := utils.Slugify(input.Name)
	if newSlug != category.Slug {
		existing, err := s.categoryRepo.GetBySlug(ctx, newSlug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != category.ID {
			return nil, apperror.NewConflictError("Category with this name already exists")
		}
		category.Slug = newSlug
	}

	category.Name = input.Name

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory deletes a category
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}

	return s.categoryRepo.Delete(ctx, id)
}
