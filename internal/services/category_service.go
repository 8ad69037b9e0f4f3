package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bancofortis/backend/internal/models"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type CategoryService struct {
	categories CategoryRepository
	validator  *ValidationHelper
}

func NewCategoryService(categories CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories, validator: NewValidationHelper()}
}

func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*models.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.ValidateStruct(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	category := &models.Category{Name: req.Name, Description: strings.TrimSpace(req.Description)}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	log.Printf("[CATEGORY] Created category %d (%s)", category.ID, category.Name)
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}
