package service

import (
	"context"
	"strings"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
)

type CategoryService struct {
	CategoryRepo *repository.CategoryRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{CategoryRepo: categoryRepo}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.CategoryRepo.List(ctx)
}

func (s *CategoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	category := &model.Category{Name: strings.TrimSpace(name)}
	if err := s.CategoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}
