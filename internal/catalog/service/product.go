package service

import (
	"context"
	"errors"
	"sync"

	catalogerrors "staybook/internal/catalog/errors"
	"staybook/internal/catalog/repository"
	"staybook/internal/catalog/validator"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/model"
	"staybook/pkg/sanitizer"
)

type ProductService interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id string) (*model.Product, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Product, int64, error)
	Update(ctx context.Context, id string, updates *model.ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, city, category string, limit int, offset int64) ([]*model.Product, int64, error)
}

type productService struct {
	repo      repository.ProductRepository
	validator *validator.ProductValidator
	cfg       *config.Config
}

func NewProductService(
	repo repository.ProductRepository,
	validator *validator.ProductValidator,
	cfg *config.Config,
) ProductService {
	return &productService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *productService) Create(ctx context.Context, product *model.Product) error {
	s.applyDefaults(product)
	s.sanitize(product)
	if err := s.validate(product); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.cfg.Log.Error("Failed to create product", "error", err)
		return apperrors.Internal("Failed to create product", err)
	}

	s.cfg.Log.Info("Product created successfully",
		"id", product.ID,
		"name", product.Name,
		"city", product.City,
		"category", product.Category,
	)
	return nil
}

func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Product ID cannot be empty")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Product", id)
		}
		if errors.Is(err, catalogerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid product ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve product", err)
	}

	return product, nil
}

func (s *productService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Product, int64, error) {
	var count int64
	var products []*model.Product
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count products", "error", errCount)
			errCount = apperrors.Internal("Failed to count products", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		products, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list products", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve products", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return products, count, nil
}

func (s *productService) Update(ctx context.Context, id string, updates *model.ProductUpdate) (*model.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Product ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Product update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeProductUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, catalogerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Product", id)
		}
		s.cfg.Log.Error("Failed to update product", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update product", err)
	}

	s.cfg.Log.Info("Product updated successfully", "id", id)
	return merged, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Product ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, catalogerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Product", id)
		}
		if errors.Is(err, catalogerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid product ID format")
		}
		return apperrors.Internal("Failed to delete product", err)
	}

	s.cfg.Log.Info("Product deleted successfully", "id", id)
	return nil
}

func (s *productService) Search(ctx context.Context, city, category string, limit int, offset int64) ([]*model.Product, int64, error) {
	city = sanitizer.SanitizeCityOrCategory(city)
	category = sanitizer.SanitizeCityOrCategory(category)

	var count int64
	var products []*model.Product
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountSearch(ctx, city, category)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count products by search", "city", city, "category", category, "error", errCount)
			errCount = apperrors.Internal("Failed to count products", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		products, errFind = s.repo.Search(ctx, city, category, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to search products", "city", city, "category", category, "error", errFind)
			errFind = apperrors.Internal("Failed to search products", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return products, count, nil
}

// --- Helpers ---

func (s *productService) applyDefaults(p *model.Product) {
	// New products go live immediately; deactivation is an explicit update.
	p.Active = true
}

func (s *productService) sanitize(p *model.Product) {
	p.Name = sanitizer.SanitizeText(p.Name)
	p.City = sanitizer.SanitizeCityOrCategory(p.City)
	p.Category = sanitizer.SanitizeCityOrCategory(p.Category)
	p.Description = sanitizer.SanitizeText(p.Description)
	p.Features = sanitizer.SanitizeSlice(p.Features, sanitizer.SanitizeText)
}

func (s *productService) mergeProductUpdates(existing *model.Product, updates *model.ProductUpdate) *model.Product {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.City != "" {
		merged.City = updates.City
	}
	if updates.Category != "" {
		merged.Category = updates.Category
	}
	if updates.Features != nil {
		merged.Features = *updates.Features
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.Active != nil {
		merged.Active = *updates.Active
	}

	return &merged
}

func (s *productService) validate(product *model.Product) error {
	if err := s.validator.Validate(product); err != nil {
		s.cfg.Log.Warn("Product validation failed", "error", err)
		return apperrors.Validation("Product validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
