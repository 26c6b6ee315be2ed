package service

import (
	"context"
	"io"
	"testing"
	"time"

	catalogerrors "staybook/internal/catalog/errors"
	"staybook/internal/catalog/validator"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/logger"
	"staybook/pkg/model"
)

// Mock repository for testing
type mockProductRepository struct {
	createFunc      func(ctx context.Context, product *model.Product) error
	findByIDFunc    func(ctx context.Context, id string) (*model.Product, error)
	findAllFunc     func(ctx context.Context, limit int, offset int64) ([]*model.Product, error)
	updateFunc      func(ctx context.Context, id string, product *model.Product) error
	deleteFunc      func(ctx context.Context, id string) error
	searchFunc      func(ctx context.Context, city, category string, limit int, offset int64) ([]*model.Product, error)
	countSearchFunc func(ctx context.Context, city, category string) (int64, error)
	countFunc       func(ctx context.Context) (int64, error)
}

func (m *mockProductRepository) Create(ctx context.Context, product *model.Product) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, product)
	}
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, catalogerrors.ErrNotFound
}

func (m *mockProductRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Product, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Product{}, nil
}

func (m *mockProductRepository) Update(ctx context.Context, id string, product *model.Product) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, product)
	}
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockProductRepository) Search(ctx context.Context, city, category string, limit int, offset int64) ([]*model.Product, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, city, category, limit, offset)
	}
	return []*model.Product{}, nil
}

func (m *mockProductRepository) CountSearch(ctx context.Context, city, category string) (int64, error) {
	if m.countSearchFunc != nil {
		return m.countSearchFunc(ctx, city, category)
	}
	return 0, nil
}

func (m *mockProductRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func newTestProductService(repo *mockProductRepository) *productService {
	log := logger.New(logger.Config{
		Level:   logger.LevelError,
		Format:  logger.FormatJSON,
		Output:  io.Discard,
		Service: "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return &productService{
		repo:      repo,
		validator: validator.NewProductValidator(log),
		cfg:       cfg,
	}
}

func TestCreate_AppliesDefaultsAndSanitizes(t *testing.T) {
	var created *model.Product
	repo := &mockProductRepository{
		createFunc: func(_ context.Context, p *model.Product) error {
			p.ID = "64f000000000000000000001"
			created = p
			return nil
		},
	}
	svc := newTestProductService(repo)

	product := &model.Product{
		Name:     "  Grand   Hotel  ",
		City:     " Tel Aviv ",
		Category: "Hotel",
		Features: []string{" WiFi ", "Pool", "Pool"},
	}
	if err := svc.Create(context.Background(), product); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil {
		t.Fatal("product was not stored")
	}
	if !created.Active {
		t.Error("new products should default to active")
	}
	if created.Name != "Grand Hotel" {
		t.Errorf("expected sanitized name, got %q", created.Name)
	}
	if created.City != "tel_aviv" {
		t.Errorf("expected sanitized city, got %q", created.City)
	}
	if len(created.Features) != 2 {
		t.Errorf("expected deduplicated features, got %v", created.Features)
	}
}

func TestCreate_InvalidProductRejected(t *testing.T) {
	svc := newTestProductService(&mockProductRepository{})

	err := svc.Create(context.Background(), &model.Product{Name: "x"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestProductService(&mockProductRepository{})

	_, err := svc.GetByID(context.Background(), "64f000000000000000000009")
	if err == nil {
		t.Fatal("expected error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected code %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
}

func TestUpdate_MergesFields(t *testing.T) {
	existing := &model.Product{
		ID:       "64f000000000000000000001",
		Name:     "grand hotel",
		City:     "tel_aviv",
		Category: "hotel",
		Active:   true,
	}
	var updated *model.Product
	repo := &mockProductRepository{
		findByIDFunc: func(context.Context, string) (*model.Product, error) {
			copied := *existing
			return &copied, nil
		},
		updateFunc: func(_ context.Context, _ string, p *model.Product) error {
			updated = p
			return nil
		},
	}
	svc := newTestProductService(repo)

	inactive := false
	result, err := svc.Update(context.Background(), existing.ID, &model.ProductUpdate{
		Name:   "Grand Hotel Deluxe",
		Active: &inactive,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated == nil {
		t.Fatal("update was not persisted")
	}
	if result.Name != "Grand Hotel Deluxe" {
		t.Errorf("expected updated name, got %q", result.Name)
	}
	if result.Active {
		t.Error("expected product deactivated")
	}
	if result.City != existing.City {
		t.Errorf("untouched field changed: %q", result.City)
	}
}

func TestSearch_SanitizesFilters(t *testing.T) {
	var capturedCity, capturedCategory string
	repo := &mockProductRepository{
		searchFunc: func(_ context.Context, city, category string, _ int, _ int64) ([]*model.Product, error) {
			capturedCity = city
			capturedCategory = category
			return []*model.Product{}, nil
		},
	}
	svc := newTestProductService(repo)

	_, _, err := svc.Search(context.Background(), " Tel Aviv ", "HOTEL", 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedCity != "tel_aviv" {
		t.Errorf("expected sanitized city filter, got %q", capturedCity)
	}
	if capturedCategory != "hotel" {
		t.Errorf("expected sanitized category filter, got %q", capturedCategory)
	}
}
