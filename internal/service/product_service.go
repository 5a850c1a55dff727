package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"donut-store/internal/model"
	"donut-store/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products with pagination.
func (s *productService) List(ctx context.Context, onlyAvailable bool, limit, offset int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.productRepo.List(ctx, onlyAvailable, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Bool("only_available", onlyAvailable).
		Msg("products listed")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, model.NewValidationError("product ID is required")
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// Create adds a product to the catalogue.
func (s *productService) Create(ctx context.Context, p *model.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.productRepo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", p.ID).
		Str("name", p.Name).
		Int64("price", p.Price).
		Msg("product created")

	return nil
}

// Update replaces a product's mutable fields.
func (s *productService) Update(ctx context.Context, p *model.Product) error {
	if p.ID == "" {
		return model.NewValidationError("product ID is required")
	}
	if err := validateProduct(p); err != nil {
		return err
	}

	if err := s.productRepo.Update(ctx, p); err != nil {
		if err == model.ErrProductNotFound {
			return err
		}
		s.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info().Str("product_id", p.ID).Msg("product updated")
	return nil
}

// Delete removes a product from the catalogue.
func (s *productService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return model.NewValidationError("product ID is required")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if err == model.ErrProductNotFound {
			return err
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func validateProduct(p *model.Product) error {
	if p == nil {
		return model.NewValidationError("product is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return model.NewValidationError("product name is required")
	}
	if p.Price < 0 {
		return model.NewValidationError("product price cannot be negative")
	}
	if p.Stock < 0 {
		return model.NewValidationError("product stock cannot be negative")
	}
	return nil
}
