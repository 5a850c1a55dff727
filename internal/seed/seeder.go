package seed

import (
	"context"
	"fmt"

	"donut-store/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Seeder upserts a loaded catalogue into the product table. Existing rows
// are refreshed in place, so reseeding is safe to repeat.
type Seeder struct {
	products repository.ProductRepository
	logger   zerolog.Logger
}

// NewSeeder creates a new catalogue seeder.
func NewSeeder(products repository.ProductRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		products: products,
		logger:   logger.With().Str("component", "seeder").Logger(),
	}
}

// Seed loads the catalogue from the loader and upserts every product. It
// returns the number of products written.
func (s *Seeder) Seed(ctx context.Context, loader Loader, path string) (int, error) {
	products, err := loader.Load(ctx, path)
	if err != nil {
		return 0, err
	}

	for i := range products {
		p := &products[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}

		if err := s.products.Upsert(ctx, p); err != nil {
			s.logger.Error().Err(err).Str("product", p.Name).Msg("failed to upsert product")
			return i, fmt.Errorf("failed to upsert product %q: %w", p.Name, err)
		}
	}

	s.logger.Info().Int("products_seeded", len(products)).Msg("catalogue seeded")
	return len(products), nil
}
