package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"donut-store/internal/model"

	"github.com/rs/zerolog"
)

// Loader reads a product catalogue from some source.
type Loader interface {
	// Load reads and decodes a catalogue file identified by path (a local
	// file path or an object key, depending on the implementation).
	Load(ctx context.Context, path string) ([]model.Product, error)
}

// fileLoader implements Loader for local JSON catalogue files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalogue loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a JSON catalogue file. The file holds an array of products.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]model.Product, error) {
	l.logger.Info().Str("file", filePath).Msg("loading catalogue file")

	data, err := os.ReadFile(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read catalogue file")
		return nil, fmt.Errorf("failed to read catalogue file %s: %w", filePath, err)
	}

	products, err := decodeCatalogue(data)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to decode catalogue file")
		return nil, fmt.Errorf("failed to decode catalogue file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("products_loaded", len(products)).
		Msg("catalogue file loaded successfully")

	return products, nil
}

func decodeCatalogue(data []byte) ([]model.Product, error) {
	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}

	for i, p := range products {
		if p.Name == "" {
			return nil, fmt.Errorf("product %d: name is required", i)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %q: price cannot be negative", p.Name)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("product %q: stock cannot be negative", p.Name)
		}
	}

	return products, nil
}
