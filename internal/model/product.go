package model

import "time"

// Product represents a donut in the catalogue. Prices are integers in the
// smallest currency unit (whole rupiah); there are no fractional sub-units.
type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       int64     `json:"price" db:"price"`
	ImageURL    string    `json:"imageUrl,omitempty" db:"image_url"`
	Category    string    `json:"category,omitempty" db:"category"`
	Available   bool      `json:"available" db:"available"`
	Stock       int       `json:"stock" db:"stock"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
