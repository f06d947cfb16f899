package products

import (
	"strings"
	"time"
)

// Product is an ad format offering (panel, wrap, branding package) sold at
// stations. The per-station rate lives on the station_products join row.
type Product struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Format            string    `json:"format"`
	PricePerUnitCents int64     `json:"price_per_unit_cents"`
	Unit              string    `json:"unit"`
	DurationDays      int       `json:"duration_days"`
	CreatedAt         time.Time `json:"created_at"`
}

// StationRate is a product offering at one station with its negotiated rate.
type StationRate struct {
	Product
	StationID int64 `json:"station_id"`
	RateCents int64 `json:"rate_cents"`
}

// CreateProductRequest is the body for creating a product.
type CreateProductRequest struct {
	Name              string `json:"name"`
	Format            string `json:"format"`
	PricePerUnitCents int64  `json:"price_per_unit_cents"`
	Unit              string `json:"unit"`
	DurationDays      int    `json:"duration_days"`
}

// Validate checks required fields.
func (r *CreateProductRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// UpdateProductRequest carries partial-update fields; nil leaves a column
// unchanged, a present zero value clears it.
type UpdateProductRequest struct {
	Name              *string `json:"name"`
	Format            *string `json:"format"`
	PricePerUnitCents *int64  `json:"price_per_unit_cents"`
	Unit              *string `json:"unit"`
	DurationDays      *int    `json:"duration_days"`
}
