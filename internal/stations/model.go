package stations

import (
	"strings"
	"time"
)

// Station is the central master-data entity: a metro station with its
// many-to-many relations and image gallery.
type Station struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	Description   string     `json:"description"`
	DailyFootfall int64      `json:"daily_footfall"`
	Images        []Image    `json:"images"`
	Lines         []NamedRef `json:"lines"`
	Audiences     []NamedRef `json:"audiences"`
	Types         []NamedRef `json:"types"`
	Products      []RateRef  `json:"products"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NamedRef is a joined master-data row (line, audience or type).
type NamedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Image is one gallery entry, ordered by position.
type Image struct {
	URL      string `json:"url"`
	Position int    `json:"position"`
}

// RateRef links a product offering to the station with its negotiated rate.
type RateRef struct {
	ProductID int64 `json:"product_id"`
	RateCents int64 `json:"rate_cents"`
}

// CreateStationRequest is the body for creating a station with its relations.
type CreateStationRequest struct {
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	Description   string    `json:"description"`
	DailyFootfall int64     `json:"daily_footfall"`
	LineIDs       []int64   `json:"line_ids"`
	AudienceIDs   []int64   `json:"audience_ids"`
	TypeIDs       []int64   `json:"type_ids"`
	Images        []Image   `json:"images"`
	Products      []RateRef `json:"products"`
}

// Validate checks required fields.
func (r *CreateStationRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// UpdateStationRequest carries partial-update fields. A nil scalar leaves the
// column unchanged; a present empty value clears it. A nil relation slice
// leaves the relation untouched; a present slice (even empty) replaces it
// wholesale.
type UpdateStationRequest struct {
	Name          *string    `json:"name"`
	Address       *string    `json:"address"`
	City          *string    `json:"city"`
	Description   *string    `json:"description"`
	DailyFootfall *int64     `json:"daily_footfall"`
	LineIDs       *[]int64   `json:"line_ids"`
	AudienceIDs   *[]int64   `json:"audience_ids"`
	TypeIDs       *[]int64   `json:"type_ids"`
	Images        *[]Image   `json:"images"`
	Products      *[]RateRef `json:"products"`
}

// ImportRow is one spreadsheet row: relations referenced by name rather than
// id, the way the workbook presents them.
type ImportRow struct {
	Name          string
	Address       string
	City          string
	Description   string
	DailyFootfall int64
	LineNames     []string
	AudienceNames []string
	TypeNames     []string
}

// Validate checks required fields.
func (r *ImportRow) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	return nil
}
