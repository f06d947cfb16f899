package masterdata

import (
	"strings"
	"time"
)

// Line represents a metro line stations belong to.
type Line struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateLineRequest is the body for creating a line.
type CreateLineRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Validate checks required fields.
func (r *CreateLineRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// UpdateLineRequest carries partial-update fields. A nil field is left
// unchanged; a present empty string clears the column (name excepted, which
// must stay non-empty).
type UpdateLineRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// NameRow is a simple named master-data row (audiences, types).
type NameRow struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateNameRequest is the body for creating a named row.
type CreateNameRequest struct {
	Name string `json:"name"`
}

// Validate checks required fields.
func (r *CreateNameRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// UpdateNameRequest carries the partial-update name field.
type UpdateNameRequest struct {
	Name *string `json:"name"`
}
