package products

import "errors"

var (
	// ErrNameRequired is returned when the name field is missing or blank.
	ErrNameRequired = errors.New("product name is required")

	// ErrNameTaken is returned when the product name is already in use.
	ErrNameTaken = errors.New("product name already exists")

	// ErrNotFound is returned when the product does not exist.
	ErrNotFound = errors.New("product not found")
)
