package masterdata

import "errors"

var (
	// ErrNameRequired is returned when the name field is missing or blank.
	ErrNameRequired = errors.New("name is required")

	// ErrNameTaken is returned when a name uniqueness constraint is violated.
	ErrNameTaken = errors.New("name already exists")

	// ErrNotFound is returned when the referenced row does not exist.
	ErrNotFound = errors.New("not found")
)
