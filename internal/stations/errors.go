package stations

import "errors"

var (
	// ErrNameRequired is returned when the station name is missing or blank.
	ErrNameRequired = errors.New("station name is required")

	// ErrNameTaken is returned when the station name is already in use.
	ErrNameTaken = errors.New("station name already exists")

	// ErrNotFound is returned when the station does not exist.
	ErrNotFound = errors.New("station not found")
)
