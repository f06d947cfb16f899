package leads

import "errors"

var (
	ErrRequirementRequired = errors.New("requirement is required")
	ErrRequirementUnknown  = errors.New("requirement must be advertise or list-inventory")
	ErrNameRequired        = errors.New("name is required")
	ErrEmailRequired       = errors.New("email is required")
	ErrPhoneRequired       = errors.New("phone is required")
	ErrNotFound            = errors.New("lead not found")
)
