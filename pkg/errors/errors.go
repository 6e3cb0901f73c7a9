package errors

import "fmt"

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrConflict is returned when there's a conflict (e.g., a stock already
// exists for a variant/warehouse pair)
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// ErrValidation is returned when validation fails. Fields maps a field path
// (e.g. "variants[1].sku") to its problem.
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrConfiguration is returned when a fixed reference id (default warehouse,
// size/color attribute, category...) does not resolve to an existing entity.
type ErrConfiguration struct {
	Reference string
	Err       error
}

func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("configured reference %s does not resolve: %v", e.Reference, e.Err)
}

func (e *ErrConfiguration) Unwrap() error {
	return e.Err
}
