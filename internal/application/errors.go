package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidID            = errors.New("invalid ID")
	ErrCatalogueUnavailable = errors.New("catalogue unavailable")
	ErrNoWallNearby         = errors.New("no wall nearby")
	ErrPlacementDisallowed  = errors.New("placement disallowed")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DeserializeError represents a persisted object body that could not be decoded
type DeserializeError struct {
	ObjectID int
	StateID  int
	Err      error
}

func (e *DeserializeError) Error() string {
	return fmt.Sprintf("cannot deserialize object %d (state %d): %v", e.ObjectID, e.StateID, e.Err)
}

func (e *DeserializeError) Unwrap() error {
	return e.Err
}

// CatalogueError represents a metadata source that is missing or malformed
type CatalogueError struct {
	Path   string
	Reason string
	Err    error
}

func (e *CatalogueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalogue %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("catalogue %s: %s", e.Path, e.Reason)
}

func (e *CatalogueError) Is(target error) bool {
	return target == ErrCatalogueUnavailable
}

func (e *CatalogueError) Unwrap() error {
	return e.Err
}
