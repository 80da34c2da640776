package catalog

import "errors"

var (
	// ErrNotFound is returned when no row matches the requested id
	ErrNotFound = errors.New("not found")

	// ErrForeignKey is returned when a write references a missing parent row.
	// The store translates the backend's constraint-violation error into this
	// sentinel so handlers can answer 404 instead of 500.
	ErrForeignKey = errors.New("referenced resource not found")
)
