// Package usecase implements the business logic for the ads feature.
package usecase

import "errors"

var (
	// ErrAdNotFound is returned when an advertisement cannot be found by ID.
	ErrAdNotFound = errors.New("advertisement not found")

	// ErrOwnerNotFound is returned when posting an ad for a user that does not exist.
	ErrOwnerNotFound = errors.New("ad owner not found")
)
