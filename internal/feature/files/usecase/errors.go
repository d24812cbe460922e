// Package usecase implements the business logic for the files feature.
package usecase

import "errors"

var (
	// ErrFileNotFound is returned when no stored file matches the requested key.
	ErrFileNotFound = errors.New("file not found")

	// ErrFileTooLarge is returned when an upload exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file exceeds upload size limit")
)
