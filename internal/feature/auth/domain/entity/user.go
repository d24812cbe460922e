// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account.
// It contains the credentials used for login and the profile data shown
// on the profile page.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the display name shown on profiles and advertisements.
	Name string `gorm:"size:255;not null"`

	// Email is the user's email address used as the login key.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
