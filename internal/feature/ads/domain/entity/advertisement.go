// Package entity defines the domain entities for the ads feature.
package entity

import "time"

// Advertisement represents a single classified ad posted by a user.
// Ads are immutable once created: there are no update or delete operations.
type Advertisement struct {
	// ID is the unique identifier for the advertisement.
	ID uint `gorm:"primaryKey" json:"id"`

	// UserID references the posting user. The usecase verifies the owner
	// exists before an ad is persisted.
	UserID uint `gorm:"index;not null" json:"user_id"`

	// Title is the headline of the advertisement.
	Title string `gorm:"size:255;not null" json:"title"`

	// Desc is the free-form description body.
	Desc string `gorm:"not null" json:"desc"`

	// CreatedAt is the timestamp when the advertisement was posted.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time `json:"updated_at"`
}
