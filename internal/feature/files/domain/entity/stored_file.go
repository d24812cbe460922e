// Package entity defines the domain entities for the files feature.
package entity

import "time"

// StoredFile is the metadata record for an uploaded file.
// The file bytes themselves live in blob storage under Key; the original
// filename is kept only for the Content-Disposition header on download.
type StoredFile struct {
	// ID is the unique identifier for the metadata row.
	ID uint `gorm:"primaryKey" json:"-"`

	// Key is the generated, collision-free storage key (uuid + extension).
	// Downloads address files by this key, never by the client-supplied name.
	Key string `gorm:"uniqueIndex;size:255;not null" json:"key"`

	// OriginalName is the filename supplied by the client at upload time.
	OriginalName string `gorm:"size:255;not null" json:"filename"`

	// ContentType is the media type reported by the client.
	ContentType string `gorm:"size:255" json:"type"`

	// Size is the stored size in bytes.
	Size int64 `gorm:"not null" json:"size"`

	// CreatedAt is the upload timestamp.
	CreatedAt time.Time `json:"-"`
}
