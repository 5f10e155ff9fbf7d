package models

import (
	"time"

	"github.com/noah-isme/cgpa-api/internal/gpa"
)

// Session owns one transcript for the lifetime of an interactive calculator session.
// Version counts successful saves; stores only accept a save carrying the stored version.
type Session struct {
	ID         string                 `json:"id"`
	ScaleCode  string                 `json:"scale_code"`
	Version    int64                  `json:"version"`
	Transcript gpa.TranscriptSnapshot `json:"transcript"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
	ExpiresAt  time.Time              `json:"expires_at"`
}
