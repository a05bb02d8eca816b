package models

import "time"

// SessionArchive is the gorm-backed record of a completed interview. The
// live engine is in-memory; archives exist for listing past interviews and
// re-reading final reports.
type SessionArchive struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SessionID  string    `gorm:"size:64;uniqueIndex;not null" json:"session_id"`
	Type       string    `gorm:"size:20;not null" json:"type"`
	Position   string    `gorm:"size:255;not null" json:"position"`
	Industry   string    `gorm:"size:255;not null" json:"industry"`
	Difficulty string    `gorm:"size:10;not null" json:"difficulty"`
	Percentage float64   `gorm:"not null" json:"percentage"`
	Grade      string    `gorm:"size:50;not null" json:"grade"`
	Payload    string    `gorm:"type:text;not null" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
