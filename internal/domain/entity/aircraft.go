package entity

import (
	"time"

	"gorm.io/gorm"
)

// Aircraft represents one airframe in a user's logbook.
// Registration is unique per user among non-deleted rows.
type Aircraft struct {
	ID              string
	UserID          string
	Registration    string
	AircraftType    string
	Model           string
	Class           string
	Condition       string
	Complex         bool
	HighPerformance bool
	Tailwheel       bool
	GlassPanel      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt
}
