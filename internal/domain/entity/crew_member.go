package entity

import (
	"time"

	"gorm.io/gorm"
)

// CrewMember represents a person a user flies with.
// Name is unique per user among non-deleted rows.
type CrewMember struct {
	ID            string
	UserID        string
	Name          string
	Email         string
	Phone         string
	LicenseNumber string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt
}
