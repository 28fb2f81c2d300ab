package entity

import (
	"time"

	"gorm.io/gorm"
)

// FlightCrew assigns a crew member to a flight under a named role.
// The natural key is (FlightID, CrewMemberID, RoleName).
type FlightCrew struct {
	ID           string
	UserID       string
	FlightID     string
	CrewMemberID string
	RoleName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt
}
