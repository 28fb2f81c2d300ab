package entity

import (
	"time"

	"gorm.io/gorm"
)

// Flight represents one logbook entry. The natural key is
// (UserID, FlightDate, Registration, DepartureAirport, ArrivalAirport).
// AircraftID points at the Aircraft row when it could be resolved.
type Flight struct {
	ID               string
	UserID           string
	AircraftID       string
	FlightDate       string // 2006-01-02
	Registration     string
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    string // HH:MM
	ArrivalTime      string // HH:MM
	TotalTime        float64
	NightTime        float64
	PICTime          float64
	DayLandings      int
	NightLandings    int
	Remarks          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt
}
