package repository

import (
	"context"
	"errors"
	"time"

	"logbook-service/internal/domain/entity"
	"logbook-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFlightRepository implements the FlightRepository interface
type GormFlightRepository struct {
	db *gorm.DB
}

// NewGormFlightRepository creates a new GORM flight repository
func NewGormFlightRepository(db *gorm.DB) repository.FlightRepository {
	return &GormFlightRepository{
		db: db,
	}
}

// Flights GORM model for database mapping
type Flights struct {
	ID               string         `gorm:"primaryKey;type:varchar(36)"`
	UserID           string         `gorm:"column:user_id;index"`
	AircraftID       string         `gorm:"column:aircraft_id"`
	FlightDate       string         `gorm:"column:flight_date"`
	Registration     string         `gorm:"column:registration"`
	DepartureAirport string         `gorm:"column:departure_airport"`
	ArrivalAirport   string         `gorm:"column:arrival_airport"`
	DepartureTime    string         `gorm:"column:departure_time"`
	ArrivalTime      string         `gorm:"column:arrival_time"`
	TotalTime        float64        `gorm:"column:total_time"`
	NightTime        float64        `gorm:"column:night_time"`
	PICTime          float64        `gorm:"column:pic_time"`
	DayLandings      int            `gorm:"column:day_landings"`
	NightLandings    int            `gorm:"column:night_landings"`
	Remarks          string         `gorm:"column:remarks"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName overrides the default table name
func (Flights) TableName() string {
	return "lb_flights"
}

// FindByNaturalKey finds a non-deleted flight matching every natural key
// field at once. A partial match is not a match.
func (r *GormFlightRepository) FindByNaturalKey(ctx context.Context, userID, flightDate, registration, departureAirport, arrivalAirport string) (*entity.Flight, error) {
	var flight Flights
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND flight_date = ? AND registration = ? AND departure_airport = ? AND arrival_airport = ?",
			userID, flightDate, registration, departureAirport, arrivalAirport).
		First(&flight)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return toFlightEntity(&flight), nil
}

// Create inserts a new flight, assigning an identity if absent
func (r *GormFlightRepository) Create(ctx context.Context, flight *entity.Flight) error {
	if flight.ID == "" {
		flight.ID = uuid.NewString()
	}

	model := toFlightModel(flight)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}

	flight.CreatedAt = model.CreatedAt
	flight.UpdatedAt = model.UpdatedAt
	return nil
}

// Update replaces all mutable fields of an existing flight
func (r *GormFlightRepository) Update(ctx context.Context, flight *entity.Flight) error {
	model := toFlightModel(flight)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}

	flight.UpdatedAt = model.UpdatedAt
	return nil
}

// ListByUser returns all non-deleted flights owned by the user
func (r *GormFlightRepository) ListByUser(ctx context.Context, userID string) ([]entity.Flight, error) {
	var models []Flights
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("flight_date, departure_time").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	flights := make([]entity.Flight, 0, len(models))
	for i := range models {
		flights = append(flights, *toFlightEntity(&models[i]))
	}
	return flights, nil
}

// Convert GORM model to domain entity
func toFlightEntity(model *Flights) *entity.Flight {
	return &entity.Flight{
		ID:               model.ID,
		UserID:           model.UserID,
		AircraftID:       model.AircraftID,
		FlightDate:       model.FlightDate,
		Registration:     model.Registration,
		DepartureAirport: model.DepartureAirport,
		ArrivalAirport:   model.ArrivalAirport,
		DepartureTime:    model.DepartureTime,
		ArrivalTime:      model.ArrivalTime,
		TotalTime:        model.TotalTime,
		NightTime:        model.NightTime,
		PICTime:          model.PICTime,
		DayLandings:      model.DayLandings,
		NightLandings:    model.NightLandings,
		Remarks:          model.Remarks,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
		DeletedAt:        model.DeletedAt,
	}
}

// Convert domain entity to GORM model
func toFlightModel(flight *entity.Flight) *Flights {
	return &Flights{
		ID:               flight.ID,
		UserID:           flight.UserID,
		AircraftID:       flight.AircraftID,
		FlightDate:       flight.FlightDate,
		Registration:     flight.Registration,
		DepartureAirport: flight.DepartureAirport,
		ArrivalAirport:   flight.ArrivalAirport,
		DepartureTime:    flight.DepartureTime,
		ArrivalTime:      flight.ArrivalTime,
		TotalTime:        flight.TotalTime,
		NightTime:        flight.NightTime,
		PICTime:          flight.PICTime,
		DayLandings:      flight.DayLandings,
		NightLandings:    flight.NightLandings,
		Remarks:          flight.Remarks,
		CreatedAt:        flight.CreatedAt,
		UpdatedAt:        flight.UpdatedAt,
		DeletedAt:        flight.DeletedAt,
	}
}
