package repository

import (
	"context"

	"logbook-service/internal/domain/entity"
)

// FlightRepository defines the interface for flight operations.
// FindByNaturalKey matches on every key field at once and returns
// (nil, nil) when no non-deleted row matches.
type FlightRepository interface {
	FindByNaturalKey(ctx context.Context, userID, flightDate, registration, departureAirport, arrivalAirport string) (*entity.Flight, error)
	Create(ctx context.Context, flight *entity.Flight) error
	Update(ctx context.Context, flight *entity.Flight) error
	ListByUser(ctx context.Context, userID string) ([]entity.Flight, error)
}
