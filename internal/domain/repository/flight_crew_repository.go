package repository

import (
	"context"

	"logbook-service/internal/domain/entity"
)

// FlightCrewRepository defines the interface for flight role assignments.
// FindByNaturalKey returns (nil, nil) when no non-deleted row matches.
type FlightCrewRepository interface {
	FindByNaturalKey(ctx context.Context, flightID, crewMemberID, roleName string) (*entity.FlightCrew, error)
	Create(ctx context.Context, assignment *entity.FlightCrew) error
	ListByUser(ctx context.Context, userID string) ([]entity.FlightCrew, error)
}
