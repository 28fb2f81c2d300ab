package repository

import (
	"context"

	"logbook-service/internal/domain/entity"
)

// AircraftRepository defines the interface for aircraft operations.
// Finders return (nil, nil) when no non-deleted row matches.
type AircraftRepository interface {
	FindByRegistration(ctx context.Context, userID, registration string) (*entity.Aircraft, error)
	CountByRegistrations(ctx context.Context, userID string, registrations []string) (int64, error)
	Create(ctx context.Context, aircraft *entity.Aircraft) error
	Update(ctx context.Context, aircraft *entity.Aircraft) error
	ListByUser(ctx context.Context, userID string) ([]entity.Aircraft, error)
}
