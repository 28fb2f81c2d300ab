package repository

import (
	"context"

	"logbook-service/internal/domain/entity"
)

// CrewMemberRepository defines the interface for crew member operations.
// Finders return (nil, nil) when no non-deleted row matches.
type CrewMemberRepository interface {
	FindByName(ctx context.Context, userID, name string) (*entity.CrewMember, error)
	CountByNames(ctx context.Context, userID string, names []string) (int64, error)
	Create(ctx context.Context, crew *entity.CrewMember) error
	Update(ctx context.Context, crew *entity.CrewMember) error
	ListByUser(ctx context.Context, userID string) ([]entity.CrewMember, error)
}
