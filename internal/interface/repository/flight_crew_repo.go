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

// GormFlightCrewRepository implements the FlightCrewRepository interface
type GormFlightCrewRepository struct {
	db *gorm.DB
}

// NewGormFlightCrewRepository creates a new GORM flight crew repository
func NewGormFlightCrewRepository(db *gorm.DB) repository.FlightCrewRepository {
	return &GormFlightCrewRepository{
		db: db,
	}
}

// FlightCrews GORM model for database mapping
type FlightCrews struct {
	ID           string         `gorm:"primaryKey;type:varchar(36)"`
	UserID       string         `gorm:"column:user_id;index"`
	FlightID     string         `gorm:"column:flight_id;index"`
	CrewMemberID string         `gorm:"column:crew_member_id;index"`
	RoleName     string         `gorm:"column:role_name"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the default table name
func (FlightCrews) TableName() string {
	return "lb_flight_crews"
}

// FindByNaturalKey finds a non-deleted assignment by flight, crew member
// and role
func (r *GormFlightCrewRepository) FindByNaturalKey(ctx context.Context, flightID, crewMemberID, roleName string) (*entity.FlightCrew, error) {
	var assignment FlightCrews
	result := r.db.WithContext(ctx).
		Where("flight_id = ? AND crew_member_id = ? AND role_name = ?", flightID, crewMemberID, roleName).
		First(&assignment)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return toFlightCrewEntity(&assignment), nil
}

// Create inserts a new assignment, assigning an identity if absent
func (r *GormFlightCrewRepository) Create(ctx context.Context, assignment *entity.FlightCrew) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}

	model := toFlightCrewModel(assignment)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}

	assignment.CreatedAt = model.CreatedAt
	assignment.UpdatedAt = model.UpdatedAt
	return nil
}

// ListByUser returns all non-deleted assignments owned by the user
func (r *GormFlightCrewRepository) ListByUser(ctx context.Context, userID string) ([]entity.FlightCrew, error) {
	var models []FlightCrews
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	assignments := make([]entity.FlightCrew, 0, len(models))
	for i := range models {
		assignments = append(assignments, *toFlightCrewEntity(&models[i]))
	}
	return assignments, nil
}

// Convert GORM model to domain entity
func toFlightCrewEntity(model *FlightCrews) *entity.FlightCrew {
	return &entity.FlightCrew{
		ID:           model.ID,
		UserID:       model.UserID,
		FlightID:     model.FlightID,
		CrewMemberID: model.CrewMemberID,
		RoleName:     model.RoleName,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
		DeletedAt:    model.DeletedAt,
	}
}

// Convert domain entity to GORM model
func toFlightCrewModel(assignment *entity.FlightCrew) *FlightCrews {
	return &FlightCrews{
		ID:           assignment.ID,
		UserID:       assignment.UserID,
		FlightID:     assignment.FlightID,
		CrewMemberID: assignment.CrewMemberID,
		RoleName:     assignment.RoleName,
		CreatedAt:    assignment.CreatedAt,
		UpdatedAt:    assignment.UpdatedAt,
		DeletedAt:    assignment.DeletedAt,
	}
}
