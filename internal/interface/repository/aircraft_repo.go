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

// GormAircraftRepository implements the AircraftRepository interface
type GormAircraftRepository struct {
	db *gorm.DB
}

// NewGormAircraftRepository creates a new GORM aircraft repository
func NewGormAircraftRepository(db *gorm.DB) repository.AircraftRepository {
	return &GormAircraftRepository{
		db: db,
	}
}

// Aircrafts GORM model for database mapping
type Aircrafts struct {
	ID              string         `gorm:"primaryKey;type:varchar(36)"`
	UserID          string         `gorm:"column:user_id;index"`
	Registration    string         `gorm:"column:registration"`
	AircraftType    string         `gorm:"column:aircraft_type"`
	Model           string         `gorm:"column:model"`
	Class           string         `gorm:"column:class"`
	Condition       string         `gorm:"column:condition"`
	Complex         bool           `gorm:"column:complex"`
	HighPerformance bool           `gorm:"column:high_performance"`
	Tailwheel       bool           `gorm:"column:tailwheel"`
	GlassPanel      bool           `gorm:"column:glass_panel"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the default table name
func (Aircrafts) TableName() string {
	return "lb_aircrafts"
}

// FindByRegistration finds a non-deleted aircraft by owner and registration
func (r *GormAircraftRepository) FindByRegistration(ctx context.Context, userID, registration string) (*entity.Aircraft, error) {
	var aircraft Aircrafts
	result := r.db.WithContext(ctx).Where("user_id = ? AND registration = ?", userID, registration).First(&aircraft)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return toAircraftEntity(&aircraft), nil
}

// CountByRegistrations counts how many of the given registrations already
// exist for the owner
func (r *GormAircraftRepository) CountByRegistrations(ctx context.Context, userID string, registrations []string) (int64, error) {
	if len(registrations) == 0 {
		return 0, nil
	}

	var count int64
	result := r.db.WithContext(ctx).Model(&Aircrafts{}).
		Where("user_id = ? AND registration IN ?", userID, registrations).
		Count(&count)

	return count, result.Error
}

// Create inserts a new aircraft, assigning an identity if absent
func (r *GormAircraftRepository) Create(ctx context.Context, aircraft *entity.Aircraft) error {
	if aircraft.ID == "" {
		aircraft.ID = uuid.NewString()
	}

	model := toAircraftModel(aircraft)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}

	aircraft.CreatedAt = model.CreatedAt
	aircraft.UpdatedAt = model.UpdatedAt
	return nil
}

// Update replaces all mutable fields of an existing aircraft
func (r *GormAircraftRepository) Update(ctx context.Context, aircraft *entity.Aircraft) error {
	model := toAircraftModel(aircraft)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}

	aircraft.UpdatedAt = model.UpdatedAt
	return nil
}

// ListByUser returns all non-deleted aircraft owned by the user
func (r *GormAircraftRepository) ListByUser(ctx context.Context, userID string) ([]entity.Aircraft, error) {
	var models []Aircrafts
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("registration").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	aircrafts := make([]entity.Aircraft, 0, len(models))
	for i := range models {
		aircrafts = append(aircrafts, *toAircraftEntity(&models[i]))
	}
	return aircrafts, nil
}

// Convert GORM model to domain entity
func toAircraftEntity(model *Aircrafts) *entity.Aircraft {
	return &entity.Aircraft{
		ID:              model.ID,
		UserID:          model.UserID,
		Registration:    model.Registration,
		AircraftType:    model.AircraftType,
		Model:           model.Model,
		Class:           model.Class,
		Condition:       model.Condition,
		Complex:         model.Complex,
		HighPerformance: model.HighPerformance,
		Tailwheel:       model.Tailwheel,
		GlassPanel:      model.GlassPanel,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
		DeletedAt:       model.DeletedAt,
	}
}

// Convert domain entity to GORM model
func toAircraftModel(aircraft *entity.Aircraft) *Aircrafts {
	return &Aircrafts{
		ID:              aircraft.ID,
		UserID:          aircraft.UserID,
		Registration:    aircraft.Registration,
		AircraftType:    aircraft.AircraftType,
		Model:           aircraft.Model,
		Class:           aircraft.Class,
		Condition:       aircraft.Condition,
		Complex:         aircraft.Complex,
		HighPerformance: aircraft.HighPerformance,
		Tailwheel:       aircraft.Tailwheel,
		GlassPanel:      aircraft.GlassPanel,
		CreatedAt:       aircraft.CreatedAt,
		UpdatedAt:       aircraft.UpdatedAt,
		DeletedAt:       aircraft.DeletedAt,
	}
}
