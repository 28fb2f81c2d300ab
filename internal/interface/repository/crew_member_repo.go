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

// GormCrewMemberRepository implements the CrewMemberRepository interface
type GormCrewMemberRepository struct {
	db *gorm.DB
}

// NewGormCrewMemberRepository creates a new GORM crew member repository
func NewGormCrewMemberRepository(db *gorm.DB) repository.CrewMemberRepository {
	return &GormCrewMemberRepository{
		db: db,
	}
}

// CrewMembers GORM model for database mapping
type CrewMembers struct {
	ID            string         `gorm:"primaryKey;type:varchar(36)"`
	UserID        string         `gorm:"column:user_id;index"`
	Name          string         `gorm:"column:name"`
	Email         string         `gorm:"column:email"`
	Phone         string         `gorm:"column:phone"`
	LicenseNumber string         `gorm:"column:license_number"`
	Notes         string         `gorm:"column:notes"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides the default table name
func (CrewMembers) TableName() string {
	return "lb_crew_members"
}

// FindByName finds a non-deleted crew member by owner and name
func (r *GormCrewMemberRepository) FindByName(ctx context.Context, userID, name string) (*entity.CrewMember, error) {
	var crew CrewMembers
	result := r.db.WithContext(ctx).Where("user_id = ? AND name = ?", userID, name).First(&crew)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return toCrewMemberEntity(&crew), nil
}

// CountByNames counts how many of the given names already exist for the owner
func (r *GormCrewMemberRepository) CountByNames(ctx context.Context, userID string, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}

	var count int64
	result := r.db.WithContext(ctx).Model(&CrewMembers{}).
		Where("user_id = ? AND name IN ?", userID, names).
		Count(&count)

	return count, result.Error
}

// Create inserts a new crew member, assigning an identity if absent
func (r *GormCrewMemberRepository) Create(ctx context.Context, crew *entity.CrewMember) error {
	if crew.ID == "" {
		crew.ID = uuid.NewString()
	}

	model := toCrewMemberModel(crew)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}

	crew.CreatedAt = model.CreatedAt
	crew.UpdatedAt = model.UpdatedAt
	return nil
}

// Update replaces all mutable fields of an existing crew member
func (r *GormCrewMemberRepository) Update(ctx context.Context, crew *entity.CrewMember) error {
	model := toCrewMemberModel(crew)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}

	crew.UpdatedAt = model.UpdatedAt
	return nil
}

// ListByUser returns all non-deleted crew members owned by the user
func (r *GormCrewMemberRepository) ListByUser(ctx context.Context, userID string) ([]entity.CrewMember, error) {
	var models []CrewMembers
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	members := make([]entity.CrewMember, 0, len(models))
	for i := range models {
		members = append(members, *toCrewMemberEntity(&models[i]))
	}
	return members, nil
}

// Convert GORM model to domain entity
func toCrewMemberEntity(model *CrewMembers) *entity.CrewMember {
	return &entity.CrewMember{
		ID:            model.ID,
		UserID:        model.UserID,
		Name:          model.Name,
		Email:         model.Email,
		Phone:         model.Phone,
		LicenseNumber: model.LicenseNumber,
		Notes:         model.Notes,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
		DeletedAt:     model.DeletedAt,
	}
}

// Convert domain entity to GORM model
func toCrewMemberModel(crew *entity.CrewMember) *CrewMembers {
	return &CrewMembers{
		ID:            crew.ID,
		UserID:        crew.UserID,
		Name:          crew.Name,
		Email:         crew.Email,
		Phone:         crew.Phone,
		LicenseNumber: crew.LicenseNumber,
		Notes:         crew.Notes,
		CreatedAt:     crew.CreatedAt,
		UpdatedAt:     crew.UpdatedAt,
		DeletedAt:     crew.DeletedAt,
	}
}
