package settings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jkengne/boutique-pos-backend/pkg/db/models"
)

// Repository persists per-owner shop settings.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByOwner loads the owner's settings row.
func (r *Repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).First(&setting, "owner_id = ?", ownerID).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert writes the settings row, keyed by owner.
func (r *Repository) Upsert(ctx context.Context, setting *models.Setting) (*models.Setting, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"shop_name", "currency", "theme", "language", "updated_at"}),
		}).
		Create(setting).
		Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}
