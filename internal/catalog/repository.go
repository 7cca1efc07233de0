package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jkengne/boutique-pos-backend/pkg/db/models"
)

// Repository provides owner-scoped product persistence on Postgres.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update saves an existing product row.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product owned by the given account.
func (r *Repository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&models.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID loads a product scoped to its owner.
func (r *Repository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		First(&product, "owner_id = ? AND id = ?", ownerID, id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns the owner's catalog in stable creation order.
func (r *Repository) List(ctx context.Context, ownerID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AdjustQuantity applies a signed stock delta, clamping the result at zero.
func (r *Repository) AdjustQuantity(ctx context.Context, ownerID, id uuid.UUID, delta int) (*models.Product, error) {
	var updated *models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "owner_id = ? AND id = ?", ownerID, id).Error; err != nil {
			return err
		}
		next := product.Quantity + delta
		if next < 0 {
			next = 0
		}
		if err := tx.Model(&product).Update("quantity", next).Error; err != nil {
			return err
		}
		product.Quantity = next
		updated = &product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
