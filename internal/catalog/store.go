package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/jkengne/boutique-pos-backend/pkg/db/models"
)

// DemoOwnerID marks the synthetic owner backing unauthenticated terminals.
var DemoOwnerID = uuid.Nil

// Store abstracts product persistence so durable and demo catalogs are
// interchangeable to the rest of the system.
type Store interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]models.Product, error)
	AdjustQuantity(ctx context.Context, ownerID, id uuid.UUID, delta int) (*models.Product, error)
}
