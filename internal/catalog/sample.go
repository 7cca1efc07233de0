package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jkengne/boutique-pos-backend/pkg/db/models"
)

// SampleStore is the in-memory catalog served to unauthenticated terminals.
// It is seeded with a small boutique inventory and mutates like the real
// repository, but nothing survives a restart.
type SampleStore struct {
	mu       sync.Mutex
	products map[uuid.UUID]*models.Product
}

type sampleSeed struct {
	name         string
	category     string
	costPrice    int64
	sellingPrice int64
	quantity     int
	lowStock     int
	barcode      string
	description  string
}

var sampleSeeds = []sampleSeed{
	{"Women's Handbag", "Accessories", 15000, 25000, 2, 10, "BAG001", "Elegant leather handbag"},
	{"Men's Sneakers", "Footwear", 20000, 35000, 1, 5, "SHOE001", "Comfortable running sneakers"},
	{"Summer Dress", "Clothing", 8000, 12700, 3, 8, "DRESS001", "Light summer dress"},
	{"Evening Dress", "Clothing", 50000, 78200, 15, 5, "DRESS002", "Elegant evening dress"},
	{"Men's Shirt", "Clothing", 25000, 45600, 8, 6, "SHIRT001", "Formal business shirt"},
}

// NewSampleStore seeds a demo catalog.
func NewSampleStore() *SampleStore {
	store := &SampleStore{products: make(map[uuid.UUID]*models.Product)}
	now := time.Now().UTC()
	for i, seed := range sampleSeeds {
		barcode := seed.barcode
		description := seed.description
		product := &models.Product{
			ID:                uuid.New(),
			OwnerID:           DemoOwnerID,
			Name:              seed.name,
			Category:          seed.category,
			CostPrice:         decimal.NewFromInt(seed.costPrice),
			SellingPrice:      decimal.NewFromInt(seed.sellingPrice),
			Quantity:          seed.quantity,
			LowStockThreshold: seed.lowStock,
			Barcode:           &barcode,
			Description:       &description,
			CreatedAt:         now.Add(time.Duration(i) * time.Millisecond),
			UpdatedAt:         now,
		}
		store.products[product.ID] = product
	}
	return store
}

// Create adds a product to the demo catalog.
func (s *SampleStore) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *product
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	stored.OwnerID = DemoOwnerID
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.products[stored.ID] = &stored

	out := stored
	return &out, nil
}

// Update replaces a stored product.
func (s *SampleStore) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[product.ID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	stored := *product
	stored.OwnerID = DemoOwnerID
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	s.products[stored.ID] = &stored

	out := stored
	return &out, nil
}

// Delete removes a product from the demo catalog.
func (s *SampleStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.products, id)
	return nil
}

// FindByID returns a copy of the stored product.
func (s *SampleStore) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *product
	return &out, nil
}

// List returns the demo catalog in stable creation order.
func (s *SampleStore) List(ctx context.Context, ownerID uuid.UUID) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]models.Product, 0, len(s.products))
	for _, product := range s.products {
		rows = append(rows, *product)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		return rows[i].ID.String() < rows[j].ID.String()
	})
	return rows, nil
}

// AdjustQuantity applies a signed stock delta, clamping the result at zero.
func (s *SampleStore) AdjustQuantity(ctx context.Context, ownerID, id uuid.UUID, delta int) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	next := product.Quantity + delta
	if next < 0 {
		next = 0
	}
	product.Quantity = next
	product.UpdatedAt = time.Now().UTC()

	out := *product
	return &out, nil
}
