package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jkengne/boutique-pos-backend/pkg/db/models"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
)

// Service exposes catalog management operations. All reads and writes are
// scoped to the owner; the demo owner resolves to the in-memory sample store.
type Service interface {
	CreateProduct(ctx context.Context, ownerID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, ownerID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error
	GetProduct(ctx context.Context, ownerID, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, ownerID uuid.UUID) ([]ProductDTO, error)
	AdjustStock(ctx context.Context, ownerID, productID uuid.UUID, delta int) (*ProductDTO, error)

	// StoreFor exposes the backing store so the cart and checkout flows can
	// resolve and decrement against the same catalog the terminal sees.
	StoreFor(ownerID uuid.UUID) Store
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name              string
	Category          string
	CostPrice         decimal.Decimal
	SellingPrice      decimal.Decimal
	Quantity          int
	LowStockThreshold int
	Barcode           *string
	Description       *string
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name              *string
	Category          *string
	CostPrice         *decimal.Decimal
	SellingPrice      *decimal.Decimal
	Quantity          *int
	LowStockThreshold *int
	Barcode           *string
	Description       *string
}

type service struct {
	repo   Store
	sample Store
}

// NewService constructs a catalog service backed by the durable repository
// and the seeded demo store.
func NewService(repo Store, sample Store) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if sample == nil {
		return nil, fmt.Errorf("sample store required")
	}
	return &service{repo: repo, sample: sample}, nil
}

func (s *service) StoreFor(ownerID uuid.UUID) Store {
	if ownerID == DemoOwnerID {
		return s.sample
	}
	return s.repo
}

func (s *service) CreateProduct(ctx context.Context, ownerID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		OwnerID:           ownerID,
		Name:              strings.TrimSpace(input.Name),
		Category:          strings.TrimSpace(input.Category),
		CostPrice:         input.CostPrice,
		SellingPrice:      input.SellingPrice,
		Quantity:          input.Quantity,
		LowStockThreshold: input.LowStockThreshold,
		Barcode:           normalizeOptional(input.Barcode),
		Description:       normalizeOptional(input.Description),
	}

	created, err := s.StoreFor(ownerID).Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	return toProductDTO(created), nil
}

func (s *service) UpdateProduct(ctx context.Context, ownerID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	store := s.StoreFor(ownerID)
	product, err := store.FindByID(ctx, ownerID, productID)
	if err != nil {
		return nil, mapNotFound(err, "product not found")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		product.Name = name
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.CostPrice != nil {
		if input.CostPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost_price cannot be negative")
		}
		product.CostPrice = *input.CostPrice
	}
	if input.SellingPrice != nil {
		if input.SellingPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "selling_price cannot be negative")
		}
		product.SellingPrice = *input.SellingPrice
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
		}
		product.Quantity = *input.Quantity
	}
	if input.LowStockThreshold != nil {
		if *input.LowStockThreshold < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "low_stock_threshold cannot be negative")
		}
		product.LowStockThreshold = *input.LowStockThreshold
	}
	if input.Barcode != nil {
		product.Barcode = normalizeOptional(input.Barcode)
	}
	if input.Description != nil {
		product.Description = normalizeOptional(input.Description)
	}

	updated, err := store.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	return toProductDTO(updated), nil
}

func (s *service) DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error {
	if err := s.StoreFor(ownerID).Delete(ctx, ownerID, productID); err != nil {
		return mapNotFound(err, "product not found")
	}
	return nil
}

func (s *service) GetProduct(ctx context.Context, ownerID, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.StoreFor(ownerID).FindByID(ctx, ownerID, productID)
	if err != nil {
		return nil, mapNotFound(err, "product not found")
	}
	return toProductDTO(product), nil
}

func (s *service) ListProducts(ctx context.Context, ownerID uuid.UUID) ([]ProductDTO, error) {
	products, err := s.StoreFor(ownerID).List(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	return toProductDTOs(products), nil
}

func (s *service) AdjustStock(ctx context.Context, ownerID, productID uuid.UUID, delta int) (*ProductDTO, error) {
	product, err := s.StoreFor(ownerID).AdjustQuantity(ctx, ownerID, productID, delta)
	if err != nil {
		return nil, mapNotFound(err, "product not found")
	}
	return toProductDTO(product), nil
}

func validateCreateInput(input CreateProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.CostPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "cost_price cannot be negative")
	}
	if input.SellingPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "selling_price cannot be negative")
	}
	if input.Quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if input.LowStockThreshold < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "low_stock_threshold cannot be negative")
	}
	return nil
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func mapNotFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: product lookup")
}
