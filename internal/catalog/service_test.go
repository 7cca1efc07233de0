package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jkengne/boutique-pos-backend/pkg/db/models"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
)

type stubStore struct {
	createFn  func(ctx context.Context, product *models.Product) (*models.Product, error)
	updateFn  func(ctx context.Context, product *models.Product) (*models.Product, error)
	deleteFn  func(ctx context.Context, ownerID, id uuid.UUID) error
	findFn    func(ctx context.Context, ownerID, id uuid.UUID) (*models.Product, error)
	listFn    func(ctx context.Context, ownerID uuid.UUID) ([]models.Product, error)
	adjustFn  func(ctx context.Context, ownerID, id uuid.UUID, delta int) (*models.Product, error)
}

func (s *stubStore) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	return s.createFn(ctx, product)
}

func (s *stubStore) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	return s.updateFn(ctx, product)
}

func (s *stubStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.deleteFn(ctx, ownerID, id)
}

func (s *stubStore) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Product, error) {
	return s.findFn(ctx, ownerID, id)
}

func (s *stubStore) List(ctx context.Context, ownerID uuid.UUID) ([]models.Product, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubStore) AdjustQuantity(ctx context.Context, ownerID, id uuid.UUID, delta int) (*models.Product, error) {
	return s.adjustFn(ctx, ownerID, id, delta)
}

func TestServiceStoreForSelectsSampleForDemoOwner(t *testing.T) {
	repo := &stubStore{}
	sample := NewSampleStore()
	svc, err := NewService(repo, sample)
	require.NoError(t, err)

	require.Equal(t, Store(sample), svc.StoreFor(DemoOwnerID))
	require.Equal(t, Store(repo), svc.StoreFor(uuid.New()))
}

func TestServiceCreateProductValidation(t *testing.T) {
	svc, err := NewService(&stubStore{}, NewSampleStore())
	require.NoError(t, err)
	ctx := context.Background()
	owner := uuid.New()

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{"missing name", CreateProductInput{Category: "Clothing"}},
		{"negative cost", CreateProductInput{Name: "Dress", CostPrice: decimal.NewFromInt(-1)}},
		{"negative selling", CreateProductInput{Name: "Dress", SellingPrice: decimal.NewFromInt(-1)}},
		{"negative quantity", CreateProductInput{Name: "Dress", Quantity: -1}},
		{"negative threshold", CreateProductInput{Name: "Dress", LowStockThreshold: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, owner, tc.input)
			appErr := pkgerrors.As(err)
			require.NotNil(t, appErr)
			require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
		})
	}
}

func TestServiceCreateProductTrimsAndNormalizes(t *testing.T) {
	var stored *models.Product
	repo := &stubStore{
		createFn: func(ctx context.Context, product *models.Product) (*models.Product, error) {
			stored = product
			product.ID = uuid.New()
			return product, nil
		},
	}
	svc, err := NewService(repo, NewSampleStore())
	require.NoError(t, err)

	owner := uuid.New()
	empty := "  "
	dto, err := svc.CreateProduct(context.Background(), owner, CreateProductInput{
		Name:         "  Summer Dress ",
		Category:     " Clothing ",
		SellingPrice: decimal.NewFromInt(12700),
		Barcode:      &empty,
	})
	require.NoError(t, err)
	require.Equal(t, "Summer Dress", dto.Name)
	require.Equal(t, "Clothing", dto.Category)
	require.Nil(t, dto.Barcode)
	require.Equal(t, owner, stored.OwnerID)
}

func TestServiceUpdateProductNotFound(t *testing.T) {
	repo := &stubStore{
		findFn: func(ctx context.Context, ownerID, id uuid.UUID) (*models.Product, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc, err := NewService(repo, NewSampleStore())
	require.NoError(t, err)

	name := "Renamed"
	_, err = svc.UpdateProduct(context.Background(), uuid.New(), uuid.New(), UpdateProductInput{Name: &name})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestServiceUpdateProductAppliesPartialChanges(t *testing.T) {
	owner := uuid.New()
	existing := &models.Product{
		ID:           uuid.New(),
		OwnerID:      owner,
		Name:         "Summer Dress",
		Category:     "Clothing",
		SellingPrice: decimal.NewFromInt(12700),
		Quantity:     3,
	}
	repo := &stubStore{
		findFn: func(ctx context.Context, ownerID, id uuid.UUID) (*models.Product, error) {
			copy := *existing
			return &copy, nil
		},
		updateFn: func(ctx context.Context, product *models.Product) (*models.Product, error) {
			return product, nil
		},
	}
	svc, err := NewService(repo, NewSampleStore())
	require.NoError(t, err)

	price := decimal.NewFromInt(14000)
	dto, err := svc.UpdateProduct(context.Background(), owner, existing.ID, UpdateProductInput{SellingPrice: &price})
	require.NoError(t, err)
	require.True(t, dto.SellingPrice.Equal(price))
	require.Equal(t, "Summer Dress", dto.Name)
	require.Equal(t, 3, dto.Quantity)
}

func TestServiceAdjustStockUsesDemoStoreForDemoOwner(t *testing.T) {
	sample := NewSampleStore()
	svc, err := NewService(&stubStore{}, sample)
	require.NoError(t, err)
	ctx := context.Background()

	rows, err := sample.List(ctx, DemoOwnerID)
	require.NoError(t, err)
	handbag := rows[0]

	dto, err := svc.AdjustStock(ctx, DemoOwnerID, handbag.ID, -2)
	require.NoError(t, err)
	require.Equal(t, 0, dto.Quantity)
	require.True(t, dto.IsLowStock)
}
