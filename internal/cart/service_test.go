package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jkengne/boutique-pos-backend/internal/catalog"
	"github.com/jkengne/boutique-pos-backend/pkg/db/models"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
)

type sampleSelector struct {
	store catalog.Store
}

func (s *sampleSelector) StoreFor(ownerID uuid.UUID) catalog.Store {
	return s.store
}

func newCartFixture(t *testing.T) (Service, *catalog.SampleStore) {
	t.Helper()
	sample := catalog.NewSampleStore()
	svc, err := NewService(NewSessionStore(), &sampleSelector{store: sample})
	require.NoError(t, err)
	return svc, sample
}

func demoProduct(t *testing.T, sample *catalog.SampleStore, name string) models.Product {
	t.Helper()
	rows, err := sample.List(context.Background(), catalog.DemoOwnerID)
	require.NoError(t, err)
	for _, row := range rows {
		if row.Name == name {
			return row
		}
	}
	t.Fatalf("demo product %q not seeded", name)
	return models.Product{}
}

func TestAddItemCreatesAndIncrementsLine(t *testing.T) {
	svc, sample := newCartFixture(t)
	ctx := context.Background()
	handbag := demoProduct(t, sample, "Women's Handbag") // qty 2

	dto, err := svc.AddItem(ctx, catalog.DemoOwnerID, "till-1", handbag.ID)
	require.NoError(t, err)
	require.Len(t, dto.Lines, 1)
	require.Equal(t, 1, dto.Lines[0].Quantity)
	require.True(t, dto.Lines[0].UnitPrice.Equal(decimal.NewFromInt(25000)))

	dto, err = svc.AddItem(ctx, catalog.DemoOwnerID, "till-1", handbag.ID)
	require.NoError(t, err)
	require.Len(t, dto.Lines, 1)
	require.Equal(t, 2, dto.Lines[0].Quantity)
}

func TestAddItemOutOfStock(t *testing.T) {
	svc, sample := newCartFixture(t)
	ctx := context.Background()
	sneakers := demoProduct(t, sample, "Men's Sneakers")

	// drain the last unit
	_, err := sample.AdjustQuantity(ctx, catalog.DemoOwnerID, sneakers.ID, -1)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, catalog.DemoOwnerID, "till-1", sneakers.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeOutOfStock, appErr.Code())
}

func TestAddItemStockLimitExceeded(t *testing.T) {
	svc, sample := newCartFixture(t)
	ctx := context.Background()
	handbag := demoProduct(t, sample, "Women's Handbag") // qty 2

	_, err := svc.AddItem(ctx, catalog.DemoOwnerID, "till-1", handbag.ID)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, catalog.DemoOwnerID, "till-1", handbag.ID)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, catalog.DemoOwnerID, "till-1", handbag.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeStockLimit, appErr.Code())

	// the failed add must not have touched the cart
	dto, err := svc.Get(ctx, catalog.DemoOwnerID, "till-1")
	require.NoError(t, err)
	require.Equal(t, 2, dto.Lines[0].Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _ := newCartFixture(t)

	_, err := svc.AddItem(context.Background(), catalog.DemoOwnerID, "till-1", uuid.New())
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestSetLineQuantityZeroRemovesLine(t *testing.T) {
	svc, sample := newCartFixture(t)
	ctx := context.Background()
	dress := demoProduct(t, sample, "Summer Dress")

	_, err := svc.AddItem(ctx, catalog.DemoOwnerID, "till-1", dress.ID)
	require.NoError(t, err)

	dto, err := svc.SetLineQuantity(ctx, catalog.DemoOwnerID, "till-1", dress.ID, 0)
	require.NoError(t, err)
	require.Empty(t, dto.Lines)
}

func TestSetLineQuantityRespectsStock(t *testing.T) {
	svc, sample := newCartFixture(t)
	ctx := context.Background()
	dress := demoProduct(t, sample, "Summer Dress") // qty 3

	_, err := svc.AddItem(ctx, catalog.DemoOwnerID, "till-1", dress.ID)
	require.NoError(t, err)

	dto, err := svc.SetLineQuantity(ctx, catalog.DemoOwnerID, "till-1", dress.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 3, dto.Lines[0].Quantity)

	_, err = svc.SetLineQuantity(ctx, catalog.DemoOwnerID, "till-1", dress.ID, 4)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeStockLimit, appErr.Code())

	_, err = svc.SetLineQuantity(ctx, catalog.DemoOwnerID, "till-1", dress.ID, -1)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestSetLineQuantityMissingLine(t *testing.T) {
	svc, sample := newCartFixture(t)
	dress := demoProduct(t, sample, "Summer Dress")

	_, err := svc.SetLineQuantity(context.Background(), catalog.DemoOwnerID, "till-1", dress.ID, 2)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	svc, sample := newCartFixture(t)
	ctx := context.Background()
	dress := demoProduct(t, sample, "Summer Dress")
	shirt := demoProduct(t, sample, "Men's Shirt")

	_, err := svc.AddItem(ctx, catalog.DemoOwnerID, "till-1", dress.ID)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, catalog.DemoOwnerID, "till-1", shirt.ID)
	require.NoError(t, err)

	dto, err := svc.RemoveItem(ctx, catalog.DemoOwnerID, "till-1", dress.ID)
	require.NoError(t, err)
	require.Len(t, dto.Lines, 1)
	require.Equal(t, shirt.ID, dto.Lines[0].ProductID)

	// removing again is a no-op, not an error
	again, err := svc.RemoveItem(ctx, catalog.DemoOwnerID, "till-1", dress.ID)
	require.NoError(t, err)
	require.Equal(t, dto, again)
}

func TestSetDiscountValidatesRange(t *testing.T) {
	svc, _ := newCartFixture(t)
	ctx := context.Background()

	dto, err := svc.SetDiscount(ctx, catalog.DemoOwnerID, "till-1", decimal.NewFromInt(10))
	require.NoError(t, err)
	require.True(t, dto.DiscountPercent.Equal(decimal.NewFromInt(10)))

	for _, percent := range []int64{-1, 101} {
		_, err := svc.SetDiscount(ctx, catalog.DemoOwnerID, "till-1", decimal.NewFromInt(percent))
		appErr := pkgerrors.As(err)
		require.NotNil(t, appErr)
		require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	}
}

func TestCartsAreIsolatedPerTerminal(t *testing.T) {
	svc, sample := newCartFixture(t)
	ctx := context.Background()
	shirt := demoProduct(t, sample, "Men's Shirt")

	_, err := svc.AddItem(ctx, catalog.DemoOwnerID, "till-1", shirt.ID)
	require.NoError(t, err)

	other, err := svc.Get(ctx, catalog.DemoOwnerID, "till-2")
	require.NoError(t, err)
	require.Empty(t, other.Lines)
}

func TestClearResetsCart(t *testing.T) {
	svc, sample := newCartFixture(t)
	ctx := context.Background()
	shirt := demoProduct(t, sample, "Men's Shirt")

	_, err := svc.AddItem(ctx, catalog.DemoOwnerID, "till-1", shirt.ID)
	require.NoError(t, err)
	_, err = svc.SetDiscount(ctx, catalog.DemoOwnerID, "till-1", decimal.NewFromInt(5))
	require.NoError(t, err)
	_, err = svc.SetCustomerName(ctx, catalog.DemoOwnerID, "till-1", " Jean Kamga ")
	require.NoError(t, err)

	dto, err := svc.Get(ctx, catalog.DemoOwnerID, "till-1")
	require.NoError(t, err)
	require.Equal(t, "Jean Kamga", dto.CustomerName)

	dto, err = svc.Clear(ctx, catalog.DemoOwnerID, "till-1")
	require.NoError(t, err)
	require.Empty(t, dto.Lines)
	require.True(t, dto.DiscountPercent.IsZero())
	require.Empty(t, dto.CustomerName)
}

func TestTerminalIDRequired(t *testing.T) {
	svc, _ := newCartFixture(t)

	_, err := svc.Get(context.Background(), catalog.DemoOwnerID, "  ")
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}
