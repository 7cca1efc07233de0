package scan

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jkengne/boutique-pos-backend/internal/catalog"
	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
)

type fixedSelector struct {
	store catalog.Store
}

func (f *fixedSelector) StoreFor(ownerID uuid.UUID) catalog.Store {
	return f.store
}

func TestServiceResolveAgainstDemoCatalog(t *testing.T) {
	sample := catalog.NewSampleStore()
	svc, err := NewService(&fixedSelector{store: sample}, nil)
	require.NoError(t, err)
	ctx := context.Background()

	result, err := svc.Resolve(ctx, catalog.DemoOwnerID, "BAG001")
	require.NoError(t, err)
	require.Equal(t, TierBarcodeExact, result.Tier)
	require.Equal(t, "Women's Handbag", result.Product.Name)

	result, err = svc.Resolve(ctx, catalog.DemoOwnerID, "bag")
	require.NoError(t, err)
	require.Equal(t, TierNameMatch, result.Tier)
	require.Equal(t, "Women's Handbag", result.Product.Name)
}

func TestServiceResolveProductInfoPayloadUsesEmbeddedBarcode(t *testing.T) {
	sample := catalog.NewSampleStore()
	svc, err := NewService(&fixedSelector{store: sample}, nil)
	require.NoError(t, err)

	raw := `{"name":"Anything","barcode":"SHOE001"}`
	result, err := svc.Resolve(context.Background(), catalog.DemoOwnerID, raw)
	require.NoError(t, err)
	require.Equal(t, TierBarcodeExact, result.Tier)
	require.Equal(t, "Men's Sneakers", result.Product.Name)
}

func TestServiceResolveMissIsNotFound(t *testing.T) {
	sample := catalog.NewSampleStore()
	svc, err := NewService(&fixedSelector{store: sample}, nil)
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), catalog.DemoOwnerID, "ZZZ-UNKNOWN")
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
