package scan

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jkengne/boutique-pos-backend/pkg/db/models"
)

func testCatalog() []models.Product {
	bag := "BAG001"
	shoe := "SHOE001"
	return []models.Product{
		{ID: uuid.New(), Name: "Women's Handbag", Barcode: &bag},
		{ID: uuid.New(), Name: "Men's Sneakers", Barcode: &shoe},
		{ID: uuid.New(), Name: "Summer Dress"},
	}
}

func TestResolveBarcodeExact(t *testing.T) {
	products := testCatalog()
	product, tier, ok := Resolve(products, "BAG001")
	require.True(t, ok)
	require.Equal(t, TierBarcodeExact, tier)
	require.Equal(t, "Women's Handbag", product.Name)
}

func TestResolveIDExact(t *testing.T) {
	products := testCatalog()
	product, tier, ok := Resolve(products, products[2].ID.String())
	require.True(t, ok)
	require.Equal(t, TierIDExact, tier)
	require.Equal(t, "Summer Dress", product.Name)
}

func TestResolveNameSubstringCaseInsensitive(t *testing.T) {
	products := testCatalog()

	product, tier, ok := Resolve(products, "handbag")
	require.True(t, ok)
	require.Equal(t, TierNameMatch, tier)
	require.Equal(t, "Women's Handbag", product.Name)

	// reverse containment: scanned text wraps the product name
	product, tier, ok = Resolve(products, "PROMO summer dress 2024")
	require.True(t, ok)
	require.Equal(t, TierNameMatch, tier)
	require.Equal(t, "Summer Dress", product.Name)
}

func TestResolveNameMatchPrefersCatalogOrder(t *testing.T) {
	products := testCatalog()

	// two dresses match "dress"; the earlier catalog entry wins
	products = append(products, models.Product{ID: uuid.New(), Name: "Evening Dress"})

	product, tier, ok := Resolve(products, "dress")
	require.True(t, ok)
	require.Equal(t, TierNameMatch, tier)
	require.Equal(t, "Summer Dress", product.Name)
}

func TestResolveBarcodePartialRequiresLongCode(t *testing.T) {
	products := testCatalog()

	// 8 chars, contains SHOE001
	product, tier, ok := Resolve(products, "XSHOE001")
	require.True(t, ok)
	require.Equal(t, TierBarcodePartial, tier)
	require.Equal(t, "Men's Sneakers", product.Name)

	// short codes never reach the partial tier
	_, _, ok = Resolve(products, "SHOE0")
	require.False(t, ok)
}

func TestResolveBarcodePartialCaseInsensitive(t *testing.T) {
	products := testCatalog()

	// payloads that round-trip through other software often come back lowercased
	product, tier, ok := Resolve(products, "bag001xyz")
	require.True(t, ok)
	require.Equal(t, TierBarcodePartial, tier)
	require.Equal(t, "Women's Handbag", product.Name)

	// reverse containment with mixed case
	product, tier, ok = Resolve(products, "xShOe001")
	require.True(t, ok)
	require.Equal(t, TierBarcodePartial, tier)
	require.Equal(t, "Men's Sneakers", product.Name)
}

func TestResolveMiss(t *testing.T) {
	products := testCatalog()
	_, _, ok := Resolve(products, "UNKNOWN-CODE-999")
	require.False(t, ok)

	_, _, ok = Resolve(products, "")
	require.False(t, ok)
}
