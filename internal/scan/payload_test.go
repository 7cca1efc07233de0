package scan

import (
	"testing"

	"github.com/stretchr/testify/require"

	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
)

func TestParsePayloadProductInfo(t *testing.T) {
	raw := `{"name":"Women's Handbag","category":"Accessories","selling_price":25000,"quantity":2,"barcode":"BAG001","description":"Elegant leather handbag"}`
	payload, err := ParsePayload(raw)
	require.NoError(t, err)
	require.Equal(t, PayloadProductInfo, payload.Kind)
	require.NotNil(t, payload.ProductInfo)
	require.Equal(t, "Women's Handbag", payload.ProductInfo.Name)
	require.Equal(t, "BAG001", payload.ProductInfo.Barcode)
	require.NotNil(t, payload.ProductInfo.Quantity)
	require.Equal(t, 2, *payload.ProductInfo.Quantity)
}

func TestParsePayloadProductInfoWithoutBarcodeFallsBackToRawText(t *testing.T) {
	raw := `{"name":"Silk Scarf"}`
	payload, err := ParsePayload(raw)
	require.NoError(t, err)
	require.Equal(t, PayloadProductInfo, payload.Kind)
	require.Equal(t, raw, payload.ProductInfo.Barcode)
}

func TestParsePayloadJSONWithoutNameIsRawBarcode(t *testing.T) {
	raw := `{"sku":"X123"}`
	payload, err := ParsePayload(raw)
	require.NoError(t, err)
	require.Equal(t, PayloadRawBarcode, payload.Kind)
	require.Equal(t, raw, payload.Barcode)
	require.Nil(t, payload.ProductInfo)
}

func TestParsePayloadPlainBarcode(t *testing.T) {
	payload, err := ParsePayload("  BAG001 ")
	require.NoError(t, err)
	require.Equal(t, PayloadRawBarcode, payload.Kind)
	require.Equal(t, "BAG001", payload.Barcode)
}

func TestParsePayloadEmpty(t *testing.T) {
	_, err := ParsePayload("   ")
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}
