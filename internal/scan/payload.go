package scan

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/jkengne/boutique-pos-backend/pkg/errors"
)

// PayloadKind discriminates what a scanned QR code carried.
type PayloadKind string

const (
	// PayloadProductInfo means the code embedded a product JSON document.
	PayloadProductInfo PayloadKind = "product_info"
	// PayloadRawBarcode means the code is treated as an opaque barcode string.
	PayloadRawBarcode PayloadKind = "raw_barcode"
)

// ProductInfo is the product document some QR labels embed. Every field is
// optional except the name, which is what makes a document a product at all.
type ProductInfo struct {
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice *decimal.Decimal `json:"selling_price,omitempty"`
	Quantity     *int             `json:"quantity,omitempty"`
	Barcode      string           `json:"barcode"`
	Description  string           `json:"description"`
}

// Payload is the parsed form of a scanned code.
type Payload struct {
	Kind        PayloadKind  `json:"kind"`
	ProductInfo *ProductInfo `json:"product_info,omitempty"`
	Barcode     string       `json:"barcode,omitempty"`
}

// ParsePayload classifies raw scanner input. JSON documents with a name field
// become product info; everything else, including valid JSON without a name,
// falls back to a raw barcode. When the embedded document omits its own
// barcode, the raw scan text stands in for it.
func ParsePayload(raw string) (Payload, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Payload{}, pkgerrors.New(pkgerrors.CodeValidation, "scan payload is empty")
	}

	var info ProductInfo
	if err := json.Unmarshal([]byte(trimmed), &info); err == nil && strings.TrimSpace(info.Name) != "" {
		if info.Barcode == "" {
			info.Barcode = trimmed
		}
		return Payload{Kind: PayloadProductInfo, ProductInfo: &info}, nil
	}

	return Payload{Kind: PayloadRawBarcode, Barcode: trimmed}, nil
}
