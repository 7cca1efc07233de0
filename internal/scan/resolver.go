package scan

import (
	"strings"

	"github.com/jkengne/boutique-pos-backend/pkg/db/models"
)

// Tier names which matching strategy produced a hit. Tiers are tried in
// order and the first match wins; within a tier the catalog's stable
// creation order breaks ties.
type Tier string

const (
	TierBarcodeExact   Tier = "barcode_exact"
	TierIDExact        Tier = "id_exact"
	TierNameMatch      Tier = "name_match"
	TierBarcodePartial Tier = "barcode_partial"
)

// partialMatchMinLen guards the loosest tier against short codes matching
// almost everything.
const partialMatchMinLen = 6

// Resolve walks the matching tiers over the catalog slice and returns the
// first product hit along with the tier that produced it.
func Resolve(products []models.Product, code string) (*models.Product, Tier, bool) {
	if code == "" {
		return nil, "", false
	}

	for i := range products {
		if products[i].Barcode != nil && *products[i].Barcode == code {
			return &products[i], TierBarcodeExact, true
		}
	}

	for i := range products {
		if products[i].ID.String() == code {
			return &products[i], TierIDExact, true
		}
	}

	lowered := strings.ToLower(code)
	for i := range products {
		name := strings.ToLower(products[i].Name)
		if strings.Contains(name, lowered) || strings.Contains(lowered, name) {
			return &products[i], TierNameMatch, true
		}
	}

	if len(code) >= partialMatchMinLen {
		for i := range products {
			if products[i].Barcode == nil || *products[i].Barcode == "" {
				continue
			}
			barcode := strings.ToLower(*products[i].Barcode)
			if strings.Contains(barcode, lowered) || strings.Contains(lowered, barcode) {
				return &products[i], TierBarcodePartial, true
			}
		}
	}

	return nil, "", false
}
