package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jkengne/boutique-pos-backend/pkg/db/models"
)

// ProductDTO is the catalog read model returned to terminals.
type ProductDTO struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	Quantity          int             `json:"quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	IsLowStock        bool            `json:"is_low_stock"`
	Barcode           *string         `json:"barcode,omitempty"`
	Description       *string         `json:"description,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// NewProductDTO converts a catalog row into its read model.
func NewProductDTO(product *models.Product) *ProductDTO {
	return toProductDTO(product)
}

func toProductDTO(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}
	return &ProductDTO{
		ID:                product.ID,
		Name:              product.Name,
		Category:          product.Category,
		CostPrice:         product.CostPrice,
		SellingPrice:      product.SellingPrice,
		Quantity:          product.Quantity,
		LowStockThreshold: product.LowStockThreshold,
		IsLowStock:        product.IsLowStock(),
		Barcode:           product.Barcode,
		Description:       product.Description,
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
	}
}

func toProductDTOs(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, *toProductDTO(&products[i]))
	}
	return out
}
