package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jkengne/boutique-pos-backend/pkg/db/models"
)

// SaleDTO is the committed sale read model.
type SaleDTO struct {
	ID             uuid.UUID       `json:"id"`
	CustomerName   *string         `json:"customer_name,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	Items          []SaleItemDTO   `json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
}

// SaleItemDTO is one snapshotted line of a committed sale.
type SaleItemDTO struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// SaleListResult is one cursor page of sales.
type SaleListResult struct {
	Sales      []SaleDTO `json:"sales"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

func toSaleDTO(sale *models.Sale) *SaleDTO {
	if sale == nil {
		return nil
	}
	dto := &SaleDTO{
		ID:             sale.ID,
		CustomerName:   sale.CustomerName,
		Subtotal:       sale.Subtotal,
		DiscountAmount: sale.DiscountAmount,
		Total:          sale.Total,
		CreatedAt:      sale.CreatedAt,
	}
	for _, item := range sale.Items {
		dto.Items = append(dto.Items, SaleItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Category:  item.Category,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return dto
}
