package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a sellable catalog item owned by a single shop account.
type Product struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID           uuid.UUID       `gorm:"column:owner_id;type:uuid;not null;index" json:"owner_id"`
	Name              string          `gorm:"column:name;not null" json:"name"`
	Category          string          `gorm:"column:category;not null" json:"category"`
	CostPrice         decimal.Decimal `gorm:"column:cost_price;type:numeric(14,2);not null" json:"cost_price"`
	SellingPrice      decimal.Decimal `gorm:"column:selling_price;type:numeric(14,2);not null" json:"selling_price"`
	Quantity          int             `gorm:"column:quantity;not null;default:0" json:"quantity"`
	LowStockThreshold int             `gorm:"column:low_stock_threshold;not null;default:0" json:"low_stock_threshold"`
	Barcode           *string         `gorm:"column:barcode" json:"barcode,omitempty"`
	Description       *string         `gorm:"column:description" json:"description,omitempty"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// IsLowStock reports whether the on-hand quantity sits at or below the
// reorder threshold. Used only for labeling, never for gating sales.
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}
