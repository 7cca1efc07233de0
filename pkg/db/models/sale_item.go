package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItem is a by-value snapshot of one cart line at commit time. It keeps
// the sold name and unit price even if the catalog row changes later.
type SaleItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SaleID    uuid.UUID       `gorm:"column:sale_id;type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	Category  string          `gorm:"column:category;not null" json:"category"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(14,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	Position  int             `gorm:"column:position;not null" json:"position"`
}
