package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is the immutable record of a committed checkout.
type Sale struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID        uuid.UUID       `gorm:"column:owner_id;type:uuid;not null;index" json:"owner_id"`
	CustomerName   *string         `gorm:"column:customer_name" json:"customer_name,omitempty"`
	Subtotal       decimal.Decimal `gorm:"column:subtotal;type:numeric(14,2);not null" json:"subtotal"`
	DiscountAmount decimal.Decimal `gorm:"column:discount_amount;type:numeric(14,2);not null" json:"discount_amount"`
	Total          decimal.Decimal `gorm:"column:total;type:numeric(14,2);not null" json:"total"`
	Items          []SaleItem      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
