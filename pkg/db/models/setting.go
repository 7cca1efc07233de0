package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jkengne/boutique-pos-backend/pkg/enums"
)

// Setting stores per-owner shop preferences.
type Setting struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID   uuid.UUID      `gorm:"column:owner_id;type:uuid;not null;uniqueIndex" json:"owner_id"`
	ShopName  string         `gorm:"column:shop_name;not null" json:"shop_name"`
	Currency  enums.Currency `gorm:"column:currency;not null;default:'XAF'" json:"currency"`
	Theme     enums.Theme    `gorm:"column:theme;not null;default:'light'" json:"theme"`
	Language  enums.Language `gorm:"column:language;not null;default:'en'" json:"language"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
