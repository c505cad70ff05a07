package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/avelarq/tableside-backend/pkg/types"
)

// OrderItem freezes one cart line at submission time: name and prices are
// snapshots so later catalog edits never rewrite order history.
type OrderItem struct {
	ID                  uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID             uuid.UUID        `gorm:"column:order_id;type:uuid;not null"`
	MenuItemID          uuid.UUID        `gorm:"column:menu_item_id;type:uuid;not null"`
	Name                string           `gorm:"column:name;not null"`
	UnitPriceCents      int              `gorm:"column:unit_price_cents;not null"`
	Quantity            int              `gorm:"column:quantity;not null"`
	Modifiers           []types.Modifier `gorm:"column:modifiers;type:jsonb;serializer:json"`
	SpecialInstructions *string          `gorm:"column:special_instructions"`
	LineTotalCents      int              `gorm:"column:line_total_cents;not null"`
	CreatedAt           time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
