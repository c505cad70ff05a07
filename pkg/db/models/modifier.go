package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/avelarq/tableside-backend/pkg/enums"
)

// Modifier is a priced option belonging to exactly one menu item.
type Modifier struct {
	ID         uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MenuItemID uuid.UUID          `gorm:"column:menu_item_id;type:uuid;not null"`
	Name       string             `gorm:"column:name;not null"`
	PriceCents int                `gorm:"column:price_cents;not null;default:0"`
	Type       enums.ModifierType `gorm:"column:type;type:modifier_type;not null;default:'addon'"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
