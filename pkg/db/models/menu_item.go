package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is catalog reference data maintained by restaurant staff and
// served read-only to ordering clients.
type MenuItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID  uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;not null;default:''"`
	PriceCents  int             `gorm:"column:price_cents;not null"`
	ImageURL    *string         `gorm:"column:image_url"`
	Available   bool            `gorm:"column:available;not null;default:true"`
	Popular     bool            `gorm:"column:popular;not null;default:false"`
	Allergens   []string        `gorm:"column:allergens;type:jsonb;serializer:json"`
	Dietary     map[string]bool `gorm:"column:dietary;type:jsonb;serializer:json"`
	Modifiers   []Modifier      `gorm:"foreignKey:MenuItemID"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
