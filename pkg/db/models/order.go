package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/avelarq/tableside-backend/pkg/enums"
)

// Order is the immutable-at-submission record created from a cart. Status
// mutations go through the transition rules in internal/orders only.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TableID         string            `gorm:"column:table_id;not null"`
	Status          enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'pending'"`
	OrderType       enums.OrderType   `gorm:"column:order_type;type:order_type;not null;default:'dine-in'"`
	SubtotalCents   int               `gorm:"column:subtotal_cents;not null"`
	TaxCents        int               `gorm:"column:tax_cents;not null"`
	TipCents        int               `gorm:"column:tip_cents;not null;default:0"`
	TotalCents      int               `gorm:"column:total_cents;not null"`
	PaymentIntentID *uuid.UUID        `gorm:"column:payment_intent_id;type:uuid"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
