package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/avelarq/tableside-backend/pkg/enums"
)

// PaymentIntent tracks a charge attempt delegated to the external gateway.
// Amounts are stored in cents, matching the gateway contract.
type PaymentIntent struct {
	ID          uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID                 `gorm:"column:order_id;type:uuid;not null"`
	AmountCents int                       `gorm:"column:amount_cents;not null"`
	Currency    string                    `gorm:"column:currency;not null;default:'usd'"`
	Status      enums.PaymentIntentStatus `gorm:"column:status;type:payment_intent_status;not null;default:'requires_payment'"`
	CreatedAt   time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
