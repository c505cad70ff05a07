package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/avelarq/tableside-backend/pkg/db/models"
	"github.com/avelarq/tableside-backend/pkg/enums"
	"github.com/avelarq/tableside-backend/pkg/pricing"
	"github.com/avelarq/tableside-backend/pkg/types"
)

// Order is the domain view of a submitted order with currency amounts in
// dollars. Cents live only at the persistence and gateway boundaries.
type Order struct {
	ID              uuid.UUID         `json:"id"`
	TableID         string            `json:"table_id"`
	Status          enums.OrderStatus `json:"status"`
	OrderType       enums.OrderType   `json:"order_type"`
	Items           []OrderLine       `json:"items"`
	Subtotal        float64           `json:"subtotal"`
	Tax             float64           `json:"tax"`
	Tip             float64           `json:"tip"`
	Total           float64           `json:"total"`
	PaymentIntentID *uuid.UUID        `json:"payment_intent_id,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// OrderLine is one frozen cart line inside a submitted order.
type OrderLine struct {
	ID                  uuid.UUID        `json:"id"`
	MenuItemID          uuid.UUID        `json:"menu_item_id"`
	Name                string           `json:"name"`
	UnitPrice           float64          `json:"unit_price"`
	Quantity            int              `json:"quantity"`
	Modifiers           []types.Modifier `json:"modifiers,omitempty"`
	SpecialInstructions string           `json:"special_instructions,omitempty"`
	LineTotal           float64          `json:"line_total"`
}

// OrderPage is one page of a table's order history.
type OrderPage struct {
	Orders     []Order `json:"orders"`
	NextCursor string  `json:"next_cursor,omitempty"`
}

func orderFromModel(record *models.Order) *Order {
	if record == nil {
		return nil
	}
	lines := make([]OrderLine, len(record.Items))
	for i, item := range record.Items {
		lines[i] = orderLineFromModel(item)
	}
	return &Order{
		ID:              record.ID,
		TableID:         record.TableID,
		Status:          record.Status,
		OrderType:       record.OrderType,
		Items:           lines,
		Subtotal:        pricing.FromCents(record.SubtotalCents),
		Tax:             pricing.FromCents(record.TaxCents),
		Tip:             pricing.FromCents(record.TipCents),
		Total:           pricing.FromCents(record.TotalCents),
		PaymentIntentID: record.PaymentIntentID,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
}

func orderLineFromModel(item models.OrderItem) OrderLine {
	line := OrderLine{
		ID:         item.ID,
		MenuItemID: item.MenuItemID,
		Name:       item.Name,
		UnitPrice:  pricing.FromCents(item.UnitPriceCents),
		Quantity:   item.Quantity,
		Modifiers:  item.Modifiers,
		LineTotal:  pricing.FromCents(item.LineTotalCents),
	}
	if item.SpecialInstructions != nil {
		line.SpecialInstructions = *item.SpecialInstructions
	}
	return line
}
