package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avelarq/tableside-backend/pkg/db/models"
	"github.com/avelarq/tableside-backend/pkg/enums"
	pkgerrors "github.com/avelarq/tableside-backend/pkg/errors"
	"github.com/avelarq/tableside-backend/pkg/metrics"
	"github.com/avelarq/tableside-backend/pkg/pagination"
	"github.com/avelarq/tableside-backend/pkg/pricing"
	"github.com/avelarq/tableside-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order submission and lifecycle operations.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*Order, error)
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByTable(ctx context.Context, tableID string, params pagination.Params) (*OrderPage, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, to enums.OrderStatus) (*Order, error)
	Cancel(ctx context.Context, id uuid.UUID) (*Order, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	taxRate float64
	metrics *metrics.OrderMetrics
}

// ServiceParams wires the order service dependencies.
type ServiceParams struct {
	Repo    Repository
	Tx      txRunner
	TaxRate float64
	Metrics *metrics.OrderMetrics
}

// NewService builds an orders service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.TaxRate < 0 {
		return nil, fmt.Errorf("tax rate must be non-negative")
	}
	if params.TaxRate == 0 {
		params.TaxRate = pricing.DefaultTaxRate
	}
	return &service{
		repo:    params.Repo,
		tx:      params.Tx,
		taxRate: params.TaxRate,
		metrics: params.Metrics,
	}, nil
}

// SubmitInput carries a frozen cart into order submission. Tip is an
// absolute amount in dollars; nil means no tip.
type SubmitInput struct {
	TableID   string
	OrderType enums.OrderType
	Items     []types.CartItem
	Tip       *float64
}

// Submit validates the draft, prices it and persists the order atomically
// with status pending.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*Order, error) {
	draft := OrderDraft{TableID: input.TableID, Items: input.Items, Tip: input.Tip}
	if result := ValidateOrder(draft); !result.Valid {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order validation failed").WithDetails(map[string]any{
			"errors": result.Errors,
		})
	}

	orderType := input.OrderType
	if orderType == "" {
		orderType = enums.OrderTypeDineIn
	}
	if !orderType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order type %q", orderType))
	}

	subtotal := pricing.Subtotal(input.Items)
	tax := pricing.Tax(subtotal, s.taxRate)
	var tip float64
	if input.Tip != nil {
		tip = pricing.Round2(*input.Tip)
	}
	total := pricing.Total(subtotal, tax, tip, 0)

	record := &models.Order{
		ID:            uuid.New(),
		TableID:       input.TableID,
		Status:        enums.OrderStatusPending,
		OrderType:     orderType,
		SubtotalCents: pricing.ToCents(subtotal),
		TaxCents:      pricing.ToCents(tax),
		TipCents:      pricing.ToCents(tip),
		TotalCents:    pricing.ToCents(total),
	}

	items, err := buildOrderItems(record.ID, input.Items)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateOrder(ctx, record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order items")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncSubmitted()

	record.Items = items
	return orderFromModel(record), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	record, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return orderFromModel(record), nil
}

// ListByTable pages through a table's orders newest first. The returned
// cursor is empty on the last page.
func (s *service) ListByTable(ctx context.Context, tableID string, params pagination.Params) (*OrderPage, error) {
	if tableID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "table id is required")
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	records, err := s.repo.ListOrdersByTable(ctx, tableID, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, err
	}

	page := &OrderPage{}
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	page.Orders = make([]Order, len(records))
	for i := range records {
		page.Orders[i] = *orderFromModel(&records[i])
	}
	return page, nil
}

// UpdateStatus applies one lifecycle transition. Moves outside the
// transition table are rejected before anything is persisted.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, to enums.OrderStatus) (*Order, error) {
	if !to.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", to))
	}

	record, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !IsValidStatusTransition(record.Status, to) {
		s.metrics.IncRejectedTransition(record.Status.String(), to.String())
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot transition order from %s to %s", record.Status, to)).WithDetails(map[string]any{
			"from": record.Status,
			"to":   to,
		})
	}

	if err := s.repo.UpdateOrderStatus(ctx, id, to); err != nil {
		return nil, err
	}

	s.metrics.IncTransition(record.Status.String(), to.String())

	record.Status = to
	return orderFromModel(record), nil
}

// Cancel moves the order to cancelled when the lifecycle still allows it.
func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*Order, error) {
	record, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanCancelOrder(record.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order in status %s can no longer be cancelled", record.Status))
	}

	if err := s.repo.UpdateOrderStatus(ctx, id, enums.OrderStatusCancelled); err != nil {
		return nil, err
	}

	s.metrics.IncTransition(record.Status.String(), enums.OrderStatusCancelled.String())

	record.Status = enums.OrderStatusCancelled
	return orderFromModel(record), nil
}

func buildOrderItems(orderID uuid.UUID, items []types.CartItem) ([]models.OrderItem, error) {
	result := make([]models.OrderItem, len(items))
	for i, item := range items {
		menuItemID, err := uuid.Parse(item.MenuItem.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err,
				fmt.Sprintf("invalid menu item id %q", item.MenuItem.ID))
		}
		line := models.OrderItem{
			ID:             uuid.New(),
			OrderID:        orderID,
			MenuItemID:     menuItemID,
			Name:           item.MenuItem.Name,
			UnitPriceCents: pricing.ToCents(item.MenuItem.Price),
			Quantity:       item.Quantity,
			Modifiers:      item.SelectedModifiers,
			LineTotalCents: pricing.ToCents(pricing.ItemTotal(item)),
		}
		if item.SpecialInstructions != "" {
			instructions := item.SpecialInstructions
			line.SpecialInstructions = &instructions
		}
		result[i] = line
	}
	return result, nil
}
