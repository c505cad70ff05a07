package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avelarq/tableside-backend/pkg/db/models"
	"github.com/avelarq/tableside-backend/pkg/enums"
	pkgerrors "github.com/avelarq/tableside-backend/pkg/errors"
	"github.com/avelarq/tableside-backend/pkg/pricing"
)

// Intent is the client-facing view of a payment intent. Amounts are in
// dollars; cents live only at the storage and gateway boundary.
type Intent struct {
	ID            string                    `json:"id"`
	OrderID       string                    `json:"order_id"`
	Amount        float64                   `json:"amount"`
	ProcessingFee float64                   `json:"processing_fee"`
	Currency      string                    `json:"currency"`
	Status        enums.PaymentIntentStatus `json:"status"`
	CreatedAt     time.Time                 `json:"created_at"`
}

// CardDetails carries the fields checked before a confirmation is
// accepted. The PAN never leaves this process; only validation results do.
type CardDetails struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVV      string
}

// Service defines payment intent lifecycle operations.
type Service interface {
	CreateIntent(ctx context.Context, orderID string, amount float64, currency string) (*Intent, error)
	Confirm(ctx context.Context, intentID string, card CardDetails) (*Intent, error)
	Refund(ctx context.Context, intentID string) (*Intent, error)
	IntentForOrder(ctx context.Context, orderID string) (*Intent, error)
}

type service struct {
	repo     Repository
	feeRate  float64
	feeFlat  float64
	currency string
	now      func() time.Time
}

// ServiceParams wires the payments service dependencies.
type ServiceParams struct {
	Repo            Repository
	ProcessingRate  float64
	ProcessingFlat  float64
	DefaultCurrency string
	Now             func() time.Time
}

// NewService builds a payments service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	svc := &service{
		repo:     params.Repo,
		feeRate:  params.ProcessingRate,
		feeFlat:  params.ProcessingFlat,
		currency: params.DefaultCurrency,
		now:      params.Now,
	}
	if svc.feeRate <= 0 {
		svc.feeRate = DefaultProcessingFeeRate
	}
	if svc.feeFlat <= 0 {
		svc.feeFlat = DefaultProcessingFeeFlat
	}
	if svc.currency == "" {
		svc.currency = "usd"
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc, nil
}

func (s *service) CreateIntent(ctx context.Context, orderID string, amount float64, currency string) (*Intent, error) {
	parsedOrderID, err := uuid.Parse(orderID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order id")
	}
	if !pricing.IsValidPrice(amount) || amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be a positive number")
	}
	if currency == "" {
		currency = s.currency
	}

	intent := &models.PaymentIntent{
		ID:          uuid.New(),
		OrderID:     parsedOrderID,
		AmountCents: pricing.ToCents(amount),
		Currency:    currency,
		Status:      enums.PaymentIntentStatusRequiresPayment,
	}
	created, err := s.repo.CreateIntent(ctx, intent)
	if err != nil {
		return nil, err
	}
	return s.intentFromModel(created), nil
}

func (s *service) Confirm(ctx context.Context, intentID string, card CardDetails) (*Intent, error) {
	parsed, err := uuid.Parse(intentID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment intent id")
	}
	intent, err := s.repo.FindIntentByID(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if intent.Status != enums.PaymentIntentStatusRequiresPayment {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment intent is not awaiting payment").
			WithDetails(map[string]string{"status": intent.Status.String()})
	}

	if errs := s.validateCard(card); len(errs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "card validation failed").
			WithDetails(map[string][]string{"errors": errs})
	}

	if err := s.repo.UpdateIntentStatus(ctx, intent.ID, enums.PaymentIntentStatusSucceeded); err != nil {
		return nil, err
	}
	intent.Status = enums.PaymentIntentStatusSucceeded
	return s.intentFromModel(intent), nil
}

func (s *service) Refund(ctx context.Context, intentID string) (*Intent, error) {
	parsed, err := uuid.Parse(intentID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment intent id")
	}
	intent, err := s.repo.FindIntentByID(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if intent.Status != enums.PaymentIntentStatusSucceeded {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only succeeded payments can be refunded").
			WithDetails(map[string]string{"status": intent.Status.String()})
	}

	if err := s.repo.UpdateIntentStatus(ctx, intent.ID, enums.PaymentIntentStatusRefunded); err != nil {
		return nil, err
	}
	intent.Status = enums.PaymentIntentStatusRefunded
	return s.intentFromModel(intent), nil
}

func (s *service) IntentForOrder(ctx context.Context, orderID string) (*Intent, error) {
	parsed, err := uuid.Parse(orderID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order id")
	}
	intent, err := s.repo.FindIntentByOrderID(ctx, parsed)
	if err != nil {
		return nil, err
	}
	return s.intentFromModel(intent), nil
}

func (s *service) validateCard(card CardDetails) []string {
	var errs []string
	if !ValidateCardNumber(card.Number) {
		errs = append(errs, "Invalid card number")
	}
	if !ValidateExpiration(card.ExpMonth, card.ExpYear, s.now()) {
		errs = append(errs, "Card is expired")
	}
	if !ValidateCVV(card.CVV, DetectCardType(card.Number)) {
		errs = append(errs, "Invalid security code")
	}
	return errs
}

func (s *service) intentFromModel(record *models.PaymentIntent) *Intent {
	amount := pricing.FromCents(record.AmountCents)
	return &Intent{
		ID:            record.ID.String(),
		OrderID:       record.OrderID.String(),
		Amount:        amount,
		ProcessingFee: ProcessingFee(amount, s.feeRate, s.feeFlat),
		Currency:      record.Currency,
		Status:        record.Status,
		CreatedAt:     record.CreatedAt,
	}
}
