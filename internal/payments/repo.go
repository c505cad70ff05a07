package payments

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avelarq/tableside-backend/pkg/db/models"
	"github.com/avelarq/tableside-backend/pkg/enums"
	pkgerrors "github.com/avelarq/tableside-backend/pkg/errors"
)

// Repository defines persistence operations for payment intents.
type Repository interface {
	CreateIntent(ctx context.Context, intent *models.PaymentIntent) (*models.PaymentIntent, error)
	FindIntentByID(ctx context.Context, id uuid.UUID) (*models.PaymentIntent, error)
	FindIntentByOrderID(ctx context.Context, orderID uuid.UUID) (*models.PaymentIntent, error)
	ListOpenIntentsBefore(ctx context.Context, cutoff time.Time) ([]models.PaymentIntent, error)
	UpdateIntentStatus(ctx context.Context, id uuid.UUID, status enums.PaymentIntentStatus) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a payments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateIntent(ctx context.Context, intent *models.PaymentIntent) (*models.PaymentIntent, error) {
	if err := r.db.WithContext(ctx).Create(intent).Error; err != nil {
		return nil, err
	}
	return intent, nil
}

func (r *repository) FindIntentByID(ctx context.Context, id uuid.UUID) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&intent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment intent not found")
	}
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

func (r *repository) FindIntentByOrderID(ctx context.Context, orderID uuid.UUID) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&intent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment intent not found")
	}
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

func (r *repository) ListOpenIntentsBefore(ctx context.Context, cutoff time.Time) ([]models.PaymentIntent, error) {
	var records []models.PaymentIntent
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", enums.PaymentIntentStatusRequiresPayment, cutoff).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) UpdateIntentStatus(ctx context.Context, id uuid.UUID, status enums.PaymentIntentStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.PaymentIntent{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "payment intent not found")
	}
	return nil
}
