package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/avelarq/tableside-backend/internal/orders"
	"github.com/avelarq/tableside-backend/pkg/db/models"
	"github.com/avelarq/tableside-backend/pkg/logger"
)

const defaultOrderMaxAge = 2 * time.Hour

type pendingOrderReader interface {
	ListPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Order, error)
}

// OrderExpiryJobParams configure the stale order sweeper.
type OrderExpiryJobParams struct {
	Logger *logger.Logger
	Repo   pendingOrderReader
	Orders orders.Service
	MaxAge time.Duration
	Now    func() time.Time
}

// OrderExpiryJob cancels orders that sat in pending longer than the
// configured age. Cancellation goes through the order service so the
// status machine still guards the transition.
type OrderExpiryJob struct {
	logg   *logger.Logger
	repo   pendingOrderReader
	orders orders.Service
	maxAge time.Duration
	now    func() time.Time
}

// NewOrderExpiryJob builds the stale pending order job.
func NewOrderExpiryJob(params OrderExpiryJobParams) (*OrderExpiryJob, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order service required")
	}
	job := &OrderExpiryJob{
		logg:   params.Logger,
		repo:   params.Repo,
		orders: params.Orders,
		maxAge: params.MaxAge,
		now:    params.Now,
	}
	if job.maxAge <= 0 {
		job.maxAge = defaultOrderMaxAge
	}
	if job.now == nil {
		job.now = time.Now
	}
	return job, nil
}

func (j *OrderExpiryJob) Name() string {
	return "order_expiry"
}

func (j *OrderExpiryJob) Run(ctx context.Context) error {
	cutoff := j.now().Add(-j.maxAge)
	stale, err := j.repo.ListPendingBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("listing stale pending orders: %w", err)
	}

	var failed int
	for _, record := range stale {
		orderCtx := j.logg.WithOrderID(ctx, record.ID.String())
		if _, err := j.orders.Cancel(orderCtx, record.ID); err != nil {
			failed++
			j.logg.Error(orderCtx, "canceling stale order", err)
			continue
		}
		j.logg.Info(orderCtx, "stale pending order canceled")
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d stale orders failed to cancel", failed, len(stale))
	}
	return nil
}
