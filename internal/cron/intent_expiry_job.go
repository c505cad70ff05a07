package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/avelarq/tableside-backend/pkg/db/models"
	"github.com/avelarq/tableside-backend/pkg/enums"
	"github.com/avelarq/tableside-backend/pkg/logger"
	"github.com/google/uuid"
)

const defaultIntentMaxAge = time.Hour

type openIntentStore interface {
	ListOpenIntentsBefore(ctx context.Context, cutoff time.Time) ([]models.PaymentIntent, error)
	UpdateIntentStatus(ctx context.Context, id uuid.UUID, status enums.PaymentIntentStatus) error
}

// IntentExpiryJobParams configure the abandoned payment intent sweeper.
type IntentExpiryJobParams struct {
	Logger *logger.Logger
	Repo   openIntentStore
	MaxAge time.Duration
	Now    func() time.Time
}

// IntentExpiryJob fails payment intents that were opened but never
// confirmed, so abandoned checkouts do not linger as open liabilities.
type IntentExpiryJob struct {
	logg   *logger.Logger
	repo   openIntentStore
	maxAge time.Duration
	now    func() time.Time
}

// NewIntentExpiryJob builds the abandoned intent job.
func NewIntentExpiryJob(params IntentExpiryJobParams) (*IntentExpiryJob, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("payment intent repository required")
	}
	job := &IntentExpiryJob{
		logg:   params.Logger,
		repo:   params.Repo,
		maxAge: params.MaxAge,
		now:    params.Now,
	}
	if job.maxAge <= 0 {
		job.maxAge = defaultIntentMaxAge
	}
	if job.now == nil {
		job.now = time.Now
	}
	return job, nil
}

func (j *IntentExpiryJob) Name() string {
	return "intent_expiry"
}

func (j *IntentExpiryJob) Run(ctx context.Context) error {
	cutoff := j.now().Add(-j.maxAge)
	stale, err := j.repo.ListOpenIntentsBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("listing abandoned intents: %w", err)
	}

	var failed int
	for _, record := range stale {
		intentCtx := j.logg.WithField(ctx, "intent_id", record.ID.String())
		if err := j.repo.UpdateIntentStatus(intentCtx, record.ID, enums.PaymentIntentStatusFailed); err != nil {
			failed++
			j.logg.Error(intentCtx, "failing abandoned intent", err)
			continue
		}
		j.logg.Info(intentCtx, "abandoned payment intent marked failed")
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d abandoned intents failed to update", failed, len(stale))
	}
	return nil
}
