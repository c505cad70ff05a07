package cron

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/avelarq/tableside-backend/pkg/db/models"
	"github.com/avelarq/tableside-backend/pkg/enums"
	"github.com/avelarq/tableside-backend/pkg/logger"
)

type stubIntentStore struct {
	intents []models.PaymentIntent
	updated map[uuid.UUID]enums.PaymentIntentStatus
}

func (s *stubIntentStore) ListOpenIntentsBefore(ctx context.Context, cutoff time.Time) ([]models.PaymentIntent, error) {
	var matched []models.PaymentIntent
	for _, intent := range s.intents {
		if intent.Status == enums.PaymentIntentStatusRequiresPayment && intent.CreatedAt.Before(cutoff) {
			matched = append(matched, intent)
		}
	}
	return matched, nil
}

func (s *stubIntentStore) UpdateIntentStatus(ctx context.Context, id uuid.UUID, status enums.PaymentIntentStatus) error {
	if s.updated == nil {
		s.updated = map[uuid.UUID]enums.PaymentIntentStatus{}
	}
	s.updated[id] = status
	return nil
}

func TestIntentExpiryJobFailsAbandonedIntents(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	abandonedID := uuid.New()
	store := &stubIntentStore{intents: []models.PaymentIntent{
		{ID: abandonedID, Status: enums.PaymentIntentStatusRequiresPayment, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: uuid.New(), Status: enums.PaymentIntentStatusRequiresPayment, CreatedAt: now.Add(-5 * time.Minute)},
		{ID: uuid.New(), Status: enums.PaymentIntentStatusSucceeded, CreatedAt: now.Add(-2 * time.Hour)},
	}}

	job, err := NewIntentExpiryJob(IntentExpiryJobParams{
		Logger: logger.New(logger.Options{ServiceName: "cron-test"}),
		Repo:   store,
		MaxAge: time.Hour,
		Now:    func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(store.updated) != 1 {
		t.Fatalf("expected 1 intent updated, got %d", len(store.updated))
	}
	if store.updated[abandonedID] != enums.PaymentIntentStatusFailed {
		t.Fatalf("expected abandoned intent marked failed, got %v", store.updated[abandonedID])
	}
}
