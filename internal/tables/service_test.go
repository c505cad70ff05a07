package tables

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/avelarq/tableside-backend/pkg/config"
	"github.com/avelarq/tableside-backend/pkg/db/models"
	"github.com/avelarq/tableside-backend/pkg/enums"
	pkgerrors "github.com/avelarq/tableside-backend/pkg/errors"
)

type stubTablesRepo struct {
	tables        map[uuid.UUID]*models.DiningTable
	statusUpdates []enums.TableStatus
}

func newStubTablesRepo(tables ...*models.DiningTable) *stubTablesRepo {
	repo := &stubTablesRepo{tables: make(map[uuid.UUID]*models.DiningTable)}
	for _, table := range tables {
		repo.tables[table.ID] = table
	}
	return repo
}

func (s *stubTablesRepo) FindTableByCode(_ context.Context, code string) (*models.DiningTable, error) {
	for _, table := range s.tables {
		if table.Code == code {
			clone := *table
			return &clone, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "table not found")
}

func (s *stubTablesRepo) FindTableByID(_ context.Context, id uuid.UUID) (*models.DiningTable, error) {
	table, ok := s.tables[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "table not found")
	}
	clone := *table
	return &clone, nil
}

func (s *stubTablesRepo) ListTables(_ context.Context) ([]models.DiningTable, error) {
	var out []models.DiningTable
	for _, table := range s.tables {
		out = append(out, *table)
	}
	return out, nil
}

func (s *stubTablesRepo) UpdateTableStatus(_ context.Context, id uuid.UUID, status enums.TableStatus) error {
	table, ok := s.tables[id]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "table not found")
	}
	table.Status = status
	s.statusUpdates = append(s.statusUpdates, status)
	return nil
}

func sessionTestConfig() config.SessionConfig {
	return config.SessionConfig{
		JWTSecret:  "test-secret",
		JWTIssuer:  "tableside-test",
		SessionTTL: time.Hour,
	}
}

func newTablesService(t *testing.T, repo Repository) (Service, *MemorySessionStore) {
	t.Helper()
	store := NewMemorySessionStore()
	svc, err := NewService(ServiceParams{Repo: repo, Sessions: store, Config: sessionTestConfig()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc, store
}

func availableTable(code string) *models.DiningTable {
	return &models.DiningTable{
		ID:       uuid.New(),
		Code:     code,
		Status:   enums.TableStatusAvailable,
		Capacity: 4,
	}
}

func TestStartSession(t *testing.T) {
	table := availableTable("T12")
	repo := newStubTablesRepo(table)
	svc, store := newTablesService(t, repo)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, " T12 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Token == "" {
		t.Fatalf("expected a signed token")
	}
	if session.Table.Code != "T12" {
		t.Fatalf("expected table code T12, got %q", session.Table.Code)
	}
	if session.Table.Status != enums.TableStatusOccupied {
		t.Fatalf("expected table marked occupied")
	}

	record, err := store.Load(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record == nil || record.TableID != table.ID.String() {
		t.Fatalf("expected stored session record bound to the table")
	}
}

func TestStartSession_UnknownCode(t *testing.T) {
	svc, _ := newTablesService(t, newStubTablesRepo())

	_, err := svc.StartSession(context.Background(), "T99")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = svc.StartSession(context.Background(), "  ")
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank code, got %v", err)
	}
}

func TestValidateToken(t *testing.T) {
	table := availableTable("T12")
	svc, _ := newTablesService(t, newStubTablesRepo(table))
	ctx := context.Background()

	session, err := svc.StartSession(ctx, "T12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record, err := svc.ValidateToken(ctx, session.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.SessionID != session.SessionID {
		t.Fatalf("expected matching session id")
	}

	if _, err := svc.ValidateToken(ctx, "garbage-token"); pkgerrors.As(err) == nil {
		t.Fatalf("expected typed error for malformed token, got %v", err)
	}
}

func TestValidateToken_RevokedSession(t *testing.T) {
	table := availableTable("T12")
	svc, _ := newTablesService(t, newStubTablesRepo(table))
	ctx := context.Background()

	session, err := svc.StartSession(ctx, "T12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.EndSession(ctx, session.SessionID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.ValidateToken(ctx, session.Token)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized after revocation, got %v", err)
	}
}

func TestEndSession_FreesTable(t *testing.T) {
	table := availableTable("T12")
	repo := newStubTablesRepo(table)
	svc, _ := newTablesService(t, repo)
	ctx := context.Background()

	session, err := svc.StartSession(ctx, "T12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.EndSession(ctx, session.SessionID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.tables[table.ID].Status != enums.TableStatusAvailable {
		t.Fatalf("expected table released, got %v", repo.tables[table.ID].Status)
	}

	err = svc.EndSession(ctx, session.SessionID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for ended session, got %v", err)
	}
}
