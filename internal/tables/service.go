package tables

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avelarq/tableside-backend/pkg/auth"
	"github.com/avelarq/tableside-backend/pkg/config"
	"github.com/avelarq/tableside-backend/pkg/db/models"
	"github.com/avelarq/tableside-backend/pkg/enums"
	pkgerrors "github.com/avelarq/tableside-backend/pkg/errors"
)

// Table is the client-facing view of a dining table.
type Table struct {
	ID       string            `json:"id"`
	Code     string            `json:"code"`
	Status   enums.TableStatus `json:"status"`
	Capacity int               `json:"capacity"`
}

// Session pairs a signed token with the table it grants access to.
type Session struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	Table     Table     `json:"table"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service defines table session lifecycle operations.
type Service interface {
	StartSession(ctx context.Context, tableCode string) (*Session, error)
	ValidateToken(ctx context.Context, token string) (*SessionRecord, error)
	EndSession(ctx context.Context, sessionID string) error
	ListTables(ctx context.Context) ([]Table, error)
}

type service struct {
	repo     Repository
	sessions SessionStore
	cfg      config.SessionConfig
	now      func() time.Time
}

// ServiceParams wires the tables service dependencies.
type ServiceParams struct {
	Repo     Repository
	Sessions SessionStore
	Config   config.SessionConfig
	Now      func() time.Time
}

// NewService builds a tables service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("tables repository required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if params.Config.JWTSecret == "" {
		return nil, fmt.Errorf("session jwt secret required")
	}
	svc := &service{
		repo:     params.Repo,
		sessions: params.Sessions,
		cfg:      params.Config,
		now:      params.Now,
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc, nil
}

// StartSession exchanges a scanned table code for a signed session token
// and marks the table occupied.
func (s *service) StartSession(ctx context.Context, tableCode string) (*Session, error) {
	code := strings.TrimSpace(tableCode)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "table code is required")
	}

	table, err := s.repo.FindTableByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sessionID := uuid.New()
	token, err := auth.MintSessionToken(s.cfg, now, auth.SessionTokenPayload{
		SessionID: sessionID,
		TableID:   table.ID,
		TableCode: table.Code,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting session token")
	}

	record := SessionRecord{
		SessionID: sessionID.String(),
		TableID:   table.ID.String(),
		TableCode: table.Code,
		StartedAt: now,
	}
	if err := s.sessions.Save(ctx, record, s.cfg.SessionTTL); err != nil {
		return nil, err
	}

	if table.Status != enums.TableStatusOccupied {
		if err := s.repo.UpdateTableStatus(ctx, table.ID, enums.TableStatusOccupied); err != nil {
			return nil, err
		}
		table.Status = enums.TableStatusOccupied
	}

	return &Session{
		SessionID: record.SessionID,
		Token:     token,
		Table:     tableFromModel(table),
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}, nil
}

// ValidateToken checks the JWT signature and that the session is still
// active server-side. Revoked sessions fail even with a valid signature.
func (s *service) ValidateToken(ctx context.Context, token string) (*SessionRecord, error) {
	claims, err := auth.ParseSessionToken(s.cfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid session token")
	}

	record, err := s.sessions.Load(ctx, claims.SessionID.String())
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session is no longer active")
	}
	return record, nil
}

// EndSession revokes the session and frees the table.
func (s *service) EndSession(ctx context.Context, sessionID string) error {
	record, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	if record == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}

	tableID, err := uuid.Parse(record.TableID)
	if err != nil {
		return nil
	}
	return s.repo.UpdateTableStatus(ctx, tableID, enums.TableStatusAvailable)
}

func (s *service) ListTables(ctx context.Context) ([]Table, error) {
	records, err := s.repo.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Table, 0, len(records))
	for i := range records {
		out = append(out, tableFromModel(&records[i]))
	}
	return out, nil
}

func tableFromModel(record *models.DiningTable) Table {
	return Table{
		ID:       record.ID.String(),
		Code:     record.Code,
		Status:   record.Status,
		Capacity: record.Capacity,
	}
}
