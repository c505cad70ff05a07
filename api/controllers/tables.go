package controllers

import (
	"net/http"

	"github.com/avelarq/tableside-backend/api/middleware"
	"github.com/avelarq/tableside-backend/api/responses"
	"github.com/avelarq/tableside-backend/api/validators"
	tablesvc "github.com/avelarq/tableside-backend/internal/tables"
	pkgerrors "github.com/avelarq/tableside-backend/pkg/errors"
	"github.com/avelarq/tableside-backend/pkg/logger"
)

// StartTableSession exchanges a scanned table code for a session token.
// This is the only unauthenticated ordering endpoint.
func StartTableSession(svc tablesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tables service unavailable"))
			return
		}

		var payload startSessionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.StartSession(r.Context(), validators.SanitizeString(payload.TableCode, 32))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}

type startSessionRequest struct {
	TableCode string `json:"table_code" validate:"required,min=1,max=32"`
}

// EndTableSession revokes the caller's own session and frees the table.
func EndTableSession(svc tablesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tables service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session context missing"))
			return
		}

		if err := svc.EndSession(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ended"})
	}
}

// ListTables returns every dining table with its occupancy status.
func ListTables(svc tablesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tables service unavailable"))
			return
		}

		tables, err := svc.ListTables(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tables)
	}
}
