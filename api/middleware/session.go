package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/avelarq/tableside-backend/api/responses"
	"github.com/avelarq/tableside-backend/internal/tables"
	pkgerrors "github.com/avelarq/tableside-backend/pkg/errors"
	"github.com/avelarq/tableside-backend/pkg/logger"
)

// SessionValidator exposes the token check needed by the middleware.
type SessionValidator interface {
	ValidateToken(ctx context.Context, token string) (*tables.SessionRecord, error)
}

// TableSession validates a bearer session token and seeds the request
// context with the session and table identifiers.
func TableSession(validator SessionValidator, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session token"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session token"))
				return
			}

			record, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithSession(r.Context(), record.SessionID, record.TableID, record.TableCode)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"session_id": record.SessionID,
					"table_id":   record.TableID,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
