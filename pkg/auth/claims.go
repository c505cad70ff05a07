package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTokenPayload captures the data available when minting a table
// session JWT.
type SessionTokenPayload struct {
	SessionID uuid.UUID
	TableID   uuid.UUID
	TableCode string
}

// SessionTokenClaims represents the typed JWT handed to a guest after
// scanning a table QR code.
type SessionTokenClaims struct {
	SessionID uuid.UUID `json:"session_id"`
	TableID   uuid.UUID `json:"table_id"`
	TableCode string    `json:"table_code"`
	jwt.RegisteredClaims
}
