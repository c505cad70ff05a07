package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/avelarq/tableside-backend/pkg/config"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		JWTSecret:  "test-secret",
		JWTIssuer:  "tableside-test",
		SessionTTL: time.Hour,
	}
}

func testPayload() SessionTokenPayload {
	return SessionTokenPayload{
		SessionID: uuid.New(),
		TableID:   uuid.New(),
		TableCode: "T12",
	}
}

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := testSessionConfig()
	payload := testPayload()
	now := time.Now()

	signed, err := MintSessionToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected a signed token")
	}

	claims, err := ParseSessionToken(cfg, signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.SessionID != payload.SessionID {
		t.Fatalf("expected session id %s, got %s", payload.SessionID, claims.SessionID)
	}
	if claims.TableID != payload.TableID {
		t.Fatalf("expected table id %s, got %s", payload.TableID, claims.TableID)
	}
	if claims.TableCode != "T12" {
		t.Fatalf("expected table code T12, got %q", claims.TableCode)
	}
	if claims.ID != payload.SessionID.String() {
		t.Fatalf("expected jti to equal session id")
	}
}

func TestMintSessionToken_Validation(t *testing.T) {
	now := time.Now()

	cfg := testSessionConfig()
	cfg.JWTSecret = ""
	if _, err := MintSessionToken(cfg, now, testPayload()); err == nil {
		t.Fatalf("expected error for missing secret")
	}

	cfg = testSessionConfig()
	cfg.SessionTTL = 0
	if _, err := MintSessionToken(cfg, now, testPayload()); err == nil {
		t.Fatalf("expected error for zero ttl")
	}

	payload := testPayload()
	payload.TableID = uuid.Nil
	if _, err := MintSessionToken(testSessionConfig(), now, payload); err == nil {
		t.Fatalf("expected error for missing table id")
	}
}

func TestParseSessionToken_RejectsExpired(t *testing.T) {
	cfg := testSessionConfig()
	signed, err := MintSessionToken(cfg, time.Now().Add(-2*time.Hour), testPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = ParseSessionToken(cfg, signed)
	if err == nil || !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expiry error, got %v", err)
	}
}

func TestParseSessionToken_RejectsWrongSecret(t *testing.T) {
	cfg := testSessionConfig()
	signed, err := MintSessionToken(cfg, time.Now(), testPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wrong := cfg
	wrong.JWTSecret = "other-secret"
	if _, err := ParseSessionToken(wrong, signed); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestParseSessionToken_RejectsWrongIssuer(t *testing.T) {
	cfg := testSessionConfig()
	signed, err := MintSessionToken(cfg, time.Now(), testPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := cfg
	other.JWTIssuer = "someone-else"
	if _, err := ParseSessionToken(other, signed); err == nil {
		t.Fatalf("expected issuer error")
	}
}
