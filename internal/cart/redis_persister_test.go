package cart

import (
	"testing"
	"time"
)

func TestRedisPersisterKeyUsesConfiguredPrefix(t *testing.T) {
	p := NewRedisPersister(nil, "acme:carts", time.Minute)
	if got := p.key("sess-1"); got != "acme:carts:sess-1" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestRedisPersisterKeyDefaultsPrefix(t *testing.T) {
	p := NewRedisPersister(nil, "", time.Minute)
	if got := p.key("sess-1"); got != "tableside:cart:sess-1" {
		t.Fatalf("unexpected key %q", got)
	}
}
