package utils

import (
	"testing"
	"time"
)

func TestNewSessionToken(t *testing.T) {
	a := NewSessionToken(24)
	b := NewSessionToken(24)

	if a.Token == "" || a.Token == b.Token {
		t.Errorf("tokens must be non-empty and unique, got %q and %q", a.Token, b.Token)
	}

	ttl := time.Until(a.Exp)
	if ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Errorf("expiry %v not ~24h out", ttl)
	}
}

func TestNewTempTokenUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok := NewTempToken()
		if tok == "" || seen[tok] {
			t.Fatalf("temp token %q empty or repeated", tok)
		}
		seen[tok] = true
	}
}
