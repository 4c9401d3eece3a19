package repository

import (
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
)

// stringCapture is a sqlmock argument matcher that records the value.
type stringCapture struct{ dst *string }

func captureString(dst *string) stringCapture { return stringCapture{dst: dst} }

func (c stringCapture) Match(v driver.Value) bool {
	s, ok := v.(string)
	if ok {
		*c.dst = s
	}
	return ok
}

func TestSealer_RoundTrip(t *testing.T) {
	s := NewSealer("secret")
	sealed, err := s.Seal("tok123")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if !strings.HasPrefix(sealed, sealPrefix) {
		t.Fatalf("missing prefix: %q", sealed)
	}
	plain, err := s.Open(sealed)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if plain != "tok123" {
		t.Fatalf("Open: got %q", plain)
	}
}

func TestSealer_NonceDiffers(t *testing.T) {
	s := NewSealer("secret")
	a, _ := s.Seal("tok")
	b, _ := s.Seal("tok")
	if a == b {
		t.Fatal("two seals of the same value should differ")
	}
}

func TestSealer_WrongKey(t *testing.T) {
	sealed, _ := NewSealer("one").Seal("tok123")
	if _, err := NewSealer("two").Open(sealed); !errors.Is(err, ErrSealBroken) {
		t.Fatalf("expected ErrSealBroken, got %v", err)
	}
}

func TestSealer_NilPassThrough(t *testing.T) {
	var s *Sealer = NewSealer("")
	if s != nil {
		t.Fatal("empty secret should yield nil sealer")
	}
	v, err := s.Seal("tok")
	if err != nil || v != "tok" {
		t.Fatalf("nil Seal: %q %v", v, err)
	}
	v, err = s.Open("tok")
	if err != nil || v != "tok" {
		t.Fatalf("nil Open: %q %v", v, err)
	}
	if _, err := s.Open(sealPrefix + "abc"); !errors.Is(err, ErrSealBroken) {
		t.Fatalf("nil sealer must refuse sealed values, got %v", err)
	}
}

func TestSealer_OpenLegacyPlaintext(t *testing.T) {
	v, err := NewSealer("secret").Open("plain-token")
	if err != nil || v != "plain-token" {
		t.Fatalf("legacy value: %q %v", v, err)
	}
}
