package service

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var issuedAt = time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueThenVerify(t *testing.T) {
	svc := NewTokenService("dev-secret").WithClock(fixedClock(issuedAt))

	token, err := svc.Issue("0b6f1f2e-9a51-4c1e-8d43-3c1a2b4d5e6f")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != "0b6f1f2e-9a51-4c1e-8d43-3c1a2b4d5e6f" {
		t.Fatalf("subject=%q", got)
	}
}

func TestIssue_Claims(t *testing.T) {
	svc := NewTokenService("dev-secret").WithClock(fixedClock(issuedAt))

	token, err := svc.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		t.Fatalf("ParseUnverified: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("sub=%q", claims.Subject)
	}
	if claims.IssuedAt == nil || !claims.IssuedAt.Time.Equal(issuedAt) {
		t.Fatalf("iat=%v", claims.IssuedAt)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.Equal(issuedAt.Add(24*time.Hour)) {
		t.Fatalf("exp=%v", claims.ExpiresAt)
	}
}

func TestVerify_Expiry(t *testing.T) {
	issuer := NewTokenService("dev-secret").WithClock(fixedClock(issuedAt))
	token, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	justBefore := issuer.WithClock(fixedClock(issuedAt.Add(TokenTTL - time.Second)))
	if _, err := justBefore.Verify(token); err != nil {
		t.Fatalf("expected token valid one second before expiry, got %v", err)
	}

	atExpiry := issuer.WithClock(fixedClock(issuedAt.Add(TokenTTL)))
	if _, err := atExpiry.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("at expiry: expected ErrTokenExpired, got %v", err)
	}

	later := issuer.WithClock(fixedClock(issuedAt.Add(48 * time.Hour)))
	if _, err := later.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("after expiry: expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	svc := NewTokenService("dev-secret").WithClock(fixedClock(issuedAt))
	token, err := svc.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape %q", token)
	}
	forged := `{"sub":"user-2","exp":` + itoa(issuedAt.Add(TokenTTL).Unix()) + `}`
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	if _, err := svc.Verify(strings.Join(parts, ".")); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewTokenService("other-secret").WithClock(fixedClock(issuedAt)).Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	svc := NewTokenService("dev-secret").WithClock(fixedClock(issuedAt))
	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	svc := NewTokenService("dev-secret").WithClock(fixedClock(issuedAt))

	for _, token := range []string{"", "not-a-token", "a.b.c", "a.b"} {
		if _, err := svc.Verify(token); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("Verify(%q): expected ErrTokenInvalid, got %v", token, err)
		}
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("dev-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	svc := NewTokenService("dev-secret").WithClock(fixedClock(issuedAt))
	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_RequiredClaims(t *testing.T) {
	svc := NewTokenService("dev-secret").WithClock(fixedClock(issuedAt))

	noSubject := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour))}
	noExpiry := jwt.RegisteredClaims{Subject: "user-1"}

	for name, claims := range map[string]jwt.RegisteredClaims{"no sub": noSubject, "no exp": noExpiry} {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("dev-secret"))
		if err != nil {
			t.Fatalf("%s: sign: %v", name, err)
		}
		if _, err := svc.Verify(token); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("%s: expected ErrTokenInvalid, got %v", name, err)
		}
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
