package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	userID := int64(123)
	key := "secret-key"

	token, err := GenerateJWTToken(issuer, userID, models.AccessTokenType, time.Hour, key)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, token.Issuer)
	}
	if token.Subject != "123" {
		t.Errorf("expected subject '123', got %s", token.Subject)
	}
	if token.TokenType != models.AccessTokenType {
		t.Errorf("expected token type access, got %s", token.TokenType)
	}
	if token.ID == "" {
		t.Error("expected non-empty jti")
	}
	if token.UserID != userID {
		t.Errorf("expected user id %d, got %d", userID, token.UserID)
	}
}

func TestGenerateJWTToken_UniqueIDs(t *testing.T) {
	a, err := GenerateJWTToken("iss", 1, models.RefreshTokenType, time.Hour, "key")
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateJWTToken("iss", 1, models.RefreshTokenType, time.Hour, "key")
	if err != nil {
		t.Fatal(err)
	}

	if a.ID == b.ID {
		t.Error("expected different jti for tokens issued in the same second")
	}
	if a.SignedString == b.SignedString {
		t.Error("expected different signed strings")
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name      string
		issuer    string
		tokenType models.TokenType
		duration  time.Duration
		key       string
	}{
		{"empty issuer", "", models.AccessTokenType, time.Hour, "key"},
		{"zero duration", "iss", models.AccessTokenType, 0, "key"},
		{"negative duration", "iss", models.AccessTokenType, -time.Second, "key"},
		{"empty key", "iss", models.AccessTokenType, time.Hour, ""},
		{"empty type", "iss", "", time.Hour, "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, 1, tt.tokenType, tt.duration, tt.key)
			if !errors.Is(err, ErrInvalidTokenParams) {
				t.Errorf("expected ErrInvalidTokenParams, got %v", err)
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	generated, err := GenerateJWTToken("iss", 77, models.RefreshTokenType, time.Hour, "key")
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := ValidateAndParseJWTToken(generated.SignedString, "key", "iss", models.RefreshTokenType)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if parsed.UserID != 77 {
		t.Errorf("expected user id 77, got %d", parsed.UserID)
	}
	if parsed.ID != generated.ID {
		t.Errorf("expected jti %s, got %s", generated.ID, parsed.ID)
	}
	if parsed.Expiry().IsZero() {
		t.Error("expected non-zero expiry")
	}
}

func TestValidateAndParseJWTToken_Failures(t *testing.T) {
	valid, err := GenerateJWTToken("iss", 1, models.AccessTokenType, time.Hour, "key")
	if err != nil {
		t.Fatal(err)
	}

	expired := signClaims(t, models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "iss",
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		TokenType: models.AccessTokenType,
	}, "key")

	noExp := signClaims(t, models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "iss", Subject: "1"},
		TokenType:        models.AccessTokenType,
	}, "key")

	noSubject := signClaims(t, models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "iss",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		TokenType: models.AccessTokenType,
	}, "key")

	badSubject := signClaims(t, models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "iss",
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		TokenType: models.AccessTokenType,
	}, "key")

	tests := []struct {
		name      string
		token     string
		key       string
		issuer    string
		tokenType models.TokenType
		wantErr   error
	}{
		{name: "wrong key", token: valid.SignedString, key: "other", issuer: "iss", tokenType: models.AccessTokenType},
		{name: "wrong issuer", token: valid.SignedString, key: "key", issuer: "other", tokenType: models.AccessTokenType},
		{name: "wrong type", token: valid.SignedString, key: "key", issuer: "iss", tokenType: models.RefreshTokenType, wantErr: ErrWrongTokenType},
		{name: "garbage", token: "not.a.token", key: "key", issuer: "iss", tokenType: models.AccessTokenType},
		{name: "expired", token: expired, key: "key", issuer: "iss", tokenType: models.AccessTokenType},
		{name: "no expiry", token: noExp, key: "key", issuer: "iss", tokenType: models.AccessTokenType},
		{name: "no subject", token: noSubject, key: "key", issuer: "iss", tokenType: models.AccessTokenType, wantErr: ErrEmptySubject},
		{name: "non-numeric subject", token: badSubject, key: "key", issuer: "iss", tokenType: models.AccessTokenType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, tt.key, tt.issuer, tt.tokenType)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateAndParseJWTToken_RejectsNoneAlg(t *testing.T) {
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "iss",
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		TokenType: models.AccessTokenType,
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ValidateAndParseJWTToken(s, "key", "iss", models.AccessTokenType); err == nil {
		t.Fatal("expected unsigned token to be rejected")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{header: "bearer abc", want: "abc"},
		{header: "  Bearer   abc  ", want: "abc"},
		{header: "", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "Basic dXNlcjpwYXNz", wantErr: true},
		{header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAuthorization) {
					t.Errorf("expected ErrInvalidAuthorization, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseUnverifiedClaims(t *testing.T) {
	token, err := GenerateJWTToken("iss", 5, models.RefreshTokenType, time.Hour, "key")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseUnverifiedClaims(token.SignedString)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "5" || claims.TokenType != models.RefreshTokenType {
		t.Errorf("unexpected claims: %+v", claims)
	}

	if _, err := ParseUnverifiedClaims(strings.Repeat("x", 10)); err == nil {
		t.Error("expected error for malformed token")
	}
}

func signClaims(t *testing.T, claims models.Claims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		t.Fatal(err)
	}
	return s
}
