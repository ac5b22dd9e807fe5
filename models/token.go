package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType distinguishes short-lived access tokens from long-lived refresh
// tokens. It is carried in the "token_type" claim.
type TokenType string

const (
	AccessTokenType  TokenType = "access"
	RefreshTokenType TokenType = "refresh"
)

// Claims is the JWT claim set issued by the server: the RFC 7519 registered
// claims plus the token type.
type Claims struct {
	jwt.RegisteredClaims

	TokenType TokenType `json:"token_type"`
}

// Token wraps a signed JWT with convenience accessors for authentication flows.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted to the client.
//
// UserID is a cached, parsed copy of the "sub" claim.
type Token struct {
	Claims

	SignedString string `json:"-"`
	UserID       int64  `json:"-"`
}

// GetUserID extracts the user identifier from the token's "sub" claim and
// parses it as a base-10 int64.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// Expiry returns the "exp" claim or the zero time when it is absent.
func (t *Token) Expiry() time.Time {
	if t.ExpiresAt == nil {
		return time.Time{}
	}
	return t.ExpiresAt.Time
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// TokenPair is the access + refresh couple issued at login and on refresh.
type TokenPair struct {
	Access  Token
	Refresh Token
}

// BlacklistedToken is a refresh token that can no longer be used.
type BlacklistedToken struct {
	JTI       string
	UserID    int64
	ExpiresAt time.Time
}
