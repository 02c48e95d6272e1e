package utils

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"CityGeneral/models"
)

// TokenKind discriminates access tokens from refresh tokens. Verification is
// always parameterized by the expected kind; a token of the wrong kind is
// rejected no matter how valid its signature is.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// ErrInvalidToken is the single outcome for every verification failure.
// Callers must not be able to tell a bad signature from an expired token or a
// kind mismatch; the distinction only goes to the log.
var ErrInvalidToken = errors.New("invalid credentials")

// TokenClaims is the verified content of a token.
type TokenClaims struct {
	Username  string
	UserID    int64
	Role      models.Role
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenMaker issues and verifies HS256 signed tokens. The secret and the
// clock are fixed at construction.
type TokenMaker struct {
	secret []byte
	now    func() time.Time
}

// NewTokenMaker builds a TokenMaker. A nil clock falls back to time.Now.
func NewTokenMaker(secret string, now func() time.Time) (*TokenMaker, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("token secret must be at least 32 bytes, got %d", len(secret))
	}
	if now == nil {
		now = time.Now
	}
	return &TokenMaker{secret: []byte(secret), now: now}, nil
}

// Issue signs a token of the given kind for the user. A signing failure is a
// server-side error, never a client one.
func (m *TokenMaker) Issue(user *models.User, kind TokenKind, ttl time.Duration) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     user.Username,
		"user_id": user.ID,
		"role":    string(user.Role),
		"type":    string(kind),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify checks the signature, the expiry, the kind and the required identity
// claims, in that order. Any failure collapses to ErrInvalidToken.
func (m *TokenMaker) Verify(tokenString string, expected TokenKind) (*TokenClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	token, err := parser.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		log.Printf("token verification failed: %v", err)
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		log.Printf("token verification failed: unexpected claims type %T", token.Claims)
		return nil, ErrInvalidToken
	}

	kind, _ := claims["type"].(string)
	if TokenKind(kind) != expected {
		log.Printf("token verification failed: kind %q, expected %q", kind, expected)
		return nil, ErrInvalidToken
	}

	username, _ := claims["sub"].(string)
	userID, hasID := claims["user_id"].(float64)
	if username == "" || !hasID {
		log.Printf("token verification failed: missing identity claims")
		return nil, ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	out := &TokenClaims{
		Username: username,
		UserID:   int64(userID),
		Role:     models.Role(role),
		Kind:     expected,
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
