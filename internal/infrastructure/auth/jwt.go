// Package auth resolves marketplace actors from bearer tokens. Login and
// credential management live in the identity service; this package only
// verifies what it issued.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/printmarket/backend/internal/domain/shared"
	"github.com/printmarket/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrUnknownRole      = errors.New("unknown actor role in claims")
)

// Claims are the custom JWT claims issued by the identity service. Subject
// carries the actor ID; Role carries the marketplace role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenVerifier validates bearer tokens and resolves the acting party
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier creates a new TokenVerifier
func NewTokenVerifier(cfg config.JWTConfig) *TokenVerifier {
	return &TokenVerifier{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}
}

// ResolveActor validates the token and returns the actor it identifies
func (v *TokenVerifier) ResolveActor(tokenString string) (shared.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return shared.Actor{}, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return shared.Actor{}, ErrTokenNotYetValid
		}
		return shared.Actor{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return shared.Actor{}, ErrInvalidClaims
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return shared.Actor{}, ErrInvalidClaims
	}

	actorID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return shared.Actor{}, ErrInvalidClaims
	}

	role := shared.ActorRole(claims.Role)
	if !role.IsValid() {
		return shared.Actor{}, ErrUnknownRole
	}

	return shared.NewActor(actorID, role), nil
}

// IssueToken signs a token for an actor. Used by tests and local tooling; in
// deployment tokens come from the identity service.
func (v *TokenVerifier) IssueToken(actor shared.Actor, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    v.issuer,
			Subject:   actor.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: actor.Role.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
