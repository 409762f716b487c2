package jwtauth

import (
	"context"
	"errors"
	"strings"
	"time"

	"vetclinic/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
)

// tokenClaims es el payload firmado: email como subject, rol y
// (opcional) el id de cliente asociado.
type tokenClaims struct {
	Role     string `json:"role"`
	ClientID string `json:"client_id,omitempty"`
	jwt.RegisteredClaims
}

// JWT firma y verifica tokens HS256 con un secreto compartido.
// Implementa auth.TokenIssuer y auth.AuthVerifier.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string, ttl time.Duration) *JWT {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWT{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (j *JWT) Issue(c auth.Claims) (string, error) {
	if strings.TrimSpace(c.Email) == "" {
		return "", errors.New("jwtauth: email required")
	}

	now := j.now()
	claims := tokenClaims{
		Role:     string(c.Role),
		ClientID: c.ClientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(j.secret)
}

func (j *JWT) Verify(_ context.Context, token string) (auth.Claims, error) {
	var claims tokenClaims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return j.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return j.now() }))
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		Email:    claims.Subject,
		Role:     auth.Role(claims.Role),
		ClientID: claims.ClientID,
	}, nil
}
