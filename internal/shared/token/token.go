// Package token issues and parses the HS256 JWTs used for API sessions.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

var (
	ErrInvalid   = errors.New("invalid token")
	ErrExpired   = errors.New("token expired")
	ErrWrongKind = errors.New("wrong token kind")
)

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Kind   Kind   `json:"kind"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

type Option func(*Manager)

func WithTTL(access, refresh time.Duration) Option {
	return func(m *Manager) {
		if access > 0 {
			m.accessTTL = access
		}
		if refresh > 0 {
			m.refreshTTL = refresh
		}
	}
}

// WithClock replaces time.Now for issuing and validating.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func NewManager(secret string, opts ...Option) *Manager {
	m := &Manager{
		secret:     []byte(secret),
		accessTTL:  DefaultAccessTTL,
		refreshTTL: DefaultRefreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

// Issue signs a token of the given kind for userID.
func (m *Manager) Issue(userID, role string, kind Kind) (string, error) {
	ttl := m.accessTTL
	if kind == KindRefresh {
		ttl = m.refreshTTL
	}
	now := m.now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates signature, expiry and kind.
func (m *Manager) Parse(tokenString string, kind Kind) (Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalid
	}
	if !tok.Valid || claims.UserID == "" {
		return Claims{}, ErrInvalid
	}
	if claims.Kind != kind {
		return Claims{}, ErrWrongKind
	}
	return claims, nil
}
