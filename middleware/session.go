package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodieride-api/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidSession = errors.New("invalid or expired session")
	ErrSessionRevoked = errors.New("session has been logged out")
)

// Claims carried by a session token. Role is empty once a role gate has
// rejected the session.
type Claims struct {
	UserID uint            `json:"user_id"`
	Role   models.UserRole `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Session is the identity resolved from a token.
type Session struct {
	ID        string
	UserID    uint
	Role      models.UserRole
	ExpiresAt time.Time
}

type SessionManager struct {
	secret  []byte
	ttl     time.Duration
	revoked RevocationStore
	now     func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration, revoked RevocationStore) *SessionManager {
	if revoked == nil {
		revoked = NewMemoryRevocations()
	}
	return &SessionManager{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: revoked,
		now:     time.Now,
	}
}

// TTL is the lifetime of newly issued tokens.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Issue starts a new session for user and returns its signed token.
func (m *SessionManager) Issue(user *models.User) (string, *Session, error) {
	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: now.Add(m.ttl),
	}
	token, err := m.sign(s, now)
	if err != nil {
		return "", nil, err
	}
	return token, s, nil
}

// ClearRole revokes s and re-issues it under a fresh session id without a
// role. The user id and expiry are kept.
func (m *SessionManager) ClearRole(ctx context.Context, s *Session) (string, error) {
	if err := m.Revoke(ctx, s); err != nil {
		return "", err
	}
	s.ID = uuid.NewString()
	s.Role = ""
	return m.sign(s, m.now())
}

func (m *SessionManager) sign(s *Session, issuedAt time.Time) (string, error) {
	claims := Claims{
		UserID: s.UserID,
		Role:   s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and resolves it to a live session.
func (m *SessionManager) Parse(ctx context.Context, tokenStr string) (*Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.ID == "" || (claims.Role != "" && !claims.Role.Valid()) {
		return nil, ErrInvalidSession
	}

	revoked, err := m.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check session revocation: %w", err)
	}
	if revoked {
		return nil, ErrSessionRevoked
	}

	return &Session{
		ID:        claims.ID,
		UserID:    claims.UserID,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke makes the session unusable until it would have expired anyway.
func (m *SessionManager) Revoke(ctx context.Context, s *Session) error {
	ttl := s.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	return m.revoked.Revoke(ctx, s.ID, ttl)
}
