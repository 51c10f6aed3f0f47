package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodieride-api/models"
)

func TestSessionManager_IssueAndParse(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, nil)
	token, issued, err := m.Issue(&models.User{ID: 3, Role: models.RoleRider})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	s, err := m.Parse(context.Background(), token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.ID != issued.ID || s.UserID != 3 || s.Role != models.RoleRider {
		t.Fatalf("unexpected session %+v", s)
	}
}

func TestSessionManager_Expired(t *testing.T) {
	m := NewSessionManager("secret", time.Minute, nil)
	start := time.Now()
	m.now = func() time.Time { return start }
	token, _, _ := m.Issue(&models.User{ID: 1, Role: models.RoleCustomer})

	m.now = func() time.Time { return start.Add(2 * time.Minute) }
	if _, err := m.Parse(context.Background(), token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for expired token, got %v", err)
	}
}

func TestSessionManager_RevokeLogsOut(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, NewMemoryRevocations())
	token, s, _ := m.Issue(&models.User{ID: 1, Role: models.RoleCustomer})

	if err := m.Revoke(context.Background(), s); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := m.Parse(context.Background(), token); !errors.Is(err, ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}
}

func TestSessionManager_ClearRoleRevokesOldToken(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, NewMemoryRevocations())
	token, s, _ := m.Issue(&models.User{ID: 4, Role: models.RoleCaptain})
	oldID := s.ID

	cleared, err := m.ClearRole(context.Background(), s)
	if err != nil {
		t.Fatalf("clear role: %v", err)
	}
	if _, err := m.Parse(context.Background(), token); !errors.Is(err, ErrSessionRevoked) {
		t.Fatalf("expected old token to be revoked, got %v", err)
	}
	got, err := m.Parse(context.Background(), cleared)
	if err != nil {
		t.Fatalf("parse cleared: %v", err)
	}
	if got.Role != "" || got.UserID != 4 || got.ID == oldID {
		t.Fatalf("unexpected cleared session %+v", got)
	}
}

func TestSessionManager_ClearRoleFailsWhenRevokeFails(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, failingRevocations{})
	_, s, _ := m.Issue(&models.User{ID: 4, Role: models.RoleCaptain})

	if _, err := m.ClearRole(context.Background(), s); err == nil {
		t.Fatalf("expected revoke error to surface")
	}
}

type failingRevocations struct{}

func (failingRevocations) Revoke(context.Context, string, time.Duration) error {
	return errors.New("store down")
}

func (failingRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("store down")
}

func TestSessionManager_RejectsGarbage(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, nil)
	if _, err := m.Parse(context.Background(), "not-a-jwt"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestMemoryRevocations_Expire(t *testing.T) {
	r := NewMemoryRevocations()
	now := time.Now()
	r.now = func() time.Time { return now }

	_ = r.Revoke(context.Background(), "a", time.Minute)
	if ok, _ := r.IsRevoked(context.Background(), "a"); !ok {
		t.Fatalf("expected a to be revoked")
	}
	if ok, _ := r.IsRevoked(context.Background(), "b"); ok {
		t.Fatalf("b was never revoked")
	}

	now = now.Add(2 * time.Minute)
	if ok, _ := r.IsRevoked(context.Background(), "a"); ok {
		t.Fatalf("revocation of a should have lapsed")
	}
	_ = r.Revoke(context.Background(), "c", time.Minute)
	if _, stale := r.entries["a"]; stale {
		t.Fatalf("expected lapsed entry to be swept")
	}
}
