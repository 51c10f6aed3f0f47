package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"foodieride-api/config"
	"foodieride-api/events"
	"foodieride-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(config.DBConfig{Path: filepath.Join(t.TempDir(), "delivery.db"), Reset: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, username string, role models.UserRole, phone string) *models.User {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	u := &models.User{Username: username, PasswordHash: string(hash), Role: role, Phone: phone}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []events.OrderAccepted
	err  error
}

func (p *recordingPublisher) PublishOrderAccepted(_ context.Context, msg events.OrderAccepted) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }
