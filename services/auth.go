package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodieride-api/logger"
	"foodieride-api/metrics"
	"foodieride-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Credentials is what the login form submits. Next is the page the caller
// wants to reach; it decides the role of a new account.
type Credentials struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Next     string
}

func (c Credentials) loginKey() string {
	if c.Email != "" {
		return c.Email
	}
	return c.Phone
}

type AuthService struct {
	db         *gorm.DB
	bcryptCost int
}

func NewAuthService(db *gorm.DB, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{db: db, bcryptCost: bcryptCost}
}

// Authenticate logs in an existing user or signs up a new one.
//
// A user matches when its username equals the email (or, failing that, the
// phone) and the password verifies. Without a match, a new user is created if
// any of name, email or phone was given; created reports that case.
func (s *AuthService) Authenticate(ctx context.Context, cred Credentials) (user *models.User, created bool, err error) {
	cred.Name = strings.TrimSpace(cred.Name)
	cred.Email = strings.TrimSpace(cred.Email)
	cred.Phone = strings.TrimSpace(cred.Phone)

	key := cred.loginKey()
	if key == "" || cred.Password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return nil, false, fmt.Errorf("%w: email/phone and password", ErrMissingField)
	}

	user, err = s.findByCredentials(ctx, key, cred.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, false, err
	}
	if user != nil {
		metrics.LoginsTotal.WithLabelValues("login").Inc()
		logger.Get().Debug().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("login successful")
		return user, false, nil
	}

	if cred.Name == "" && cred.Email == "" && cred.Phone == "" {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return nil, false, ErrInvalidCredentials
	}

	user, err = s.signup(ctx, cred)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, false, err
	}
	metrics.LoginsTotal.WithLabelValues("signup").Inc()
	logger.Get().Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("new user created")
	return user, true, nil
}

func (s *AuthService) findByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	var candidates []models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).Order("id").Find(&candidates).Error; err != nil {
		logger.Get().Error().Err(err).Msg("database error in login")
		return nil, fmt.Errorf("find user: %w: %w", ErrStoreFailure, err)
	}
	for i := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(candidates[i].PasswordHash), []byte(password)) == nil {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

func (s *AuthService) signup(ctx context.Context, cred Credentials) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cred.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	username := cred.Name
	if username == "" {
		username = cred.loginKey()
	}
	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleForPage(cred.Next),
		Phone:        cred.Phone,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&user).Error
	})
	if err != nil {
		logger.Get().Error().Err(err).Msg("database error in signup")
		return nil, fmt.Errorf("create user: %w: %w", ErrStoreFailure, err)
	}
	return &user, nil
}

// Username looks up the display name of a user.
func (s *AuthService) Username(ctx context.Context, userID uint) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("username").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUnauthenticated
		}
		logger.Get().Error().Err(err).Uint("user_id", userID).Msg("database error loading user")
		return "", fmt.Errorf("load user: %w: %w", ErrStoreFailure, err)
	}
	return user.Username, nil
}
