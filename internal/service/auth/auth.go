package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mamadbah2/farmdesk/internal/config"
	"github.com/mamadbah2/farmdesk/internal/domain/models"
)

// Errors surfaced to the HTTP layer.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid session token")
)

// UserStore defines the account operations the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user models.User) (string, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	SetPushToken(ctx context.Context, id string, token string) error
}

// Service implements registration, login and session token validation.
// Session tokens are HS256 JWTs with the user id as subject.
type Service struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires an auth service instance.
func NewService(users UserStore, cfg config.AuthConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		users:  users,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		logger: logger,
		now:    time.Now,
	}
}

// Register creates an account and returns the new user id.
func (s *Service) Register(ctx context.Context, email, password, name string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < 8 {
		return "", fmt.Errorf("%w: password must be at least 8 characters", models.ErrInvalidDocument)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.Create(ctx, models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("user registered", zap.String("user_id", id))
	return id, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID.Hex())
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Me returns the account behind a validated session.
func (s *Service) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

// SetPushToken registers the caller's device token for push mirroring.
func (s *Service) SetPushToken(ctx context.Context, userID, token string) error {
	return s.users.SetPushToken(ctx, userID, token)
}

// IssueToken signs a session JWT for the user.
func (s *Service) IssueToken(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    "farmdesk",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// ParseToken validates a session JWT and returns the user id it carries.
func (s *Service) ParseToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
