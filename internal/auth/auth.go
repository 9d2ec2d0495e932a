// Package auth backs the login, signup and password-reset screens. It
// is a boundary collaborator: the booking API itself stays open and at
// most forwards the bearer token this service issues.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"frontdesk/internal/config"
	"frontdesk/internal/domain"
	"frontdesk/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists")
)

type user struct {
	Email        string
	Name         string
	Role         string
	PasswordHash string
}

// Service holds the demo user registry in memory and issues tokens.
type Service struct {
	cfg      config.AuthConfig
	sessions domain.SessionRepository
	logger   *zerolog.Logger
	now      func() time.Time

	mu    sync.RWMutex
	users map[string]user
}

func NewService(cfg config.AuthConfig, sessions domain.SessionRepository, logger *zerolog.Logger) *Service {
	return &Service{
		cfg:      cfg,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
		users:    make(map[string]user),
	}
}

// Result is what a successful register or login returns.
type Result struct {
	Profile models.UserProfile
	Token   string
	Expires time.Time
}

// Register creates an account and signs the caller in.
func (s *Service) Register(ctx context.Context, email, name, password string) (Result, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Result{}, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	if _, exists := s.users[email]; exists {
		s.mu.Unlock()
		return Result{}, ErrUserExists
	}
	u := user{Email: email, Name: name, Role: "staff", PasswordHash: string(hash)}
	s.users[email] = u
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info().Str("email", email).Msg("user registered")
	}
	return s.signIn(ctx, u)
}

// Login verifies credentials and returns a fresh bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (Result, error) {
	email = normalizeEmail(email)

	s.mu.RLock()
	u, ok := s.users[email]
	s.mu.RUnlock()
	if !ok {
		return Result{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Result{}, ErrInvalidCredentials
	}

	return s.signIn(ctx, u)
}

// ForgotPassword issues a TTL'd reset token for the account. The token
// id is returned regardless of whether the account exists, so the
// endpoint does not leak which emails are registered.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	tokenID := uuid.NewString()

	s.mu.RLock()
	_, known := s.users[email]
	s.mu.RUnlock()

	if known {
		session := &models.Session{
			ID:        tokenID,
			Email:     email,
			Kind:      "reset",
			ExpiresAt: s.now().Add(time.Hour),
		}
		if err := s.sessions.Set(ctx, session); err != nil {
			return "", err
		}
	}

	if s.logger != nil {
		s.logger.Info().Str("email", email).Bool("known", known).Msg("password reset requested")
	}
	return tokenID, nil
}

// ResetPassword consumes a reset token and installs a new password.
func (s *Service) ResetPassword(ctx context.Context, tokenID, password string) error {
	session, err := s.sessions.Get(ctx, tokenID)
	if err != nil {
		return err
	}
	if session == nil || session.Kind != "reset" {
		return ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	u, ok := s.users[session.Email]
	if ok {
		u.PasswordHash = string(hash)
		s.users[session.Email] = u
	}
	s.mu.Unlock()
	if !ok {
		return ErrInvalidToken
	}

	return s.sessions.Delete(ctx, tokenID)
}

// ValidateToken parses a bearer token back into a profile.
func (s *Service) ValidateToken(raw string) (models.UserProfile, error) {
	return ParseAccessToken(s.cfg.JWTSecret, raw)
}

func (s *Service) signIn(ctx context.Context, u user) (Result, error) {
	profile := models.UserProfile{Email: u.Email, Name: u.Name, Role: u.Role}
	ttl := time.Duration(s.cfg.AccessTTLMinutes) * time.Minute

	token, exp, err := NewAccessToken(s.cfg.JWTSecret, profile, ttl, s.now())
	if err != nil {
		return Result{}, err
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		Email:     u.Email,
		Kind:      "session",
		ExpiresAt: exp,
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return Result{}, err
	}

	return Result{Profile: profile, Token: token, Expires: exp}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
