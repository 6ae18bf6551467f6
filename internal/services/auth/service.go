package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/memorymatch-go/internal/dependencies/clock"
	"github.com/mcoot/memorymatch-go/internal/model"
	"github.com/mcoot/memorymatch-go/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// accessCodeLength is the length of the generated access code
const accessCodeLength = 12

// Session represents an authenticated session
type Session struct {
	Token     string
	UserID    model.UserID
	User      model.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// RegisterResult is the outcome of a registration attempt
type RegisterResult struct {
	User *model.User
	// AccessCode is the plaintext generated code, present only when a new
	// account was created. It is never recoverable afterwards.
	AccessCode string
	// IsExisting is true when the email was already registered; the
	// existing account is returned and no code is issued
	IsExisting bool
}

// Service handles registration, login and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new AuthService
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		logger:          logger,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates a user account with a server-generated access code.
// Registering an email that already has an account returns the existing
// user instead of an error, so a returning visitor can recover their ID.
func (s *Service) Register(ctx context.Context, name, email, role, company string) (*RegisterResult, error) {
	existing, err := s.storage.GetUserByEmail(ctx, email)
	if err == nil {
		return &RegisterResult{User: existing, IsExisting: true}, nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	code := generateAccessCode()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &model.User{
		ID:        model.UserID(uuid.NewString()),
		Name:      name,
		Email:     email,
		Role:      role,
		Company:   company,
		CreatedAt: now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	cred := &model.Credential{
		UserID:         user.ID,
		Email:          email,
		AccessCodeHash: string(hash),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.storage.SaveCredential(ctx, cred); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", slog.String("user_id", string(user.ID)))

	return &RegisterResult{User: user, AccessCode: code}, nil
}

// Login authenticates a user by email and access code and creates a session
func (s *Service) Login(ctx context.Context, email, accessCode string) (*Session, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	cred, err := s.storage.GetCredential(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.AccessCodeHash), []byte(accessCode)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(user), nil
}

// RegenerateAccessCode replaces a user's access code and returns the new
// plaintext code once
func (s *Service) RegenerateAccessCode(ctx context.Context, userID model.UserID) (string, error) {
	cred, err := s.storage.GetCredential(ctx, userID)
	if err != nil {
		return "", err
	}

	code := generateAccessCode()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	updated := *cred
	updated.AccessCodeHash = string(hash)
	updated.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveCredential(ctx, &updated); err != nil {
		return "", err
	}

	s.logger.Info("access code regenerated", slog.String("user_id", string(userID)))
	return code, nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// createSession creates a new session for a user
func (s *Service) createSession(user *model.User) *Session {
	token := "sess_" + randomToken()
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		UserID:    user.ID,
		User:      *user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// generateAccessCode produces the random code handed to a new user
func generateAccessCode() string {
	return randomToken()[:accessCodeLength]
}

// randomToken generates a random URL-safe string
func randomToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
