package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/models"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/password"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/redisstore"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/repository"
)

var (
	// ErrInvalidCredentials represents login failure. The message is shown
	// to the user as-is.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailInUse is returned when attempting to register a duplicate email.
	ErrEmailInUse = errors.New("an account with this email already exists")
	// ErrProfileNotFound means authentication succeeded but no profile row matched.
	ErrProfileNotFound = errors.New("user profile not found")
	// ErrNotAuthenticated guards operations that need an active session.
	ErrNotAuthenticated = errors.New("user not authenticated")
	// ErrLogout is returned when the session registry could not drop the
	// session. The session stays live so the caller can retry.
	ErrLogout = errors.New("error during logout")
	// ErrInvalidAmount rejects non-positive or non-finite top-ups.
	ErrInvalidAmount = errors.New("amount must be a positive number")
)

// UserStore defines the account storage contract used by the service.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProfileStore defines the profile storage contract used by the service.
type ProfileStore interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	AddToBalance(ctx context.Context, id string, amount float64) (float64, error)
}

// SessionRegistry tracks live sessions so logout can invalidate tokens.
type SessionRegistry interface {
	Save(ctx context.Context, session redisstore.LiveSession) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// Session is what login/signup hand back to the HTTP layer.
type Session struct {
	Token string
	User  *models.Profile
}

// SessionService owns authentication and wallet state.
type SessionService struct {
	users    UserStore
	profiles ProfileStore
	registry SessionRegistry
	hasher   password.Hasher
	tokens   *TokenService
	logger   *zap.Logger
}

// NewSessionService builds SessionService.
func NewSessionService(
	users UserStore,
	profiles ProfileStore,
	registry SessionRegistry,
	hasher password.Hasher,
	tokens *TokenService,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		users:    users,
		profiles: profiles,
		registry: registry,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// Signup registers a new account and its zero-balance profile.
func (s *SessionService) Signup(ctx context.Context, email, pass string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("session: email required")
	}
	if pass == "" {
		return nil, errors.New("session: password required")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &models.Profile{
		ID:            user.ID,
		Email:         user.Email,
		WalletBalance: 0,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	session, err := s.openSession(ctx, profile)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return session, nil
}

// Login authenticates a user and loads the matching profile.
func (s *SessionService) Login(ctx context.Context, email, pass string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || pass == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, pass); err != nil {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.profiles.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return s.openSession(ctx, profile)
}

// Logout drops the live session. On registry failure the session is left
// untouched so the caller can retry.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrNotAuthenticated
	}
	if s.registry == nil {
		return nil
	}
	if err := s.registry.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("failed to drop session", zap.String("session_id", sessionID), zap.Error(err))
		return ErrLogout
	}
	return nil
}

// AddFunds tops up the wallet with a single backend-side increment and
// returns the resulting balance.
func (s *SessionService) AddFunds(ctx context.Context, userID string, amount float64) (float64, error) {
	if userID == "" {
		return 0, ErrNotAuthenticated
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrInvalidAmount
	}

	balance, err := s.profiles.AddToBalance(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return 0, ErrProfileNotFound
		}
		return 0, err
	}

	s.logger.Info("wallet topped up", zap.String("user_id", userID), zap.Float64("amount", amount))
	return balance, nil
}

// Profile returns the caller's profile row.
func (s *SessionService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// SessionLive reports whether the session id still exists in the registry.
// With no registry configured every valid token is accepted.
func (s *SessionService) SessionLive(ctx context.Context, sessionID string) (bool, error) {
	if s.registry == nil {
		return true, nil
	}
	return s.registry.Exists(ctx, sessionID)
}

func (s *SessionService) openSession(ctx context.Context, profile *models.Profile) (*Session, error) {
	token, sessionID, err := s.tokens.GenerateToken(profile.ID)
	if err != nil {
		return nil, err
	}

	if s.registry != nil {
		err := s.registry.Save(ctx, redisstore.LiveSession{
			SessionID: sessionID,
			UserID:    profile.ID,
			IssuedAt:  time.Now().UTC(),
		})
		if err != nil {
			return nil, err
		}
	}

	return &Session{Token: token, User: profile}, nil
}
