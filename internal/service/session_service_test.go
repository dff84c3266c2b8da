package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/models"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/redisstore"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/repository"
)

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeUserStore struct {
	byEmail map[string]*models.User
	created []*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*models.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	s.byEmail[user.Email] = user
	s.created = append(s.created, user)
	return nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

type fakeProfileStore struct {
	byID     map[string]*models.Profile
	addCalls int
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{byID: make(map[string]*models.Profile)}
}

func (s *fakeProfileStore) Create(ctx context.Context, profile *models.Profile) error {
	s.byID[profile.ID] = profile
	return nil
}

func (s *fakeProfileStore) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	if profile, ok := s.byID[id]; ok {
		return profile, nil
	}
	return nil, repository.ErrProfileNotFound
}

func (s *fakeProfileStore) AddToBalance(ctx context.Context, id string, amount float64) (float64, error) {
	s.addCalls++
	profile, ok := s.byID[id]
	if !ok {
		return 0, repository.ErrProfileNotFound
	}
	profile.WalletBalance += amount
	return profile.WalletBalance, nil
}

type fakeRegistry struct {
	sessions  map[string]redisstore.LiveSession
	deleteErr error
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{sessions: make(map[string]redisstore.LiveSession)}
}

func (r *fakeRegistry) Save(ctx context.Context, session redisstore.LiveSession) error {
	r.sessions[session.SessionID] = session
	return nil
}

func (r *fakeRegistry) Exists(ctx context.Context, sessionID string) (bool, error) {
	_, ok := r.sessions[sessionID]
	return ok, nil
}

func (r *fakeRegistry) Delete(ctx context.Context, sessionID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.sessions, sessionID)
	return nil
}

func newTestSessionService(users *fakeUserStore, profiles *fakeProfileStore, registry *fakeRegistry) *SessionService {
	tokens := NewTokenService("test-secret", time.Hour)
	var reg SessionRegistry
	if registry != nil {
		reg = registry
	}
	return NewSessionService(users, profiles, reg, fakeHasher{}, tokens, zap.NewNop())
}

func seedAccount(t *testing.T, users *fakeUserStore, profiles *fakeProfileStore, email string, balance float64) string {
	t.Helper()
	user := &models.User{ID: "user-" + email, Email: email, PasswordHash: "hashed:secret"}
	users.byEmail[email] = user
	profiles.byID[user.ID] = &models.Profile{ID: user.ID, Email: email, WalletBalance: balance}
	return user.ID
}

func TestLoginSuccess(t *testing.T) {
	users := newFakeUserStore()
	profiles := newFakeProfileStore()
	registry := newFakeRegistry()
	seedAccount(t, users, profiles, "driver@example.com", 12.5)

	svc := newTestSessionService(users, profiles, registry)

	session, err := svc.Login(context.Background(), "Driver@Example.com ", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected a token")
	}
	if session.User.WalletBalance != 12.5 {
		t.Fatalf("expected balance 12.5, got %v", session.User.WalletBalance)
	}
	if len(registry.sessions) != 1 {
		t.Fatalf("expected one live session, got %d", len(registry.sessions))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserStore()
	profiles := newFakeProfileStore()
	seedAccount(t, users, profiles, "driver@example.com", 0)

	svc := newTestSessionService(users, profiles, nil)

	_, err := svc.Login(context.Background(), "driver@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err.Error() != "invalid email or password" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestSessionService(newFakeUserStore(), newFakeProfileStore(), nil)

	_, err := svc.Login(context.Background(), "nobody@example.com", "secret")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginMissingProfile(t *testing.T) {
	users := newFakeUserStore()
	users.byEmail["driver@example.com"] = &models.User{
		ID: "user-1", Email: "driver@example.com", PasswordHash: "hashed:secret",
	}

	svc := newTestSessionService(users, newFakeProfileStore(), nil)

	_, err := svc.Login(context.Background(), "driver@example.com", "secret")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestSignupCreatesZeroBalanceProfile(t *testing.T) {
	users := newFakeUserStore()
	profiles := newFakeProfileStore()

	svc := newTestSessionService(users, profiles, newFakeRegistry())

	session, err := svc.Signup(context.Background(), "new@example.com", "secret")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if session.User.WalletBalance != 0 {
		t.Fatalf("expected zero balance, got %v", session.User.WalletBalance)
	}
	if len(users.created) != 1 {
		t.Fatalf("expected one created user, got %d", len(users.created))
	}
	if _, ok := profiles.byID[session.User.ID]; !ok {
		t.Fatal("expected profile row for new user")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	profiles := newFakeProfileStore()
	seedAccount(t, users, profiles, "taken@example.com", 0)

	svc := newTestSessionService(users, profiles, nil)

	_, err := svc.Signup(context.Background(), "taken@example.com", "secret")
	if !errors.Is(err, ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
}

func TestAddFundsRejectsInvalidAmounts(t *testing.T) {
	users := newFakeUserStore()
	profiles := newFakeProfileStore()
	userID := seedAccount(t, users, profiles, "driver@example.com", 10)

	svc := newTestSessionService(users, profiles, nil)

	for _, amount := range []float64{0, -5} {
		if _, err := svc.AddFunds(context.Background(), userID, amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %v: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if profiles.addCalls != 0 {
		t.Fatalf("expected no backend calls for invalid amounts, got %d", profiles.addCalls)
	}
}

func TestAddFundsIncrementsBalance(t *testing.T) {
	users := newFakeUserStore()
	profiles := newFakeProfileStore()
	userID := seedAccount(t, users, profiles, "driver@example.com", 10.00)

	svc := newTestSessionService(users, profiles, nil)

	balance, err := svc.AddFunds(context.Background(), userID, 25.50)
	if err != nil {
		t.Fatalf("add funds: %v", err)
	}
	if balance != 35.50 {
		t.Fatalf("expected balance 35.50, got %v", balance)
	}
	if profiles.byID[userID].WalletBalance != 35.50 {
		t.Fatalf("expected stored balance 35.50, got %v", profiles.byID[userID].WalletBalance)
	}
}

func TestAddFundsRequiresSession(t *testing.T) {
	svc := newTestSessionService(newFakeUserStore(), newFakeProfileStore(), nil)

	if _, err := svc.AddFunds(context.Background(), "", 5); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestLogoutKeepsSessionOnRegistryFailure(t *testing.T) {
	users := newFakeUserStore()
	profiles := newFakeProfileStore()
	registry := newFakeRegistry()
	seedAccount(t, users, profiles, "driver@example.com", 0)

	svc := newTestSessionService(users, profiles, registry)

	session, err := svc.Login(context.Background(), "driver@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := NewTokenService("test-secret", time.Hour).ValidateToken(session.Token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}

	registry.deleteErr = errors.New("redis down")
	if err := svc.Logout(context.Background(), claims.ID); !errors.Is(err, ErrLogout) {
		t.Fatalf("expected ErrLogout, got %v", err)
	}
	if _, ok := registry.sessions[claims.ID]; !ok {
		t.Fatal("expected session to survive a failed logout")
	}

	registry.deleteErr = nil
	if err := svc.Logout(context.Background(), claims.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := registry.sessions[claims.ID]; ok {
		t.Fatal("expected session to be dropped")
	}
}
