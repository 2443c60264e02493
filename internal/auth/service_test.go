package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	pkgauth "github.com/anupamtiwari/homecraft-backend/pkg/auth"
	"github.com/anupamtiwari/homecraft-backend/pkg/config"
	"github.com/anupamtiwari/homecraft-backend/pkg/db/models"
	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/anupamtiwari/homecraft-backend/pkg/security"
)

type memoryStore struct {
	values   map[string]string
	counters map[string]int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}, counters: map[string]int64{}}
}

func (m *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.values[key] = value.(string)
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return "", redislib.Nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
		delete(m.counters, key)
	}
	return nil
}

func (m *memoryStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.counters[key]++
	return m.counters[key], nil
}

func (m *memoryStore) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	key := "rl:" + scope
	m.counters[key]++
	return m.counters[key] <= limit, m.counters[key], nil
}

func (m *memoryStore) OTPKey(email string) string         { return "otp:" + email }
func (m *memoryStore) OTPAttemptsKey(email string) string { return "otp:attempts:" + email }

type memoryUsers struct {
	users  map[string]*models.User
	admins map[string]*models.Admin
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]*models.User{}, admins: map[string]*models.Admin{}}
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
}

func (m *memoryUsers) UpsertByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	u := &models.User{ID: uuid.New(), Email: email}
	m.users[email] = u
	return u, nil
}

func (m *memoryUsers) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	for _, u := range m.users {
		if u.ID == id {
			u.LastLoginAt = &at
			return nil
		}
	}
	return nil
}

func (m *memoryUsers) FindAdminByEmail(_ context.Context, email string) (*models.Admin, error) {
	if a, ok := m.admins[email]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUsers) UpdateAdminLastLogin(context.Context, uuid.UUID, time.Time) error {
	return nil
}

type stubMailer struct {
	sent []string
	last string
}

func (s *stubMailer) SendOTP(_ context.Context, toEmail, code string) error {
	s.sent = append(s.sent, toEmail)
	s.last = code
	return nil
}

type stubSessions struct {
	generated []string
	revoked   []string
}

func (s *stubSessions) Generate(_ context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

func (s *stubSessions) Rotate(_ context.Context, oldAccessID, _ string) (string, string, error) {
	return "rotated-" + oldAccessID, "refresh-rotated", nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

type fixture struct {
	svc      Service
	store    *memoryStore
	users    *memoryUsers
	mailer   *stubMailer
	sessions *stubSessions
}

func jwtConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "homecraft", ExpirationMinutes: 15}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemoryStore()
	repo := newMemoryUsers()
	mailer := &stubMailer{}
	sessions := &stubSessions{}

	svc, err := NewService(ServiceParams{
		Users:          repo,
		Store:          store,
		Mailer:         mailer,
		SessionManager: sessions,
		JWTConfig:      jwtConfig(),
		OTPConfig:      config.OTPConfig{TTL: 5 * time.Minute, Digits: 6, MaxAttempts: 3},
		RateLimits:     config.AuthRateLimitConfig{OTPWindow: time.Minute, OTPEmailLimit: 3, OTPIPLimit: 5},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &fixture{svc: svc, store: store, users: repo, mailer: mailer, sessions: sessions}
}

func TestSendOTPStoresAndMails(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	if err := f.svc.SendOTP(context.Background(), " User@Example.com ", "1.2.3.4"); err != nil {
		t.Fatalf("send otp: %v", err)
	}

	if len(f.mailer.sent) != 1 || f.mailer.sent[0] != "user@example.com" {
		t.Fatalf("expected mail to lowercased address, got %v", f.mailer.sent)
	}
	if f.store.values["otp:user@example.com"] != f.mailer.last {
		t.Fatal("stored code must match the mailed code")
	}
	if len(f.mailer.last) != 6 {
		t.Fatalf("expected 6-digit code, got %q", f.mailer.last)
	}
}

func TestSendOTPEmailRateLimit(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	for i := 0; i < 3; i++ {
		if err := f.svc.SendOTP(context.Background(), "user@example.com", ""); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}

	err := f.svc.SendOTP(context.Background(), "user@example.com", "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeRateLimit {
		t.Fatalf("expected rate limit on fourth send, got %v", err)
	}
}

func TestVerifyOTPHappyPathCreatesUser(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	if err := f.svc.SendOTP(context.Background(), "user@example.com", ""); err != nil {
		t.Fatalf("send otp: %v", err)
	}

	resp, err := f.svc.VerifyOTP(context.Background(), "user@example.com", f.mailer.last)
	if err != nil {
		t.Fatalf("verify otp: %v", err)
	}

	if resp.User == nil || resp.User.Email != "user@example.com" {
		t.Fatalf("expected upserted user, got %+v", resp.User)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}

	claims, err := pkgauth.ParseAccessToken(jwtConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.RoleCustomer {
		t.Fatalf("expected customer role claim, got %s", claims.Role)
	}

	// The code is single use.
	_, err = f.svc.VerifyOTP(context.Background(), "user@example.com", f.mailer.last)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized on reuse, got %v", err)
	}
}

func TestVerifyOTPWrongCodeAndAttemptBudget(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	if err := f.svc.SendOTP(context.Background(), "user@example.com", ""); err != nil {
		t.Fatalf("send otp: %v", err)
	}

	for i := 0; i < 3; i++ {
		_, err := f.svc.VerifyOTP(context.Background(), "user@example.com", "000000")
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("attempt %d: expected unauthorized, got %v", i, err)
		}
	}

	_, err := f.svc.VerifyOTP(context.Background(), "user@example.com", "000000")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeRateLimit {
		t.Fatalf("expected rate limit after budget, got %v", err)
	}

	// The code was burned with the budget; even the right code fails now.
	_, err = f.svc.VerifyOTP(context.Background(), "user@example.com", f.mailer.last)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized after burn, got %v", err)
	}
}

func TestEmailExists(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.users.users["known@example.com"] = &models.User{ID: uuid.New(), Email: "known@example.com"}

	exists, err := f.svc.EmailExists(context.Background(), "Known@Example.com")
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if !exists {
		t.Fatal("expected known address to exist")
	}

	exists, err = f.svc.EmailExists(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if exists {
		t.Fatal("expected unknown address to not exist")
	}

	if _, err := f.svc.EmailExists(context.Background(), "not-an-email"); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestAdminLogin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	hash, err := security.HashPassword("sup3r-secret", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	f.users.admins["ops@example.com"] = &models.Admin{
		ID:           uuid.New(),
		Email:        "ops@example.com",
		Name:         "Ops",
		PasswordHash: hash,
	}

	_, err = f.svc.AdminLogin(context.Background(), AdminLoginRequest{Email: "ops@example.com", Password: "wrong"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}

	_, err = f.svc.AdminLogin(context.Background(), AdminLoginRequest{Email: "ghost@example.com", Password: "whatever"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown admin, got %v", err)
	}

	resp, err := f.svc.AdminLogin(context.Background(), AdminLoginRequest{Email: "Ops@Example.com", Password: "sup3r-secret"})
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(jwtConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.RoleAdmin {
		t.Fatalf("expected admin role claim, got %s", claims.Role)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	if err := f.svc.Logout(context.Background(), "access-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(f.sessions.revoked) != 1 || f.sessions.revoked[0] != "access-1" {
		t.Fatalf("expected revoked access id, got %v", f.sessions.revoked)
	}
}
