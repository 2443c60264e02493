package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/anupamtiwari/homecraft-backend/internal/users"
	pkgauth "github.com/anupamtiwari/homecraft-backend/pkg/auth"
	"github.com/anupamtiwari/homecraft-backend/pkg/auth/session"
	"github.com/anupamtiwari/homecraft-backend/pkg/config"
	"github.com/anupamtiwari/homecraft-backend/pkg/enums"
	pkgerrors "github.com/anupamtiwari/homecraft-backend/pkg/errors"
	"github.com/anupamtiwari/homecraft-backend/pkg/security"
)

const invalidCodeMessage = "invalid or expired code"
const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controllers.
type Service interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	SendOTP(ctx context.Context, email, clientIP string) error
	VerifyOTP(ctx context.Context, email, code string) (*LoginResponse, error)
	AdminLogin(ctx context.Context, req AdminLoginRequest) (*AdminLoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
	Refresh(ctx context.Context, claims *pkgauth.AccessTokenClaims, refreshToken string) (*RefreshResponse, error)
	Logout(ctx context.Context, accessID string) error
}

type otpStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
	OTPKey(email string) string
	OTPAttemptsKey(email string) string
}

type otpMailer interface {
	SendOTP(ctx context.Context, toEmail, code string) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type service struct {
	users     users.Repository
	store     otpStore
	mailer    otpMailer
	session   sessionManager
	jwtCfg    config.JWTConfig
	otpCfg    config.OTPConfig
	limits    config.AuthRateLimitConfig
	now       func() time.Time
	generator func(digits int) (string, error)
}

// ServiceParams bundles the dependencies required to build the auth service.
type ServiceParams struct {
	Users          users.Repository
	Store          otpStore
	Mailer         otpMailer
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	OTPConfig      config.OTPConfig
	RateLimits     config.AuthRateLimitConfig
	Now            func() time.Time
}

// NewService constructs the auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("otp store is required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("otp mailer is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		users:     params.Users,
		store:     params.Store,
		mailer:    params.Mailer,
		session:   params.SessionManager,
		jwtCfg:    params.JWTConfig,
		otpCfg:    params.OTPConfig,
		limits:    params.RateLimits,
		now:       now,
		generator: security.GenerateOTP,
	}, nil
}

func (s *service) EmailExists(ctx context.Context, email string) (bool, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return false, err
	}

	if _, err := s.users.FindByEmail(ctx, normalized); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return true, nil
}

func (s *service) SendOTP(ctx context.Context, email, clientIP string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	if err := s.allowSend(ctx, normalized, clientIP); err != nil {
		return err
	}

	code, err := s.generator(s.otpCfg.Digits)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate code")
	}

	if err := s.store.Set(ctx, s.store.OTPKey(normalized), code, s.otpCfg.TTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store code")
	}
	// A fresh code resets the attempt budget.
	if err := s.store.Del(ctx, s.store.OTPAttemptsKey(normalized)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reset attempts")
	}

	return s.mailer.SendOTP(ctx, normalized, code)
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) (*LoginResponse, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCodeMessage)
	}

	stored, err := s.store.Get(ctx, s.store.OTPKey(normalized))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCodeMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load code")
	}

	attempts, err := s.store.IncrWithTTL(ctx, s.store.OTPAttemptsKey(normalized), s.otpCfg.TTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count attempt")
	}
	if int(attempts) > s.otpCfg.MaxAttempts {
		// Burn the code so a brute force cannot keep guessing.
		_ = s.store.Del(ctx, s.store.OTPKey(normalized), s.store.OTPAttemptsKey(normalized))
		return nil, pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, request a new code")
	}

	if !security.CompareOTP(stored, code) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCodeMessage)
	}

	// The code is single use.
	if err := s.store.Del(ctx, s.store.OTPKey(normalized), s.store.OTPAttemptsKey(normalized)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume code")
	}

	user, err := s.users.UpsertByEmail(ctx, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert user")
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	user.LastLoginAt = &now

	accessToken, refreshToken, err := s.mintSession(ctx, now, pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   enums.RoleCustomer,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.FromModel(user),
	}, nil
}

func (s *service) AdminLogin(ctx context.Context, req AdminLoginRequest) (*AdminLoginResponse, error) {
	normalized, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	admin, err := s.users.FindAdminByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup admin")
	}

	valid, err := security.VerifyPassword(req.Password, admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	now := s.now().UTC()
	if err := s.users.UpdateAdminLastLogin(ctx, admin.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}

	accessToken, refreshToken, err := s.mintSession(ctx, now, pkgauth.AccessTokenPayload{
		UserID: admin.ID,
		Email:  admin.Email,
		Role:   enums.RoleAdmin,
	})
	if err != nil {
		return nil, err
	}

	return &AdminLoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Admin:        users.AdminFromModel(admin),
	}, nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return users.FromModel(user), nil
}

func (s *service) Refresh(ctx context.Context, claims *pkgauth.AccessTokenClaims, refreshToken string) (*RefreshResponse, error) {
	if claims == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session")
	}

	newAccessID, newRefresh, err := s.session.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotate session")
	}

	accessToken, err := pkgauth.MintAccessToken(s.jwtCfg, s.now().UTC(), pkgauth.AccessTokenPayload{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		JTI:    newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &RefreshResponse{AccessToken: accessToken, RefreshToken: newRefresh}, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

func (s *service) mintSession(ctx context.Context, now time.Time, payload pkgauth.AccessTokenPayload) (string, string, error) {
	accessID := session.NewAccessID()
	payload.JTI = accessID

	accessToken, err := pkgauth.MintAccessToken(s.jwtCfg, now, payload)
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}
	return accessToken, refreshToken, nil
}

func (s *service) allowSend(ctx context.Context, email, clientIP string) error {
	allowed, _, err := s.store.FixedWindowAllow(ctx, "otp:email:"+email, int64(s.limits.OTPEmailLimit), s.limits.OTPWindow)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit")
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeRateLimit, "too many codes requested for this email")
	}

	if strings.TrimSpace(clientIP) != "" {
		allowed, _, err = s.store.FixedWindowAllow(ctx, "otp:ip:"+clientIP, int64(s.limits.OTPIPLimit), s.limits.OTPWindow)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit")
		}
		if !allowed {
			return pkgerrors.New(pkgerrors.CodeRateLimit, "too many codes requested from this address")
		}
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	return trimmed, nil
}
