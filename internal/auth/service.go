package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ocampodev/supplyline-backend/internal/memberships"
	"github.com/ocampodev/supplyline-backend/internal/users"
	pkgauth "github.com/ocampodev/supplyline-backend/pkg/auth"
	"github.com/ocampodev/supplyline-backend/pkg/auth/session"
	"github.com/ocampodev/supplyline-backend/pkg/config"
	"github.com/ocampodev/supplyline-backend/pkg/db/models"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
	"github.com/ocampodev/supplyline-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid email or password"

// Service handles credential verification and session lifecycle.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResponse, error)
	Logout(ctx context.Context, accessID string) error
}

type sessionManager interface {
	Create(ctx context.Context, accessID string, userID uuid.UUID) error
	Revoke(ctx context.Context, accessID string) error
}

type loginLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// ServiceParams bundles the dependencies for NewService.
type ServiceParams struct {
	Users       users.Repository
	Memberships memberships.Repository
	Sessions    sessionManager
	Limiter     loginLimiter
	JWT         config.JWTConfig
	RateLimit   config.AuthRateLimitConfig
	Now         func() time.Time
}

type service struct {
	users       users.Repository
	memberships memberships.Repository
	sessions    sessionManager
	limiter     loginLimiter
	jwtCfg      config.JWTConfig
	rateCfg     config.AuthRateLimitConfig
	now         func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if params.Memberships == nil {
		return nil, fmt.Errorf("memberships repository is required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.Limiter == nil {
		return nil, fmt.Errorf("login limiter is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		users:       params.Users,
		memberships: params.Memberships,
		sessions:    params.Sessions,
		limiter:     params.Limiter,
		jwtCfg:      params.JWT,
		rateCfg:     params.RateLimit,
		now:         now,
	}, nil
}

// Login verifies credentials and mints a session-backed access token.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	if err := s.allowAttempt(ctx, email, input.RemoteIP); err != nil {
		return nil, err
	}

	user, err := s.authenticate(ctx, email, input.Password)
	if err != nil {
		return nil, err
	}

	storeRows, err := s.memberships.ListUserStores(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list user stores")
	}

	payload := pkgauth.AccessTokenPayload{
		UserID:     user.ID,
		SystemRole: user.SystemRole,
		JTI:        session.NewAccessID(),
	}
	if len(storeRows) > 0 {
		payload.ActiveStoreID = &storeRows[0].StoreID
		payload.StoreRole = &storeRows[0].Role
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	if err := s.sessions.Create(ctx, payload.JTI, user.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	if err := s.recordLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	stores := make([]StoreSummary, 0, len(storeRows))
	for _, row := range storeRows {
		stores = append(stores, StoreSummary{ID: row.StoreID, Name: row.StoreName, Role: row.Role})
	}

	return &LoginResponse{
		AccessToken: token,
		User:        users.FromModel(user),
		Stores:      stores,
	}, nil
}

// Logout revokes the Redis session tied to the token's jti.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id is required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) allowAttempt(ctx context.Context, email, remoteIP string) error {
	allowed, _, err := s.limiter.FixedWindowAllow(ctx, "login:email:"+email, int64(s.rateCfg.LoginEmailLimit), s.rateCfg.LoginWindow)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit check")
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts, try again later")
	}

	if remoteIP == "" {
		return nil
	}
	allowed, _, err = s.limiter.FixedWindowAllow(ctx, "login:ip:"+remoteIP, int64(s.rateCfg.LoginIPLimit), s.rateCfg.LoginWindow)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit check")
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts, try again later")
	}
	return nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find user by email")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	match, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !match {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	if user.Status != enums.UserStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account is disabled")
	}
	return user, nil
}

func (s *service) recordLogin(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.UpdateLastLogin(ctx, userID, s.now()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record login timestamp")
	}
	return nil
}
