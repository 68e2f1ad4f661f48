package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ocampodev/supplyline-backend/internal/memberships"
	pkgauth "github.com/ocampodev/supplyline-backend/pkg/auth"
	"github.com/ocampodev/supplyline-backend/pkg/config"
	"github.com/ocampodev/supplyline-backend/pkg/db/models"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
	"github.com/ocampodev/supplyline-backend/pkg/security"
)

type stubUsers struct {
	byEmail    map[string]*models.User
	lastLogin  map[uuid.UUID]time.Time
	findErr    error
	updateErr  error
	loginCalls int
}

func (s *stubUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.byEmail[email], nil
}

func (s *stubUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, user := range s.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.loginCalls++
	s.lastLogin[id] = at
	return nil
}

type stubMemberships struct {
	stores map[uuid.UUID][]memberships.MembershipWithStore
}

func (s *stubMemberships) ListUserStores(_ context.Context, userID uuid.UUID) ([]memberships.MembershipWithStore, error) {
	return s.stores[userID], nil
}

func (s *stubMemberships) FindRole(_ context.Context, userID, storeID uuid.UUID) (*enums.MemberRole, error) {
	for _, row := range s.stores[userID] {
		if row.StoreID == storeID {
			role := row.Role
			return &role, nil
		}
	}
	return nil, nil
}

type stubSessions struct {
	created map[string]uuid.UUID
	revoked []string
}

func (s *stubSessions) Create(_ context.Context, accessID string, userID uuid.UUID) error {
	s.created[accessID] = userID
	return nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

type stubLimiter struct {
	denyScopes map[string]bool
	seen       []string
}

func (s *stubLimiter) FixedWindowAllow(_ context.Context, scope string, _ int64, _ time.Duration) (bool, int64, error) {
	s.seen = append(s.seen, scope)
	if s.denyScopes[scope] {
		return false, 99, nil
	}
	return true, 1, nil
}

type authFixture struct {
	svc         Service
	users       *stubUsers
	memberships *stubMemberships
	sessions    *stubSessions
	limiter     *stubLimiter
	jwtCfg      config.JWTConfig
	userID      uuid.UUID
	storeID     uuid.UUID
}

const testPassword = "correct horse battery"

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	hash, err := security.HashPassword(testPassword, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	userID := uuid.New()
	storeID := uuid.New()
	usersStub := &stubUsers{
		byEmail: map[string]*models.User{
			"buyer@example.com": {
				ID:           userID,
				Email:        "buyer@example.com",
				PasswordHash: hash,
				DisplayName:  "Buyer",
				Status:       enums.UserStatusActive,
			},
		},
		lastLogin: make(map[uuid.UUID]time.Time),
	}
	membershipsStub := &stubMemberships{
		stores: map[uuid.UUID][]memberships.MembershipWithStore{
			userID: {
				{StoreID: storeID, StoreName: "Apex Supply", Role: enums.MemberRoleManager},
			},
		},
	}
	sessionsStub := &stubSessions{created: make(map[string]uuid.UUID)}
	limiterStub := &stubLimiter{denyScopes: make(map[string]bool)}

	jwtCfg := config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "supplyline-test",
		ExpirationMinutes: 15,
		SessionTTLMinutes: 60,
	}

	svc, err := NewService(ServiceParams{
		Users:       usersStub,
		Memberships: membershipsStub,
		Sessions:    sessionsStub,
		Limiter:     limiterStub,
		JWT:         jwtCfg,
		RateLimit: config.AuthRateLimitConfig{
			LoginWindow:     time.Minute,
			LoginEmailLimit: 5,
			LoginIPLimit:    20,
		},
		Now: func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	return &authFixture{
		svc:         svc,
		users:       usersStub,
		memberships: membershipsStub,
		sessions:    sessionsStub,
		limiter:     limiterStub,
		jwtCfg:      jwtCfg,
		userID:      userID,
		storeID:     storeID,
	}
}

func TestLoginMintsTokenWithStoreContext(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "Buyer@Example.com",
		Password: testPassword,
		RemoteIP: "203.0.113.9",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}

	claims, err := pkgauth.ParseAccessToken(f.jwtCfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != f.userID {
		t.Fatalf("claims user = %s, want %s", claims.UserID, f.userID)
	}
	if claims.ActiveStoreID == nil || *claims.ActiveStoreID != f.storeID {
		t.Fatal("expected active store id in claims")
	}
	if claims.StoreRole == nil || *claims.StoreRole != enums.MemberRoleManager {
		t.Fatal("expected manager store role in claims")
	}

	if _, ok := f.sessions.created[claims.ID]; !ok {
		t.Fatal("expected session keyed by jti")
	}
	if f.users.loginCalls != 1 {
		t.Fatalf("login calls = %d, want 1", f.users.loginCalls)
	}
	if len(resp.Stores) != 1 || resp.Stores[0].Name != "Apex Supply" {
		t.Fatalf("unexpected stores: %+v", resp.Stores)
	}
}

func TestLoginWithoutMembershipsOmitsStoreClaims(t *testing.T) {
	f := newAuthFixture(t)
	f.memberships.stores = map[uuid.UUID][]memberships.MembershipWithStore{}

	resp, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "buyer@example.com",
		Password: testPassword,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(f.jwtCfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.ActiveStoreID != nil || claims.StoreRole != nil {
		t.Fatal("expected no store claims for user without memberships")
	}
	if len(resp.Stores) != 0 {
		t.Fatalf("stores = %+v, want empty", resp.Stores)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "buyer@example.com",
		Password: "nope",
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
	if len(f.sessions.created) != 0 {
		t.Fatal("no session should exist after failed login")
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "ghost@example.com",
		Password: testPassword,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	f := newAuthFixture(t)
	f.users.byEmail["buyer@example.com"].Status = enums.UserStatusDisabled

	_, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "buyer@example.com",
		Password: testPassword,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestLoginRateLimitedByEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.limiter.denyScopes["login:email:buyer@example.com"] = true

	_, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "buyer@example.com",
		Password: testPassword,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeRateLimit) {
		t.Fatalf("expected RATE_LIMIT, got %v", err)
	}
	if f.users.loginCalls != 0 {
		t.Fatal("rate-limited attempt should not touch the user record")
	}
}

func TestLoginRateLimitedByIP(t *testing.T) {
	f := newAuthFixture(t)
	f.limiter.denyScopes["login:ip:198.51.100.7"] = true

	_, err := f.svc.Login(context.Background(), LoginInput{
		Email:    "buyer@example.com",
		Password: testPassword,
		RemoteIP: "198.51.100.7",
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeRateLimit) {
		t.Fatalf("expected RATE_LIMIT, got %v", err)
	}
}

func TestLoginMissingFields(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), LoginInput{Email: "", Password: ""})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
	if len(f.limiter.seen) != 0 {
		t.Fatal("validation failure should not consume rate-limit budget")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newAuthFixture(t)

	if err := f.svc.Logout(context.Background(), "jti-123"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(f.sessions.revoked) != 1 || f.sessions.revoked[0] != "jti-123" {
		t.Fatalf("revoked = %v", f.sessions.revoked)
	}
}

func TestLogoutRequiresAccessID(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.Logout(context.Background(), "  ")
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
}
