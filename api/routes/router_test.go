package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ocampodev/supplyline-backend/internal/auth"
	"github.com/ocampodev/supplyline-backend/pkg/config"
)

type noopAuthService struct{}

func (noopAuthService) Login(ctx context.Context, input auth.LoginInput) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "token"}, nil
}

func (noopAuthService) Logout(ctx context.Context, accessID string) error { return nil }

func testRouter() http.Handler {
	return NewRouter(Deps{
		Config: &config.Config{
			App: config.AppConfig{Env: "test", Port: "0"},
			JWT: config.JWTConfig{Secret: "test-secret", Issuer: "supplyline-test", ExpirationMinutes: 15},
		},
		Auth: noopAuthService{},
	})
}

func TestRouterServesLiveness(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Supplyline-Env") != "test" {
		t.Fatal("environment header missing")
	}
}

func TestRouterRequiresAuthOnDomainRoutes(t *testing.T) {
	paths := []string{"/v1/orders", "/v1/sales-notes", "/v1/shipping-pool", "/v1/notifications", "/v1/audit-logs", "/v1/products"}
	router := testRouter()
	for _, path := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestRouterExposesMetrics(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
