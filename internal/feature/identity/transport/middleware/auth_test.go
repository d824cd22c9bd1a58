package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"stockwatch/internal/feature/identity/domain"
	"stockwatch/internal/feature/identity/domain/entity"
)

// TestMain switches gin to test mode before any test runs.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockValidator is a mock implementation of the TokenValidator interface.
type mockValidator struct {
	ValidateFunc func(ctx context.Context, authorization string) (*entity.Identity, error)
	Calls        int
}

func (m *mockValidator) Validate(ctx context.Context, authorization string) (*entity.Identity, error) {
	m.Calls++
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, authorization)
	}
	return nil, errors.New("ValidateFunc is not implemented")
}

func testConfig() Config {
	return Config{
		AdminAPIKeys:  []string{"cron-key", "ops-key"},
		AdminIdentity: entity.Identity{ID: "admin", Name: "system"},
	}
}

func runGate(t *testing.T, cfg Config, v TokenValidator, setup func(r *http.Request)) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if setup != nil {
		setup(c.Request)
	}

	AuthRequired(cfg, v, nil)(c)
	return w, c
}

// TestAuthRequired_NoCredential verifies that requests without any
// credential are rejected 401 before the identity service is contacted.
func TestAuthRequired_NoCredential(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"no headers", nil},
		{"unknown api key only", func(r *http.Request) {
			r.Header.Set(APIKeyHeader, "not-a-configured-key")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &mockValidator{}
			w, c := runGate(t, testConfig(), v, tt.setup)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
			if v.Calls != 0 {
				t.Errorf("expected identity service not to be called, got %d calls", v.Calls)
			}
		})
	}
}

// TestAuthRequired_AdminBypass verifies that a configured admin key skips
// the remote call and attaches the configured admin identity.
func TestAuthRequired_AdminBypass(t *testing.T) {
	for _, key := range []string{"cron-key", "ops-key"} {
		t.Run(key, func(t *testing.T) {
			v := &mockValidator{}
			w, c := runGate(t, testConfig(), v, func(r *http.Request) {
				r.Header.Set(APIKeyHeader, key)
			})

			if c.IsAborted() {
				t.Fatalf("expected request to proceed, response: %s", w.Body.String())
			}
			if v.Calls != 0 {
				t.Errorf("expected identity service not to be called, got %d calls", v.Calls)
			}

			ident, ok := FromContext(c)
			if !ok {
				t.Fatal("expected identity in context")
			}
			if ident.ID != "admin" || ident.Name != "system" {
				t.Errorf("expected configured admin identity, got %+v", ident)
			}
		})
	}
}

// TestAuthRequired_ValidatorFailures verifies the mapping of classified
// validator failures onto HTTP statuses.
func TestAuthRequired_ValidatorFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"service timeout", fmt.Errorf("%w: context deadline exceeded", domain.ErrAuthServiceUnavailable), http.StatusServiceUnavailable},
		{"service unreachable", fmt.Errorf("%w: connection refused", domain.ErrAuthServiceUnavailable), http.StatusServiceUnavailable},
		{"rejected token", domain.ErrInvalidToken, http.StatusUnauthorized},
		{"unexpected failure", errors.New("decode validation response: unexpected EOF"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &mockValidator{
				ValidateFunc: func(ctx context.Context, authorization string) (*entity.Identity, error) {
					return nil, tt.err
				},
			}
			w, c := runGate(t, testConfig(), v, func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer sometoken")
			})

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
		})
	}
}

// TestAuthRequired_ValidToken verifies that a validated credential attaches
// the resolved identity and forwards the header value verbatim.
func TestAuthRequired_ValidToken(t *testing.T) {
	var gotAuth string
	v := &mockValidator{
		ValidateFunc: func(ctx context.Context, authorization string) (*entity.Identity, error) {
			gotAuth = authorization
			return &entity.Identity{ID: "user-42", Email: "u@example.com"}, nil
		},
	}

	w, c := runGate(t, testConfig(), v, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer abc123")
	})

	if c.IsAborted() {
		t.Fatalf("expected request to proceed, response: %s", w.Body.String())
	}
	if gotAuth != "Bearer abc123" {
		t.Errorf("expected header forwarded verbatim, got %q", gotAuth)
	}

	ident, ok := FromContext(c)
	if !ok {
		t.Fatal("expected identity in context")
	}
	if ident.ID != "user-42" {
		t.Errorf("expected identity user-42, got %q", ident.ID)
	}
}

// TestFromContext_Missing verifies the handler-side second check: a context
// the gate never touched yields no identity.
func TestFromContext_Missing(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if _, ok := FromContext(c); ok {
		t.Error("expected no identity in untouched context")
	}

	c.Set(ContextIdentity, "not an identity")
	if _, ok := FromContext(c); ok {
		t.Error("expected no identity for mistyped context value")
	}
}

// TestLoadConfig verifies env parsing of the admin key set and identity payload.
func TestLoadConfig(t *testing.T) {
	t.Setenv("ADMIN_API_KEYS", " key-one, key-two ,,")
	t.Setenv("ADMIN_IDENTITY", `{"id":"svc-1","name":"cron"}`)

	cfg := LoadConfig()

	if len(cfg.AdminAPIKeys) != 2 || cfg.AdminAPIKeys[0] != "key-one" || cfg.AdminAPIKeys[1] != "key-two" {
		t.Errorf("unexpected admin keys: %v", cfg.AdminAPIKeys)
	}
	if cfg.AdminIdentity.ID != "svc-1" || cfg.AdminIdentity.Name != "cron" {
		t.Errorf("unexpected admin identity: %+v", cfg.AdminIdentity)
	}
}

// TestLoadConfig_Defaults verifies the fallback identity when env is unset.
func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ADMIN_API_KEYS", "")
	t.Setenv("ADMIN_IDENTITY", "not json")

	cfg := LoadConfig()

	if len(cfg.AdminAPIKeys) != 0 {
		t.Errorf("expected no admin keys, got %v", cfg.AdminAPIKeys)
	}
	if cfg.AdminIdentity.ID != "admin" {
		t.Errorf("expected default admin identity, got %+v", cfg.AdminIdentity)
	}
}
