package authapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockwatch/internal/feature/identity/domain"
)

func newTestClient(serverURL string, hc *http.Client) *Client {
	return NewClient(Config{BaseURL: serverURL, Timeout: time.Second}, hc)
}

func TestClient_Validate_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/validateToken" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected Authorization forwarded verbatim, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"valid": true, "user": {"id": "u-7", "email": "u@example.com", "name": "U"}}`))
	}))
	defer server.Close()

	ident, err := newTestClient(server.URL, server.Client()).Validate(context.Background(), "Bearer tok-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ident.ID != "u-7" || ident.Email != "u@example.com" {
		t.Errorf("unexpected identity: %+v", ident)
	}
}

func TestClient_Validate_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"non-success status", http.StatusUnauthorized, `{"valid": false}`},
		{"valid flag false", http.StatusOK, `{"valid": false, "user": {"id": "u-7"}}`},
		{"valid flag absent", http.StatusOK, `{"user": {"id": "u-7"}}`},
		{"user absent", http.StatusOK, `{"valid": true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL, server.Client()).Validate(context.Background(), "Bearer tok")
			if !errors.Is(err, domain.ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestClient_Validate_Unavailable(t *testing.T) {
	t.Parallel()

	// Server that is already shut down: transport-level failure.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := server.Client()
	server.Close()

	_, err := newTestClient(server.URL, client).Validate(context.Background(), "Bearer tok")
	if !errors.Is(err, domain.ErrAuthServiceUnavailable) {
		t.Errorf("expected ErrAuthServiceUnavailable, got %v", err)
	}
}

func TestClient_Validate_Timeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"valid": true, "user": {"id": "u-7"}}`))
	}))
	defer server.Close()

	hc := server.Client()
	hc.Timeout = 20 * time.Millisecond

	_, err := newTestClient(server.URL, hc).Validate(context.Background(), "Bearer tok")
	if !errors.Is(err, domain.ErrAuthServiceUnavailable) {
		t.Errorf("expected ErrAuthServiceUnavailable on timeout, got %v", err)
	}
}

func TestClient_Validate_MalformedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"valid": `))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, server.Client()).Validate(context.Background(), "Bearer tok")
	if err == nil {
		t.Fatal("expected error")
	}
	// Parse failures are unclassified so the gate maps them to 500.
	if errors.Is(err, domain.ErrInvalidToken) || errors.Is(err, domain.ErrAuthServiceUnavailable) {
		t.Errorf("expected unclassified error, got %v", err)
	}
}
