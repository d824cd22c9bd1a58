package quoteapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(serverURL string, hc *http.Client) *Client {
	cfg := Config{BaseURL: serverURL, APIKey: "test-key", Timeout: time.Second}
	return NewClient(cfg, hc)
}

func TestClient_GetDailyBars_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("symbol") != "AAPL" {
			t.Errorf("expected symbol AAPL, got %s", q.Get("symbol"))
		}
		if q.Get("period") != "5d" {
			t.Errorf("expected period 5d, got %s", q.Get("period"))
		}
		if q.Get("apikey") != "test-key" {
			t.Errorf("expected apikey, got %s", q.Get("apikey"))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"symbol": "AAPL",
			"values": [
				{"date": "2024-01-03", "open": "150.00", "high": "155.00", "low": "149.00", "close": "154.50", "volume": "1000000"},
				{"date": "2024-01-02 00:00:00", "open": "148.00", "high": "151.00", "low": "147.50", "close": "150.00", "volume": "900000"}
			]
		}`))
	}))
	defer server.Close()

	bars, err := newTestClient(server.URL, server.Client()).GetDailyBars(context.Background(), "AAPL", "5d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Date != "2024-01-03" || bars[0].Close != 154.50 || bars[0].Volume != 1000000 {
		t.Errorf("unexpected first bar: %+v", bars[0])
	}
	// Timestamps with a time-of-day component collapse to the date.
	if bars[1].Date != "2024-01-02" {
		t.Errorf("expected normalized date, got %q", bars[1].Date)
	}
}

func TestClient_GetDailyBars_EmptySeries(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ok", "symbol": "NOPE", "values": []}`))
	}))
	defer server.Close()

	bars, err := newTestClient(server.URL, server.Client()).GetDailyBars(context.Background(), "NOPE", "5d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 0 {
		t.Errorf("expected empty series, got %d bars", len(bars))
	}
}

func TestClient_GetDailyBars_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http error status", http.StatusBadGateway, ``},
		{"provider error body", http.StatusOK, `{"status": "error", "message": "symbol not supported"}`},
		{"unparseable price", http.StatusOK, `{"status": "ok", "values": [{"date": "2024-01-02", "open": "n/a", "high": "1", "low": "1", "close": "1", "volume": "1"}]}`},
		{"unparseable date", http.StatusOK, `{"status": "ok", "values": [{"date": "Jan 2", "open": "1", "high": "1", "low": "1", "close": "1", "volume": "1"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL, server.Client()).GetDailyBars(context.Background(), "AAPL", "5d")
			if err == nil {
				t.Error("expected error")
			}
		})
	}
}
