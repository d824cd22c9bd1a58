// Command syncer refreshes stored price bars by calling the running API's
// sync endpoint for every known symbol. It is intended to be run once per
// day from an external scheduler (cron); it performs no scheduling itself.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	stocksadapters "stockwatch/internal/feature/stocks/adapters"
	"stockwatch/internal/platform/db"
	platformhttp "stockwatch/internal/platform/http"
	"stockwatch/internal/shared/ratelimiter"
)

const (
	// syncPeriod is the lookback sent for each symbol. Five days catches up
	// after weekends and market holidays without refetching full history.
	syncPeriod = "5d"

	requestTimeout = 30 * time.Second
)

func main() {
	apiKey := firstKey(os.Getenv("ADMIN_API_KEYS"))
	if apiKey == "" {
		log.Fatal("ADMIN_API_KEYS is not set, aborting sync")
	}

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	gormDB := db.OpenDB()
	barRepo := stocksadapters.NewBarRepository(gormDB)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	symbols, err := barRepo.DistinctSymbols(ctx)
	if err != nil {
		log.Fatal("failed to load symbols: ", err)
	}
	if len(symbols) == 0 {
		slog.Info("no symbols stored, nothing to sync")
		return
	}
	slog.Info("starting daily sync", "symbols", len(symbols))

	client := platformhttp.NewHTTPClient(requestTimeout)
	limiter := ratelimiter.NewRateLimiter(8, time.Minute)

	// One symbol failing must not stop the rest: log and continue.
	for _, symbol := range symbols {
		limiter.WaitIfNeeded()
		if err := syncSymbol(ctx, client, baseURL, apiKey, symbol); err != nil {
			slog.Error("sync failed", "symbol", symbol, "error", err)
			continue
		}
		slog.Info("sync ok", "symbol", symbol)
	}

	slog.Info("daily sync finished")
}

// syncSymbol calls POST /stocks/sync for one symbol using the admin key.
func syncSymbol(ctx context.Context, client *http.Client, baseURL, apiKey, symbol string) error {
	payload, err := json.Marshal(map[string]string{"symbol": symbol, "period": syncPeriod})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/stocks/sync", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("http %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// firstKey returns the first non-empty entry of a comma-separated key list.
func firstKey(keys string) string {
	for _, k := range strings.Split(keys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			return k
		}
	}
	return ""
}
