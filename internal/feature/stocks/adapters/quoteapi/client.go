package quoteapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"stockwatch/internal/feature/stocks/adapters/quoteapi/dto"
	"stockwatch/internal/feature/stocks/domain/entity"
	"stockwatch/internal/feature/stocks/usecase"
)

// Client fetches daily bar series from the market data API.
type Client struct {
	cfg    Config
	client *http.Client
}

var _ usecase.QuoteRepository = (*Client)(nil)

// NewClient creates a Client with the given configuration and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// GetDailyBars fetches the daily series for symbol over the given lookback
// period (e.g. "5d", "1mo") and returns it as domain bars. An empty series
// is returned as an empty slice, not an error; classification is left to
// the caller.
func (c *Client) GetDailyBars(ctx context.Context, symbol, period string) ([]entity.Bar, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("period", period)
	q.Set("apikey", c.cfg.APIKey)

	u := fmt.Sprintf("%s/daily?%s", c.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("quote api http %d", res.StatusCode)
	}

	var body dto.DailySeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("quote api: %s", body.Message)
	}

	bars := make([]entity.Bar, 0, len(body.Values))
	for _, v := range body.Values {
		// Normalize timestamps that include a time-of-day component.
		d, err := time.Parse("2006-01-02", v.Date)
		if err != nil {
			d, err = time.Parse("2006-01-02 15:04:05", v.Date)
			if err != nil {
				return nil, fmt.Errorf("parse date %q: %w", v.Date, err)
			}
		}
		o, err := strconv.ParseFloat(v.Open, 64)
		if err != nil {
			return nil, fmt.Errorf("parse open %q: %w", v.Open, err)
		}
		h, err := strconv.ParseFloat(v.High, 64)
		if err != nil {
			return nil, fmt.Errorf("parse high %q: %w", v.High, err)
		}
		l, err := strconv.ParseFloat(v.Low, 64)
		if err != nil {
			return nil, fmt.Errorf("parse low %q: %w", v.Low, err)
		}
		cl, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", v.Close, err)
		}
		vol, err := strconv.ParseInt(v.Volume, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse volume %q: %w", v.Volume, err)
		}

		bars = append(bars, entity.Bar{
			Date:   d.Format("2006-01-02"),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  cl,
			Volume: vol,
		})
	}
	return bars, nil
}
