// Package entity defines the domain models for the stocks feature.
package entity

// Bar represents one day's OHLCV (Open, High, Low, Close, Volume) data
// for a stock symbol. The natural key is (Symbol, Date); writes are
// idempotent upserts on that pair, so at most one bar exists per symbol
// per day.
type Bar struct {
	Symbol string  // Stock ticker symbol (e.g. "AAPL"), stored uppercase
	Date   string  // Trading day in YYYY-MM-DD
	Open   float64 // Opening price
	High   float64 // Highest price of the day
	Low    float64 // Lowest price of the day
	Close  float64 // Closing price
	Volume int64   // Trading volume
}
