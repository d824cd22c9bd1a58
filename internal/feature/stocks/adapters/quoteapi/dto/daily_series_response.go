// Package dto defines data transfer objects for the market data API responses.
package dto

// DailySeriesResponse represents the JSON response from the daily series endpoint.
// Numeric fields arrive as strings and are parsed by the client.
type DailySeriesResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Symbol  string `json:"symbol"`
	Values  []struct {
		Date   string `json:"date"`
		Open   string `json:"open"`
		High   string `json:"high"`
		Low    string `json:"low"`
		Close  string `json:"close"`
		Volume string `json:"volume"`
	} `json:"values"`
}
