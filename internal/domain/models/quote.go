package models

import "time"

// TickerSpec identifies one tracked instrument. Specs come from static
// configuration and are never mutated at runtime.
type TickerSpec struct {
	Symbol  string `yaml:"symbol" json:"symbol"`
	Name    string `yaml:"name" json:"name"`
	Display string `yaml:"display,omitempty" json:"display,omitempty"`
	Crypto  bool   `yaml:"crypto,omitempty" json:"-"`
}

// DisplaySymbol returns the symbol shown to users, falling back to the
// fetch symbol when no display override is configured.
func (t TickerSpec) DisplaySymbol() string {
	if t.Display != "" {
		return t.Display
	}
	return t.Symbol
}

// Section is a named, ordered grouping of ticker specs. Grouping is for
// presentation only; it has no effect on fetch behavior.
type Section struct {
	Label   string       `yaml:"label" json:"label"`
	Tickers []TickerSpec `yaml:"tickers" json:"tickers"`
}

// Quote is a single point-in-time price observation. Built fresh per
// request, never persisted.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	PreviousClose float64 `json:"previousClose"`
}

// PriceDelta is the reduced quote shape returned by the sections endpoint.
// Formatting is deferred to the caller.
type PriceDelta struct {
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
}

// TickerEntry is one display-ready row in the tickers response. Price is
// pre-formatted per instrument rules (crypto without decimals, everything
// else with two).
type TickerEntry struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         string  `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// TickersResponse is the payload of GET /api/tickers. The shape is stable
// even in total failure: Error is set and Tickers carries placeholders.
type TickersResponse struct {
	Tickers   []TickerEntry `json:"tickers"`
	Timestamp time.Time     `json:"timestamp"`
	Error     string        `json:"error,omitempty"`
}

// MarketPricesResponse is the payload of GET /api/market-prices. Symbols
// whose fetch failed are omitted from Prices entirely.
type MarketPricesResponse struct {
	Prices    map[string]PriceDelta `json:"prices"`
	Timestamp time.Time             `json:"timestamp"`
	Error     string                `json:"error,omitempty"`
}

// QuoteSnapshot is one poll cycle's aggregated result, pushed to websocket
// subscribers and published to Kafka when streaming is enabled.
type QuoteSnapshot struct {
	Quotes    map[string]Quote `json:"quotes"`
	Timestamp time.Time        `json:"timestamp"`
}
