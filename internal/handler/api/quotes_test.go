package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"QuotePulse/internal/domain/models"
	"QuotePulse/internal/usecase"

	"github.com/labstack/echo/v4"
)

type stubQuoteSource struct {
	quotes map[string]models.Quote
}

func (s *stubQuoteSource) Fetch(_ context.Context, symbol string) (*models.Quote, error) {
	q, ok := s.quotes[symbol]
	if !ok {
		return nil, errors.New("upstream status 500")
	}
	return &q, nil
}

func newQuotesEnv(t *testing.T, source *stubQuoteSource, specs []models.TickerSpec, sections []models.Section) *echo.Echo {
	t.Helper()
	e := echo.New()
	h := NewQuotesHandler(
		testLogger(t),
		usecase.NewTickerAggregator(source, specs, 4, nil, nil),
		usecase.NewSectionAggregator(source, usecase.StaticSectionsLoader(sections), 4, nil, nil),
	)
	h.RegisterRoutes(e)
	return e
}

func TestTickersEndpoint(t *testing.T) {
	source := &stubQuoteSource{quotes: map[string]models.Quote{
		"GC=F":    {Symbol: "GC=F", Price: 2411.3, Change: 12.5, ChangePercent: 0.52},
		"BTC-USD": {Symbol: "BTC-USD", Price: 64123.77, Change: 1200, ChangePercent: 1.9},
	}}
	specs := []models.TickerSpec{
		{Symbol: "GC=F", Name: "Gold", Display: "GOLD"},
		{Symbol: "URA", Name: "Uranium ETF"},
		{Symbol: "BTC-USD", Name: "Bitcoin", Display: "BTC", Crypto: true},
	}
	e := newQuotesEnv(t, source, specs, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/tickers", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cc := rec.Header().Get(echo.HeaderCacheControl); cc != "public, max-age=300" {
		t.Fatalf("unexpected cache control %q", cc)
	}

	var body models.TickersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error != "" {
		t.Fatalf("partial failure must not set error, got %q", body.Error)
	}
	if len(body.Tickers) != 2 {
		t.Fatalf("expected failed symbol dropped, got %d entries", len(body.Tickers))
	}
	if body.Tickers[0].Symbol != "GOLD" || body.Tickers[1].Symbol != "BTC" {
		t.Fatalf("unexpected order or display symbols: %+v", body.Tickers)
	}
	if body.Tickers[1].Price != "64,124" {
		t.Fatalf("unexpected crypto formatting: %q", body.Tickers[1].Price)
	}
}

func TestMarketPricesEndpoint(t *testing.T) {
	source := &stubQuoteSource{quotes: map[string]models.Quote{
		"GC=F": {Symbol: "GC=F", Price: 2411.3, Change: 12.5},
	}}
	sections := []models.Section{
		{Label: "Precious Metals", Tickers: []models.TickerSpec{
			{Symbol: "GC=F", Name: "Gold"},
			{Symbol: "SI=F", Name: "Silver"},
		}},
	}
	e := newQuotesEnv(t, source, nil, sections)

	req := httptest.NewRequest(http.MethodGet, "/api/market-prices", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body models.MarketPricesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Prices) != 1 {
		t.Fatalf("expected only resolved symbols, got %d", len(body.Prices))
	}
	if d, ok := body.Prices["GC=F"]; !ok || d.Price != 2411.3 || d.Change != 12.5 {
		t.Fatalf("unexpected delta: %+v", body.Prices)
	}
}

func TestMarketPricesEmptyConfigStillHTTP200(t *testing.T) {
	e := newQuotesEnv(t, &stubQuoteSource{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/market-prices", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("config errors ride in the body, expected 200, got %d", rec.Code)
	}
	var body models.MarketPricesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error != "No market sections configured" {
		t.Fatalf("unexpected error message %q", body.Error)
	}
}
