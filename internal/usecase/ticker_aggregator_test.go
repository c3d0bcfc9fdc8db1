package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"QuotePulse/internal/domain/models"
)

// fakeQuoteSource serves canned quotes per symbol and records call counts.
type fakeQuoteSource struct {
	mu     sync.Mutex
	quotes map[string]models.Quote
	fails  map[string]error
	calls  map[string]int
}

func newFakeQuoteSource() *fakeQuoteSource {
	return &fakeQuoteSource{
		quotes: make(map[string]models.Quote),
		fails:  make(map[string]error),
		calls:  make(map[string]int),
	}
}

func (f *fakeQuoteSource) Fetch(_ context.Context, symbol string) (*models.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[symbol]++
	if err, ok := f.fails[symbol]; ok {
		return nil, err
	}
	q, ok := f.quotes[symbol]
	if !ok {
		return nil, errors.New("unknown symbol")
	}
	return &q, nil
}

func (f *fakeQuoteSource) callCount(symbol string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[symbol]
}

var testSpecs = []models.TickerSpec{
	{Symbol: "GC=F", Name: "Gold", Display: "GOLD"},
	{Symbol: "SI=F", Name: "Silver", Display: "SILVER"},
	{Symbol: "URA", Name: "Uranium ETF"},
	{Symbol: "^GSPC", Name: "S&P 500", Display: "SPX"},
	{Symbol: "BTC-USD", Name: "Bitcoin", Display: "BTC", Crypto: true},
}

func TestTickerAggregatePartialFailure(t *testing.T) {
	source := newFakeQuoteSource()
	source.quotes["GC=F"] = models.Quote{Symbol: "GC=F", Price: 2411.30, Change: 12.5, ChangePercent: 0.52}
	source.quotes["SI=F"] = models.Quote{Symbol: "SI=F", Price: 31.18, Change: -0.22, ChangePercent: -0.7}
	source.quotes["^GSPC"] = models.Quote{Symbol: "^GSPC", Price: 5631.22, Change: 40.11, ChangePercent: 0.72}
	source.quotes["BTC-USD"] = models.Quote{Symbol: "BTC-USD", Price: 64123.77, Change: 1200, ChangePercent: 1.9}
	source.fails["URA"] = errors.New("upstream status 500")

	agg := NewTickerAggregator(source, testSpecs, 4, nil, nil)
	resp := agg.Aggregate(context.Background())

	if len(resp.Tickers) != 4 {
		t.Fatalf("expected 4 entries after one failure, got %d", len(resp.Tickers))
	}
	if resp.Error != "" {
		t.Fatalf("partial failure must not set error, got %q", resp.Error)
	}
	for _, e := range resp.Tickers {
		if e.Symbol == "URA" {
			t.Fatal("failed symbol must be dropped from the response")
		}
	}
	if resp.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}
}

func TestTickerAggregatePreservesConfigOrder(t *testing.T) {
	source := newFakeQuoteSource()
	for _, s := range testSpecs {
		source.quotes[s.Symbol] = models.Quote{Symbol: s.Symbol, Price: 100}
	}

	agg := NewTickerAggregator(source, testSpecs, 2, nil, nil)
	resp := agg.Aggregate(context.Background())

	if len(resp.Tickers) != len(testSpecs) {
		t.Fatalf("expected %d entries, got %d", len(testSpecs), len(resp.Tickers))
	}
	want := []string{"GOLD", "SILVER", "URA", "SPX", "BTC"}
	for i, e := range resp.Tickers {
		if e.Symbol != want[i] {
			t.Fatalf("entry %d: expected %s, got %s", i, want[i], e.Symbol)
		}
	}
}

func TestTickerAggregateFormatting(t *testing.T) {
	source := newFakeQuoteSource()
	source.quotes["BTC-USD"] = models.Quote{Symbol: "BTC-USD", Price: 64123.77, Change: 1234.5678, ChangePercent: 1.9612}
	source.quotes["GC=F"] = models.Quote{Symbol: "GC=F", Price: 2411.3, Change: 12.504, ChangePercent: 0.521}

	specs := []models.TickerSpec{
		{Symbol: "GC=F", Name: "Gold", Display: "GOLD"},
		{Symbol: "BTC-USD", Name: "Bitcoin", Display: "BTC", Crypto: true},
	}
	agg := NewTickerAggregator(source, specs, 2, nil, nil)
	resp := agg.Aggregate(context.Background())

	if len(resp.Tickers) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(resp.Tickers))
	}
	gold, btc := resp.Tickers[0], resp.Tickers[1]
	if gold.Price != "2,411.30" {
		t.Errorf("expected gold price 2,411.30, got %s", gold.Price)
	}
	if gold.Change != 12.5 {
		t.Errorf("expected gold change rounded to 12.5, got %v", gold.Change)
	}
	if btc.Price != "64,124" {
		t.Errorf("expected crypto price without decimals, got %s", btc.Price)
	}
}

func TestTickerFallbackShape(t *testing.T) {
	agg := NewTickerAggregator(newFakeQuoteSource(), testSpecs, 2, nil, nil)
	resp := agg.Fallback("Failed to fetch ticker data")

	if resp.Error != "Failed to fetch ticker data" {
		t.Fatalf("unexpected error message %q", resp.Error)
	}
	if len(resp.Tickers) != len(testSpecs) {
		t.Fatalf("fallback must include every instrument, got %d", len(resp.Tickers))
	}
	for _, e := range resp.Tickers {
		if e.Price != "—" {
			t.Errorf("entry %s: expected placeholder price, got %q", e.Symbol, e.Price)
		}
		if e.Change != 0 || e.ChangePercent != 0 {
			t.Errorf("entry %s: fallback changes must be zero", e.Symbol)
		}
	}
}

func TestTickerAggregateTotalFailure(t *testing.T) {
	source := newFakeQuoteSource()
	for _, s := range testSpecs {
		source.fails[s.Symbol] = errors.New("connection refused")
	}

	agg := NewTickerAggregator(source, testSpecs, 2, nil, nil)
	resp := agg.Aggregate(context.Background())

	if len(resp.Tickers) != 0 {
		t.Fatalf("expected empty list when every fetch fails, got %d entries", len(resp.Tickers))
	}
	if resp.Tickers == nil {
		t.Fatal("tickers must be an empty list, not null")
	}
}
