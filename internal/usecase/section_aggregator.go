package usecase

import (
	"context"
	"time"

	"QuotePulse/internal/domain/models"
	drepo "QuotePulse/internal/domain/repository"
	xlogger "QuotePulse/pkg/logger"
)

// ErrNoSections is the user-visible message for an empty sections config.
const errNoSections = "No market sections configured"

// SectionAggregator serves the raw symbol-to-delta mapping for every
// ticker across every configured section. Grouping is presentation-side;
// this aggregator only flattens.
type SectionAggregator struct {
	source        drepo.QuoteSource
	sections      SectionsLoader
	maxConcurrent int
	logger        *xlogger.Logger
	metrics       drepo.Metrics
}

// NewSectionAggregator creates a section aggregator.
func NewSectionAggregator(source drepo.QuoteSource, sections SectionsLoader, maxConcurrent int, logger *xlogger.Logger, metrics drepo.Metrics) *SectionAggregator {
	return &SectionAggregator{
		source:        source,
		sections:      sections,
		maxConcurrent: maxConcurrent,
		logger:        logger,
		metrics:       metrics,
	}
}

// Aggregate flattens every ticker across configured sections and fetches
// each occurrence. Symbols repeated across sections are fetched once per
// occurrence; the fetch is an idempotent read, so the duplicate work is
// harmless. Config failures degrade to a well-formed payload with an
// error string, never a failed request.
func (a *SectionAggregator) Aggregate(ctx context.Context) models.MarketPricesResponse {
	start := time.Now()

	sections, err := a.sections()
	if err != nil {
		if a.logger != nil {
			a.logger.Error("sections config load failed", xlogger.Error(err))
		}
		return models.MarketPricesResponse{
			Prices:    map[string]models.PriceDelta{},
			Timestamp: time.Now().UTC(),
			Error:     "Failed to load market sections",
		}
	}

	var symbols []string
	for _, sec := range sections {
		for _, t := range sec.Tickers {
			symbols = append(symbols, t.Symbol)
		}
	}

	if len(symbols) == 0 {
		return models.MarketPricesResponse{
			Prices:    map[string]models.PriceDelta{},
			Timestamp: time.Now().UTC(),
			Error:     errNoSections,
		}
	}

	quotes := fanOutFetch(ctx, a.source, symbols, a.maxConcurrent, a.logger, a.metrics)

	prices := make(map[string]models.PriceDelta, len(quotes))
	for symbol, q := range quotes {
		prices[symbol] = models.PriceDelta{
			Price:  q.Price,
			Change: q.Change,
		}
	}

	if a.metrics != nil {
		a.metrics.RecordLatency("aggregate_sections", time.Since(start).Seconds())
	}

	return models.MarketPricesResponse{
		Prices:    prices,
		Timestamp: time.Now().UTC(),
	}
}
