package usecase

import (
	"context"
	"time"

	"QuotePulse/internal/domain/models"
	drepo "QuotePulse/internal/domain/repository"
	xlogger "QuotePulse/pkg/logger"
	"QuotePulse/pkg/util"
)

// placeholderPrice is rendered when no quote could be produced at all.
const placeholderPrice = "—"

// TickerAggregator produces the display-ready quote list for the fixed
// instrument set. Specs are injected at construction and never mutated.
type TickerAggregator struct {
	source        drepo.QuoteSource
	specs         []models.TickerSpec
	maxConcurrent int
	logger        *xlogger.Logger
	metrics       drepo.Metrics
}

// NewTickerAggregator creates a ticker aggregator for the given specs.
func NewTickerAggregator(source drepo.QuoteSource, specs []models.TickerSpec, maxConcurrent int, logger *xlogger.Logger, metrics drepo.Metrics) *TickerAggregator {
	return &TickerAggregator{
		source:        source,
		specs:         specs,
		maxConcurrent: maxConcurrent,
		logger:        logger,
		metrics:       metrics,
	}
}

// Aggregate fetches every configured instrument concurrently and composes
// the response. Instruments whose fetch failed are filtered out; a partial
// result is still a success.
func (a *TickerAggregator) Aggregate(ctx context.Context) models.TickersResponse {
	start := time.Now()

	symbols := make([]string, len(a.specs))
	for i, s := range a.specs {
		symbols[i] = s.Symbol
	}
	quotes := fanOutFetch(ctx, a.source, symbols, a.maxConcurrent, a.logger, a.metrics)

	entries := make([]models.TickerEntry, 0, len(a.specs))
	for _, spec := range a.specs {
		q, ok := quotes[spec.Symbol]
		if !ok {
			continue
		}
		entries = append(entries, models.TickerEntry{
			Symbol:        spec.DisplaySymbol(),
			Name:          spec.Name,
			Price:         util.FormatPrice(q.Price, spec.Crypto),
			Change:        util.Round2(q.Change),
			ChangePercent: util.Round2(q.ChangePercent),
		})
	}

	if a.metrics != nil {
		a.metrics.RecordLatency("aggregate_tickers", time.Since(start).Seconds())
	}

	return models.TickersResponse{
		Tickers:   entries,
		Timestamp: time.Now().UTC(),
	}
}

// Fallback builds a schema-valid response when aggregation itself blew up:
// every instrument is present with a placeholder price and zeroed changes,
// and the error flag is set. The response shape is never empty or
// malformed, even in total failure.
func (a *TickerAggregator) Fallback(errMsg string) models.TickersResponse {
	entries := make([]models.TickerEntry, 0, len(a.specs))
	for _, spec := range a.specs {
		entries = append(entries, models.TickerEntry{
			Symbol: spec.DisplaySymbol(),
			Name:   spec.Name,
			Price:  placeholderPrice,
		})
	}
	return models.TickersResponse{
		Tickers:   entries,
		Timestamp: time.Now().UTC(),
		Error:     errMsg,
	}
}
