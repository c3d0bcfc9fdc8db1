package usecase

import (
	"context"
	"sync"

	"QuotePulse/internal/domain/models"
	drepo "QuotePulse/internal/domain/repository"
	xlogger "QuotePulse/pkg/logger"
)

// fanOutFetch issues one fetch per symbol occurrence, all concurrently,
// and waits for every fetch to settle. Failures are logged and dropped;
// the returned map holds only symbols that resolved. Concurrency is
// bounded so a long symbol list cannot flood the upstream source.
func fanOutFetch(ctx context.Context, source drepo.QuoteSource, symbols []string, limit int, logger *xlogger.Logger, metrics drepo.Metrics) map[string]models.Quote {
	if limit <= 0 {
		limit = 8
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sem  = make(chan struct{}, limit)
		outs = make(map[string]models.Quote, len(symbols))
	)

	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			q, err := source.Fetch(ctx, symbol)
			if err != nil {
				if logger != nil {
					logger.Warn("quote fetch failed",
						xlogger.String("symbol", symbol),
						xlogger.Error(err),
					)
				}
				if metrics != nil {
					metrics.RecordError("fetch")
				}
				return
			}

			mu.Lock()
			outs[symbol] = *q
			mu.Unlock()

			if metrics != nil {
				metrics.RecordLastPrice(symbol, q.Price)
			}
		}(symbol)
	}

	wg.Wait()
	return outs
}
