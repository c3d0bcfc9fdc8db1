package repository

import (
	"context"
	"time"

	"QuotePulse/internal/domain/models"
	drepo "QuotePulse/internal/domain/repository"
	"QuotePulse/pkg/cache"
)

// CachedQuoteSource decorates a QuoteSource with a freshness window.
// Within the window repeated fetches for a symbol are served from cache;
// only successful quotes are cached, so a failing symbol is retried on
// every request.
type CachedQuoteSource struct {
	inner drepo.QuoteSource
	cache cache.Service
	ttl   time.Duration
}

// NewCachedQuoteSource wraps source with the given cache and TTL.
func NewCachedQuoteSource(inner drepo.QuoteSource, c cache.Service, ttl time.Duration) *CachedQuoteSource {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedQuoteSource{inner: inner, cache: c, ttl: ttl}
}

func (s *CachedQuoteSource) Fetch(ctx context.Context, symbol string) (*models.Quote, error) {
	key := cache.Key("quote", symbol)

	var cached models.Quote
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	q, err := s.inner.Fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}

	// best-effort write
	_ = s.cache.Set(ctx, key, q, s.ttl)
	return q, nil
}
