package usecase

import (
	"context"
	"sync"
	"time"

	"QuotePulse/internal/domain/models"
	drepo "QuotePulse/internal/domain/repository"
	xlogger "QuotePulse/pkg/logger"
)

// QuoteStream polls all configured symbols on an interval and fans the
// resulting snapshot out to websocket subscribers and, when configured, a
// Kafka topic. The HTTP endpoints never depend on it; it is an optional
// push channel next to the polling API.
type QuoteStream struct {
	source        drepo.QuoteSource
	publisher     drepo.SnapshotPublisher
	symbols       []string
	interval      time.Duration
	maxConcurrent int
	logger        *xlogger.Logger
	metrics       drepo.Metrics

	mu     sync.Mutex
	subs   map[chan models.QuoteSnapshot]struct{}
	last   *models.QuoteSnapshot
	cancel context.CancelFunc
	done   chan struct{}
}

// NewQuoteStream creates a quote stream over the given symbol set.
// Duplicates are collapsed; one poll cycle fetches each symbol once.
func NewQuoteStream(source drepo.QuoteSource, symbols []string, interval time.Duration, maxConcurrent int, publisher drepo.SnapshotPublisher, logger *xlogger.Logger, metrics drepo.Metrics) *QuoteStream {
	seen := make(map[string]struct{}, len(symbols))
	uniq := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		uniq = append(uniq, s)
	}

	return &QuoteStream{
		source:        source,
		publisher:     publisher,
		symbols:       uniq,
		interval:      interval,
		maxConcurrent: maxConcurrent,
		logger:        logger,
		metrics:       metrics,
		subs:          make(map[chan models.QuoteSnapshot]struct{}),
	}
}

// Start launches the poll loop. The first cycle runs immediately.
func (s *QuoteStream) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.poll(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.poll(ctx)
			}
		}
	}()
}

// Stop cancels the poll loop and waits for it to exit.
func (s *QuoteStream) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Subscribe registers a snapshot channel. The latest snapshot, when one
// exists, is delivered immediately. The returned func unsubscribes.
func (s *QuoteStream) Subscribe() (<-chan models.QuoteSnapshot, func()) {
	ch := make(chan models.QuoteSnapshot, 4)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	if s.last != nil {
		ch <- *s.last
	}
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
}

// Latest returns the most recent snapshot, or nil before the first cycle.
func (s *QuoteStream) Latest() *models.QuoteSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *QuoteStream) poll(ctx context.Context) {
	quotes := fanOutFetch(ctx, s.source, s.symbols, s.maxConcurrent, s.logger, s.metrics)
	if len(quotes) == 0 {
		if s.logger != nil {
			s.logger.Warn("poll cycle produced no quotes", xlogger.Int("symbols", len(s.symbols)))
		}
		return
	}

	snapshot := models.QuoteSnapshot{
		Quotes:    quotes,
		Timestamp: time.Now().UTC(),
	}

	s.mu.Lock()
	s.last = &snapshot
	for ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
			// slow subscriber, drop this cycle
		}
	}
	s.mu.Unlock()

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, snapshot); err != nil {
			if s.logger != nil {
				s.logger.Error("snapshot publish failed", xlogger.Error(err))
			}
			if s.metrics != nil {
				s.metrics.RecordError("publish")
			}
		}
	}
}
