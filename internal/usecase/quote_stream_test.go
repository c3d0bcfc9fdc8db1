package usecase

import (
	"context"
	"testing"
	"time"

	"QuotePulse/internal/domain/models"
)

func TestQuoteStreamDedupsSymbols(t *testing.T) {
	source := newFakeQuoteSource()
	source.quotes["GC=F"] = models.Quote{Symbol: "GC=F", Price: 2411.3}
	source.quotes["SI=F"] = models.Quote{Symbol: "SI=F", Price: 31.18}

	stream := NewQuoteStream(source, []string{"GC=F", "SI=F", "GC=F"}, time.Hour, 2, nil, nil, nil)
	stream.poll(context.Background())

	if got := source.callCount("GC=F"); got != 1 {
		t.Fatalf("expected deduped symbol fetched once per cycle, got %d", got)
	}
	snap := stream.Latest()
	if snap == nil {
		t.Fatal("latest snapshot not recorded after poll")
	}
	if len(snap.Quotes) != 2 {
		t.Fatalf("expected 2 quotes in snapshot, got %d", len(snap.Quotes))
	}
}

func TestQuoteStreamSubscribeReplaysLatest(t *testing.T) {
	source := newFakeQuoteSource()
	source.quotes["BTC-USD"] = models.Quote{Symbol: "BTC-USD", Price: 64000}

	stream := NewQuoteStream(source, []string{"BTC-USD"}, time.Hour, 1, nil, nil, nil)
	stream.poll(context.Background())

	ch, unsubscribe := stream.Subscribe()
	defer unsubscribe()

	select {
	case snap := <-ch:
		if q, ok := snap.Quotes["BTC-USD"]; !ok || q.Price != 64000 {
			t.Fatalf("unexpected replayed snapshot: %+v", snap)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the latest snapshot")
	}
}

func TestQuoteStreamStartAndStop(t *testing.T) {
	source := newFakeQuoteSource()
	source.quotes["URA"] = models.Quote{Symbol: "URA", Price: 29.4}

	stream := NewQuoteStream(source, []string{"URA"}, 50*time.Millisecond, 1, nil, nil, nil)
	stream.Start(context.Background())

	deadline := time.After(2 * time.Second)
	for stream.Latest() == nil {
		select {
		case <-deadline:
			t.Fatal("first poll cycle never completed")
		case <-time.After(10 * time.Millisecond):
		}
	}
	stream.Stop()

	calls := source.callCount("URA")
	time.Sleep(100 * time.Millisecond)
	if source.callCount("URA") != calls {
		t.Fatal("poll loop kept running after Stop")
	}
}

func TestQuoteStreamEmptyCycleKeepsLastSnapshot(t *testing.T) {
	source := newFakeQuoteSource()
	source.quotes["GC=F"] = models.Quote{Symbol: "GC=F", Price: 2411.3}

	stream := NewQuoteStream(source, []string{"GC=F"}, time.Hour, 1, nil, nil, nil)
	stream.poll(context.Background())

	source.mu.Lock()
	delete(source.quotes, "GC=F")
	source.mu.Unlock()

	stream.poll(context.Background())
	snap := stream.Latest()
	if snap == nil || len(snap.Quotes) != 1 {
		t.Fatal("failed cycle must not clobber the last good snapshot")
	}
}
