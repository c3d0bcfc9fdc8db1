package di

import (
	"context"
	"fmt"
	"time"

	"QuotePulse/internal/domain/models"
	drepo "QuotePulse/internal/domain/repository"
	internalrepo "QuotePulse/internal/repository"
	"QuotePulse/internal/handler/api"
	"QuotePulse/internal/service/yahoo"
	"QuotePulse/internal/usecase"
	"QuotePulse/pkg/cache"
	pkgch "QuotePulse/pkg/clickhouse"
	"QuotePulse/pkg/config"
	xhttp "QuotePulse/pkg/http"
	pkgkafka "QuotePulse/pkg/kafka"
	applogger "QuotePulse/pkg/logger"
	"QuotePulse/pkg/metrics"
	"QuotePulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := "info"
	format := "json"
	if cfg.Environment == "development" {
		level = "debug"
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideQuoteCache builds the optional quote cache. Disabled cache means
// every request re-fetches from upstream.
func ProvideQuoteCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}
	redisCache, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
		cache.WithRedisAuth(cfg.Cache.Redis.Password, cfg.Cache.Redis.DB),
		cache.WithRedisPrefix("quotepulse"),
	)
	if err != nil {
		return nil, fmt.Errorf("quote cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideQuoteSource creates the Yahoo chart client, wrapped with the
// cache when one is configured.
func ProvideQuoteSource(cfg *config.Config, m drepo.Metrics, c cache.Service) drepo.QuoteSource {
	var source drepo.QuoteSource = yahoo.New(cfg.Yahoo.BaseURL,
		yahoo.WithUserAgent(cfg.Yahoo.UserAgent),
		yahoo.WithTimeout(cfg.Yahoo.Timeout),
		yahoo.WithMetrics(m),
	)
	if c != nil {
		source = internalrepo.NewCachedQuoteSource(source, c, cfg.Cache.TTL)
	}
	return source
}

// ProvideTickerSpecs converts configured tickers to domain specs.
func ProvideTickerSpecs(cfg *config.Config) []models.TickerSpec {
	specs := make([]models.TickerSpec, len(cfg.Tickers))
	for i, t := range cfg.Tickers {
		specs[i] = models.TickerSpec{
			Symbol:  t.Symbol,
			Name:    t.Name,
			Display: t.Display,
			Crypto:  t.Crypto,
		}
	}
	return specs
}

// ProvideSectionsLoader creates the sections config loader.
func ProvideSectionsLoader(cfg *config.Config) usecase.SectionsLoader {
	if cfg.SectionsFile == "" {
		return usecase.StaticSectionsLoader(nil)
	}
	return usecase.FileSectionsLoader(cfg.SectionsFile)
}

// ProvideTickerAggregator creates the fixed-list aggregator.
func ProvideTickerAggregator(source drepo.QuoteSource, specs []models.TickerSpec, cfg *config.Config, l *applogger.Logger, m drepo.Metrics) *usecase.TickerAggregator {
	return usecase.NewTickerAggregator(source, specs, cfg.Fetch.MaxConcurrent, l, m)
}

// ProvideSectionAggregator creates the sections aggregator.
func ProvideSectionAggregator(source drepo.QuoteSource, loader usecase.SectionsLoader, cfg *config.Config, l *applogger.Logger, m drepo.Metrics) *usecase.SectionAggregator {
	return usecase.NewSectionAggregator(source, loader, cfg.Fetch.MaxConcurrent, l, m)
}

// ProvideClickHouseClient creates a ClickHouse client when the creator
// registry is configured; a nil client disables the registry endpoints.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.ClickHouse.Host == "" {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := cfg.ClickHouse.Database
	if err := client.InitSchema(ctx, []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", db),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.creators (platform String, handle String, display_name String, address String, verified UInt8, created_at DateTime) ENGINE=MergeTree ORDER BY (platform, handle)", db),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.tip_events (platform String, handle String, tx_hash String, amount Float64, created_at DateTime) ENGINE=MergeTree ORDER BY (platform, handle, created_at)", db),
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideCreatorStore creates the registry store, nil when unconfigured.
func ProvideCreatorStore(client *pkgch.Client, cfg *config.Config) drepo.CreatorStore {
	if client == nil {
		return nil
	}
	return internalrepo.NewCreatorStore(client, cfg.ClickHouse.Database)
}

// ProvideHealthService creates the composite health service.
func ProvideHealthService(store drepo.CreatorStore) *usecase.HealthService {
	return usecase.NewHealthService(store)
}

// ProvideSnapshotPublisher creates the Kafka publisher when enabled.
func ProvideSnapshotPublisher(cfg *config.Config) (drepo.SnapshotPublisher, error) {
	k := cfg.Stream.Kafka
	if !cfg.Stream.Enabled || !k.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(k.Brokers),
		pkgkafka.WithCompression(k.Compression),
		pkgkafka.WithRequiredAcks(k.RequiredAcks),
		pkgkafka.WithMaxAttempts(k.MaxAttempts),
		pkgkafka.WithBatchSize(k.BatchSize),
		pkgkafka.WithBatchBytes(k.BatchBytes),
		pkgkafka.WithBatchTimeout(k.Linger),
		pkgkafka.WithTimeouts(k.WriteTimeout, k.ReadTimeout),
		pkgkafka.WithAsync(k.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaSnapshotPublisher(producer, k.Topic), nil
}

// ProvideQuoteStream creates the background poller when enabled. Its
// symbol set is the union of the fixed tickers and every section ticker.
func ProvideQuoteStream(cfg *config.Config, source drepo.QuoteSource, specs []models.TickerSpec, loader usecase.SectionsLoader, publisher drepo.SnapshotPublisher, l *applogger.Logger, m drepo.Metrics) *usecase.QuoteStream {
	if !cfg.Stream.Enabled {
		return nil
	}

	var symbols []string
	for _, s := range specs {
		symbols = append(symbols, s.Symbol)
	}
	if sections, err := loader(); err == nil {
		for _, sec := range sections {
			for _, t := range sec.Tickers {
				symbols = append(symbols, t.Symbol)
			}
		}
	}

	return usecase.NewQuoteStream(source, symbols, cfg.Stream.Interval, cfg.Fetch.MaxConcurrent, publisher, l, m)
}

// ProvideRouter composes all HTTP handlers.
func ProvideRouter(l *applogger.Logger, tickers *usecase.TickerAggregator, sections *usecase.SectionAggregator, store drepo.CreatorStore, health *usecase.HealthService, stream *usecase.QuoteStream) xhttp.Handler {
	quotes := api.NewQuotesHandler(l, tickers, sections)
	creators := api.NewCreatorsHandler(l, store, health)
	var ws *api.WSHandler
	if stream != nil {
		ws = api.NewWSHandler(l, stream)
	}
	return api.NewRouter(quotes, creators, ws)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	stream *usecase.QuoteStream,
	publisher drepo.SnapshotPublisher,
	chClient *pkgch.Client,
	quoteCache cache.Service,
) *server.App {
	return server.New(cfg, l, handler, stream, publisher, chClient, quoteCache)
}
