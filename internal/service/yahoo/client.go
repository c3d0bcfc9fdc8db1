package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"QuotePulse/internal/domain/models"
	drepo "QuotePulse/internal/domain/repository"
	xhttp "QuotePulse/pkg/http"
)

const defaultUserAgent = "Mozilla/5.0 (compatible; QuotePulse/1.0)"

// Client fetches quotes from the Yahoo Finance v8 chart endpoint.
type Client struct {
	baseURL   string
	userAgent string
	http      *xhttp.Client
	metrics   drepo.Metrics
}

// Option configures Client.
type Option func(*Client)

// New creates a Yahoo chart client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		userAgent: defaultUserAgent,
		http:      xhttp.NewClient(xhttp.WithTimeout(10 * time.Second)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithUserAgent overrides the outbound User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout sets the upstream request timeout. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = xhttp.NewClient(xhttp.WithTimeout(d))
		}
	}
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m drepo.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// --- Yahoo chart API types ---

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol             string  `json:"symbol"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
		PreviousClose      float64 `json:"previousClose"`
		ChartPreviousClose float64 `json:"chartPreviousClose"`
	} `json:"meta"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Fetch resolves one symbol to a quote using a 2-day daily window, enough
// to recover yesterday's close when the meta fields are absent.
//
// Current price prefers meta.regularMarketPrice, then the last non-null
// close. Previous close prefers meta.previousClose, then
// meta.chartPreviousClose, then the second-to-last non-null close. A zero
// in either slot counts as missing; no tracked instrument trades at
// exactly zero, so the ambiguity is accepted.
func (c *Client) Fetch(ctx context.Context, symbol string) (*models.Quote, error) {
	start := time.Now()
	if c.metrics != nil {
		c.metrics.RecordFetch("yahoo", symbol)
		defer func() {
			c.metrics.RecordLatency("yahoo_fetch", time.Since(start).Seconds())
		}()
	}

	var resp chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(symbol)),
		Headers: map[string]string{
			"User-Agent": c.userAgent,
			"Accept":     "application/json",
		},
		QueryParams: map[string][]string{
			"interval": {"1d"},
			"range":    {"2d"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart %s: upstream error: %s", symbol, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart %s: empty result", symbol)
	}

	result := resp.Chart.Result[0]
	closes := nonNullCloses(result)

	current := result.Meta.RegularMarketPrice
	if current == 0 && len(closes) > 0 {
		current = closes[len(closes)-1]
	}

	previous := result.Meta.PreviousClose
	if previous == 0 {
		previous = result.Meta.ChartPreviousClose
	}
	if previous == 0 && len(closes) >= 2 {
		previous = closes[len(closes)-2]
	}

	if current == 0 || previous == 0 {
		return nil, fmt.Errorf("chart %s: no usable price data", symbol)
	}

	change := current - previous
	return &models.Quote{
		Symbol:        symbol,
		Price:         current,
		Change:        change,
		ChangePercent: change / previous * 100,
		PreviousClose: previous,
	}, nil
}

func nonNullCloses(result chartResult) []float64 {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	raw := result.Indicators.Quote[0].Close
	closes := make([]float64, 0, len(raw))
	for _, v := range raw {
		if v != nil {
			closes = append(closes, *v)
		}
	}
	return closes
}
