package api

import (
	"fmt"
	"net/http"

	"QuotePulse/internal/usecase"
	xlogger "QuotePulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Advisory freshness hint for the hosting platform's transport cache.
// Nothing in the aggregation logic enforces it.
const quoteCacheControl = "public, max-age=300"

// QuotesHandler serves the ticker and market-prices endpoints.
type QuotesHandler struct {
	logger   *xlogger.Logger
	tickers  *usecase.TickerAggregator
	sections *usecase.SectionAggregator
}

func NewQuotesHandler(logger *xlogger.Logger, tickers *usecase.TickerAggregator, sections *usecase.SectionAggregator) *QuotesHandler {
	return &QuotesHandler{logger: logger, tickers: tickers, sections: sections}
}

func (h *QuotesHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/tickers", h.Tickers)
	g.GET("/market-prices", h.MarketPrices)
}

// Tickers returns the fixed instrument list, display-formatted. The
// response is always HTTP 200 and always schema-valid: per-symbol
// failures shrink the list, a total failure swaps in the placeholder
// payload with the error flag set.
func (h *QuotesHandler) Tickers(c echo.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("tickers aggregation panicked", xlogger.Any("panic", r))
			err = c.JSON(http.StatusOK, h.tickers.Fallback(fmt.Sprintf("%v", r)))
		}
	}()

	res := h.tickers.Aggregate(c.Request().Context())
	c.Response().Header().Set(echo.HeaderCacheControl, quoteCacheControl)
	return c.JSON(http.StatusOK, res)
}

// MarketPrices returns the raw symbol-to-delta mapping across all
// configured sections. Formatting and grouping are the caller's job.
func (h *QuotesHandler) MarketPrices(c echo.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("market prices aggregation panicked", xlogger.Any("panic", r))
			err = c.JSON(http.StatusOK, map[string]interface{}{
				"prices": map[string]interface{}{},
				"error":  fmt.Sprintf("%v", r),
			})
		}
	}()

	res := h.sections.Aggregate(c.Request().Context())
	c.Response().Header().Set(echo.HeaderCacheControl, quoteCacheControl)
	return c.JSON(http.StatusOK, res)
}
