package api

import (
	"net/http"

	"QuotePulse/internal/domain/models"
	drepo "QuotePulse/internal/domain/repository"
	"QuotePulse/internal/repository"
	"QuotePulse/internal/usecase"
	xhttp "QuotePulse/pkg/http"
	xlogger "QuotePulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CreatorsHandler serves creator registry lookups and the composite
// health check.
type CreatorsHandler struct {
	logger *xlogger.Logger
	store  drepo.CreatorStore
	health *usecase.HealthService
}

func NewCreatorsHandler(logger *xlogger.Logger, store drepo.CreatorStore, health *usecase.HealthService) *CreatorsHandler {
	return &CreatorsHandler{logger: logger, store: store, health: health}
}

func (h *CreatorsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/creators/lookup", h.Lookup)
	g.POST("/creators/batch", h.BatchLookup)
	g.GET("/health", h.Health)
}

// Lookup finds one creator by platform and handle. The handle is
// normalized before hitting the store.
func (h *CreatorsHandler) Lookup(c echo.Context) error {
	req := &models.LookupRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.store == nil {
		return xhttp.AppErrorResponse(c, xhttp.InternalError("creator store not configured"))
	}

	creator, err := h.store.Lookup(c.Request().Context(), req.Platform, repository.NormalizeHandle(req.Handle))
	if err != nil {
		h.logger.Error("creator lookup failed",
			xlogger.String("platform", req.Platform),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, err)
	}
	if creator == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no creator registered for %s handle %q", req.Platform, req.Handle))
	}
	return xhttp.SuccessResponse(c, creator)
}

// BatchLookup resolves up to 100 handles in one call. The response map is
// keyed by the original input handles, not the normalized forms the store
// works with.
func (h *CreatorsHandler) BatchLookup(c echo.Context) error {
	req := &models.BatchLookupRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.store == nil {
		return xhttp.AppErrorResponse(c, xhttp.InternalError("creator store not configured"))
	}

	normalized := make([]string, len(req.Handles))
	for i, orig := range req.Handles {
		normalized[i] = repository.NormalizeHandle(orig)
	}

	found, err := h.store.BatchLookup(c.Request().Context(), req.Platform, normalized)
	if err != nil {
		h.logger.Error("creator batch lookup failed",
			xlogger.String("platform", req.Platform),
			xlogger.Int("handles", len(req.Handles)),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, err)
	}

	result := make(map[string]*models.Creator, len(req.Handles))
	for i, orig := range req.Handles {
		result[orig] = found[normalized[i]]
	}
	return xhttp.SuccessResponse(c, models.BatchLookupResponse{Creators: result})
}

// Health reports the composite registry health. The classification rides
// in the body; the status code stays 200 so probes can always read it.
func (h *CreatorsHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.health.Check(c.Request().Context()))
}
