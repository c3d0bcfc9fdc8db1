package api

import "github.com/labstack/echo/v4"

// Router composes all API handlers into one pkg/http Handler.
type Router struct {
	quotes   *QuotesHandler
	creators *CreatorsHandler
	ws       *WSHandler
}

// NewRouter creates the route composition. The websocket handler is
// optional; it is nil when streaming is disabled.
func NewRouter(quotes *QuotesHandler, creators *CreatorsHandler, ws *WSHandler) *Router {
	return &Router{quotes: quotes, creators: creators, ws: ws}
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	r.quotes.RegisterRoutes(e)
	r.creators.RegisterRoutes(e)
	if r.ws != nil {
		r.ws.RegisterRoutes(e)
	}
}
