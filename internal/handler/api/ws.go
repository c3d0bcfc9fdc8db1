package api

import (
	"net/http"
	"time"

	"QuotePulse/internal/usecase"
	xlogger "QuotePulse/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const wsWriteTimeout = 10 * time.Second

// WSHandler bridges the quote stream to websocket clients. Each client
// gets its own snapshot channel; slow clients drop cycles instead of
// stalling the poller.
type WSHandler struct {
	logger   *xlogger.Logger
	stream   *usecase.QuoteStream
	upgrader websocket.Upgrader
}

func NewWSHandler(logger *xlogger.Logger, stream *usecase.QuoteStream) *WSHandler {
	return &WSHandler{
		logger: logger,
		stream: stream,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *WSHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/quotes", h.Quotes)
}

// Quotes upgrades the connection and pushes every snapshot cycle until
// the client goes away.
func (h *WSHandler) Quotes(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	snapshots, unsubscribe := h.stream.Subscribe()
	defer unsubscribe()

	// drain client frames so close/ping handling works
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return nil
		case snap, ok := <-snapshots:
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(snap); err != nil {
				h.logger.Debug("ws client write failed", xlogger.Error(err))
				return nil
			}
		}
	}
}
