package websocketManager

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// the admin dashboard may be served from another origin
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	HandshakeTimeout: 10 * time.Second,
}

// WebSocketHandler upgrades HTTP requests into manager clients.
type WebSocketHandler struct {
	manager *Manager
}

func NewWebSocketHandler(manager *Manager) *WebSocketHandler {
	return &WebSocketHandler{manager: manager}
}

func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already answered the request.
		h.manager.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	client := h.manager.Attach(conn)
	h.manager.logger.Info("dashboard connected",
		zap.String("client_id", client.ID),
		zap.String("remote", c.ClientIP()))
}

// ProvideWebSocketManager starts the manager loop with the application and
// stops it on shutdown.
func ProvideWebSocketManager(lc fx.Lifecycle, clock clockwork.Clock, logger *zap.Logger) *Manager {
	manager := NewManager(clock, logger)
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go manager.Run(ctx)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-manager.done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
	return manager
}

var Module = fx.Module("websocket",
	fx.Provide(
		ProvideWebSocketManager,
		NewWebSocketHandler,
	),
)
