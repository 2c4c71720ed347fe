package live

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/chessmate-app/chessmate/internal/domain"
	"github.com/chessmate-app/chessmate/internal/infrastructure/ws"
)

// Handler upgrades /ws connections and hands them to the hub. Clients bind to
// a room afterwards with a joinRoom event, so the upgrade itself carries no
// parameters.
type Handler struct {
	core           *ws.Core
	userRepository domain.UserRepository
	upgrader       websocket.Upgrader
	logger         *zap.SugaredLogger
}

func NewHandler(core *ws.Core, userRepository domain.UserRepository, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		core:           core,
		userRepository: userRepository,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The mobile and terminal clients connect from arbitrary origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(conn, h.userRepository, h.logger)

	go client.WritePump()
	// The request context dies when this handler returns, so the pump runs on
	// its own context for the lifetime of the connection.
	go client.ReadPump(context.Background(), h.core)
}
