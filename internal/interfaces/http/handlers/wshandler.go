package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/orris-inc/servicedesk/internal/infrastructure/services"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 30 * time.Second
	wsReadLimit  = 4096
)

type notificationHub interface {
	Register(userID uint, conn io.Closer) *services.Client
	Unregister(c *services.Client)
	HandleFrame(ctx context.Context, c *services.Client, actor authorization.Actor, raw []byte)
}

// WSHandler upgrades authenticated requests to the notification socket.
type WSHandler struct {
	hub      notificationHub
	upgrader websocket.Upgrader
	logger   logger.Interface
}

// NewWSHandler accepts browser origins from allowedOrigins; "*" or an
// empty list accepts any origin.
func NewWSHandler(hub notificationHub, allowedOrigins []string, log logger.Interface) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: log,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

// Connect handles GET /ws. Authentication runs in middleware, so an
// invalid token is rejected with 401 before the upgrade.
func (h *WSHandler) Connect(c *gin.Context) {
	actor, err := utils.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warnw("failed to upgrade to websocket",
			"error", err,
			"user_id", actor.UserID,
			"ip", c.ClientIP(),
		)
		return
	}

	client := h.hub.Register(actor.UserID, conn)

	go h.writePump(conn, client)
	h.readPump(conn, client, actor)
}

func (h *WSHandler) readPump(conn *websocket.Conn, client *services.Client, actor authorization.Actor) {
	defer func() {
		h.hub.Unregister(client)
		conn.Close()
	}()

	conn.SetReadLimit(wsReadLimit)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warnw("notification websocket read error",
					"error", err,
					"user_id", client.UserID,
				)
			}
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), wsWriteWait)
		h.hub.HandleFrame(ctx, client, actor, message)
		cancel()
	}
}

// writePump drains the client's send queue until the hub closes it.
func (h *WSHandler) writePump(conn *websocket.Conn, client *services.Client) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case frame, ok := <-client.Send:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				h.logger.Debugw("failed to write notification frame",
					"error", err,
					"user_id", client.UserID,
				)
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
