package websocket

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/models/dto"
)

// Handler upgrades signed-in requests to websocket subscriptions
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler. With no allowed origins only same-host pages may connect.
func NewHandler(hub *Hub, allowedOrigins []string, logger zerolog.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if strings.EqualFold(a, origin) {
				return true
			}
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

// Subscribe returns a handler that subscribes the caller's socket to channel
func (h *Handler) Subscribe(channel string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get("userID")
		uid, isUUID := userID.(uuid.UUID)
		if !ok || !isUUID {
			c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
			return
		}

		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.logger.Error().Err(err).Str("userID", uid.String()).Msg("Failed to upgrade connection to WebSocket")
			return
		}

		client := newClient(h.hub, conn, uid, channel, h.logger)
		h.hub.Register(client)

		go client.writePump()
		go client.readPump()

		h.logger.Info().
			Str("channel", channel).
			Str("userID", uid.String()).
			Str("remoteAddr", conn.RemoteAddr().String()).
			Msg("WebSocket connection established")
	}
}
