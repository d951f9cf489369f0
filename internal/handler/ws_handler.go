package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dnflvus-wq/engTest-sub000/internal/config"
	"github.com/dnflvus-wq/engTest-sub000/internal/middleware"
	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	ws "github.com/dnflvus-wq/engTest-sub000/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty origin list permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams achievement unlocks to connected clients.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// AchievementStream godoc
// WS /ws/achievements?token=...
// Upgrades to WebSocket and pushes the caller's unlock events as the
// achievement worker publishes them.
func (h *WSHandler) AchievementStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	raw, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	// Pong replies and unlock pushes come from different goroutines;
	// the wrapper serializes their writes.
	conn := ws.Wrap(raw)
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	pubsub := h.rdb.Subscribe(ctx, config.CacheKey.AchievementUnlockChannel(claims.UserID))
	defer pubsub.Close()

	wsLog := h.log.With().Int64("user_id", claims.UserID).Logger()
	wsLog.Info().Msg("client connected")

	// Reader loop: answer pings, end the stream when the client leaves.
	go func() {
		defer cancel()
		for {
			var msg ws.RequestEnvelope
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("unexpected close")
				} else {
					wsLog.Debug().Msg("connection closed")
				}
				return
			}
			if msg.Action == ws.ActionPing {
				_ = conn.WriteTyped(ws.PongResponse{Event: ws.EventPong})
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			var event model.UnlockEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				wsLog.Warn().Err(err).Msg("malformed unlock payload")
				continue
			}
			if err := conn.WriteTyped(ws.UnlockResponse{Event: ws.EventUnlock, Unlock: event}); err != nil {
				wsLog.Debug().Err(err).Msg("write failed, closing stream")
				return
			}
		}
	}
}
