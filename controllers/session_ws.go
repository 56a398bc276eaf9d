package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"ExpenseTracker/middleware"
	"ExpenseTracker/pkg/messages"
	"ExpenseTracker/pkg/token"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS handled at HTTP level; allow WS here
		return true
	},
}

const (
	sessionReadTimeout = 60 * time.Second
	sessionWriteWait   = 10 * time.Second
)

// Reasons sent in a session_ended frame.
const (
	ReasonRevoked     = "revoked"
	ReasonExpired     = "expired"
	ReasonUnavailable = "unavailable"
)

type sessionFrame struct {
	Type      string `json:"type"`
	Reason    string `json:"reason,omitempty"`
	ExpiresAt int64  `json:"expiresAt,omitempty"`
}

func endReason(err error) string {
	switch {
	case errors.Is(err, token.ErrTokenRevoked):
		return ReasonRevoked
	case errors.Is(err, token.ErrTokenExpired):
		return ReasonExpired
	default:
		return ReasonUnavailable
	}
}

// SessionWS keeps a socket open while the token stays valid.
// Client protocol (JSON messages):
//
//	<- {type: "session_active", expiresAt: unix}
//	<- {type: "session_ended", reason: "revoked" | "expired" | "unavailable"}
//
// The token comes from ?token= (browsers cannot set headers on websockets)
// or from the Authorization header.
func SessionWS(v *token.Validator, interval time.Duration, log zerolog.Logger) gin.HandlerFunc {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.Query("token"))
		if raw == "" {
			raw = middleware.BearerToken(c)
		}
		if raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": messages.TokenNotFound})
			return
		}

		claims, err := v.Validate(c.Request.Context(), raw)
		if err != nil && !v.Allow(err) {
			var se *token.StoreError
			switch {
			case errors.As(err, &se):
				c.JSON(http.StatusServiceUnavailable, gin.H{"message": messages.RevocationUnavailable})
			case errors.Is(err, token.ErrTokenExpired):
				c.JSON(http.StatusUnauthorized, gin.H{"message": messages.TokenExpired})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"message": messages.TokenInvalid})
			}
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn().Err(err).Msg("session ws: upgrade failed")
			return
		}
		defer conn.Close()

		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(sessionReadTimeout))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(sessionReadTimeout))
		})

		// the client never sends anything meaningful; reading detects disconnects
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		write := func(f sessionFrame) error {
			_ = conn.SetWriteDeadline(time.Now().Add(sessionWriteWait))
			return conn.WriteJSON(f)
		}
		if err := write(sessionFrame{Type: "session_active", ExpiresAt: claims.Expiry().Unix()}); err != nil {
			return
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-gone:
				return
			case <-c.Request.Context().Done():
				return
			case <-ticker.C:
			}

			if _, err := v.Validate(c.Request.Context(), raw); err != nil && !v.Allow(err) {
				reason := endReason(err)
				log.Debug().Str("reason", reason).Str("sub", claims.Subject).Msg("session ws: session ended")
				_ = write(sessionFrame{Type: "session_ended", Reason: reason})
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
					time.Now().Add(sessionWriteWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(sessionWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
