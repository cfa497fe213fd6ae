package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"myswamvar/backend/internal/auth"
	"myswamvar/backend/internal/hub"
	"myswamvar/backend/internal/service"
	"myswamvar/backend/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	readLimit     = 64 << 10
	pongWait      = 60 * time.Second
	pingInterval  = 30 * time.Second
	writeWait     = 10 * time.Second
	sendQueueSize = 256
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Gateway authenticates realtime connections, keeps the presence registry in
// sync, relays inbound events through the chat service, and fans results out
// to the recipient's sessions.
type Gateway struct {
	hub      *hub.Hub
	chat     *service.ChatService
	resolver auth.TokenResolver
}

func NewGateway(h *hub.Hub, chat *service.ChatService, resolver auth.TokenResolver) *Gateway {
	return &Gateway{hub: h, chat: chat, resolver: resolver}
}

type inboundEvent struct {
	Type     string `json:"type"`
	ToUserID uint   `json:"to_user_id"`
	Content  string `json:"content"`
}

// ack is the structured reply to an inbound event. Failures are replies, not
// connection errors: a rejected send must never terminate the socket.
type ack struct {
	Type    string              `json:"type"`
	OK      bool                `json:"ok"`
	Message *service.MessageDTO `json:"message,omitempty"`
	Error   string              `json:"error,omitempty"`
	Code    apperr.Code         `json:"code,omitempty"`
}

type typingPayload struct {
	UserID uint `json:"user_id"`
}

type client struct {
	gw        *Gateway
	conn      *websocket.Conn
	send      hub.Session
	userID    uint
	sessionID string
}

// Serve upgrades the connection after resolving the credential. Connections
// without a valid credential are rejected before any registry entry is made.
func (g *Gateway) Serve() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.BearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credential"})
			return
		}
		userID, err := g.resolver.Resolve(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credential"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		cl := &client{
			gw:        g,
			conn:      conn,
			send:      make(hub.Session, sendQueueSize),
			userID:    userID,
			sessionID: uuid.NewString(),
		}
		g.hub.Register(userID, cl.sessionID, cl.send)
		log.Debug().Uint("user_id", userID).Str("session_id", cl.sessionID).Msg("ws session registered")

		go cl.writePump()
		cl.readPump()
	}
}

func (c *client) readPump() {
	defer func() {
		c.gw.hub.Unregister(c.userID, c.sessionID)
		_ = c.conn.Close()
		log.Debug().Uint("user_id", c.userID).Str("session_id", c.sessionID).Msg("ws session closed")
	}()
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var evt inboundEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			// Malformed payloads get a structured reply, not a disconnect.
			c.reply(ack{Type: "ack", OK: false, Error: "invalid payload", Code: apperr.CodeInvalidArgument})
			continue
		}

		switch evt.Type {
		case "message":
			c.handleMessage(evt)
		case "typing":
			c.handleTyping(evt)
		default:
			c.reply(ack{Type: "ack", OK: false, Error: "unknown event type", Code: apperr.CodeInvalidArgument})
		}
	}
}

func (c *client) handleMessage(evt inboundEvent) {
	if evt.ToUserID == 0 || strings.TrimSpace(evt.Content) == "" {
		c.reply(ack{Type: "ack", OK: false, Error: "to_user_id and content are required", Code: apperr.CodeInvalidArgument})
		return
	}

	dto, err := c.gw.chat.SendMessage(context.Background(), c.userID, evt.ToUserID, evt.Content)
	if err != nil {
		c.reply(ack{Type: "ack", OK: false, Error: err.Error(), Code: apperr.CodeOf(err)})
		return
	}

	c.gw.hub.Push(evt.ToUserID, hub.Event{Type: "message", Payload: dto})
	c.reply(ack{Type: "ack", OK: true, Message: dto})
}

// handleTyping relays a lightweight notification to the recipient's sessions.
// Best effort: nothing is persisted and no failure is surfaced to the sender.
func (c *client) handleTyping(evt inboundEvent) {
	if evt.ToUserID == 0 {
		return
	}
	c.gw.hub.Push(evt.ToUserID, hub.Event{Type: "typing", Payload: typingPayload{UserID: c.userID}})
}

func (c *client) reply(a ack) {
	b, err := json.Marshal(a)
	if err != nil {
		return
	}
	select {
	case c.send <- b:
	default:
		// Send queue is full; the connection is on its way out.
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
