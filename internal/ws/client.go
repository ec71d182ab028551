package ws

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"telegram_webapp/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
	readLimit  = 4096
)

// Client is one transport-level connection. It carries no game or room
// state of its own; it holds the conn_id/user binding that SessionHub sets
// on AUTHORIZE, and SessionHub's socket registry maps conn_id back to it.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
	hub  *SessionHub

	connID   uint32 // 0 until AUTHORIZE succeeds
	userID   int64
	userName string
	authMu   sync.RWMutex
}

func NewClient(conn *websocket.Conn, hub *SessionHub) *Client {
	return &Client{
		Conn: conn,
		Send: make(chan []byte, 1024),
		hub:  hub,
	}
}

func (c *Client) bind(connID uint32, userID int64, userName string) {
	c.authMu.Lock()
	defer c.authMu.Unlock()
	atomic.StoreUint32(&c.connID, connID)
	c.userID = userID
	c.userName = userName
}

func (c *Client) Authenticated() bool { return atomic.LoadUint32(&c.connID) != 0 }
func (c *Client) ConnID() uint32      { return atomic.LoadUint32(&c.connID) }

func (c *Client) UserID() int64 {
	c.authMu.RLock()
	defer c.authMu.RUnlock()
	return c.userID
}

func (c *Client) UserName() string {
	c.authMu.RLock()
	defer c.authMu.RUnlock()
	return c.userName
}

// pushEnvelope marshals and enqueues one outbound frame. The send is
// non-blocking: a slow reader must not stall the hub's single worker.
func (c *Client) pushEnvelope(messageType string, payload interface{}) {
	blob, err := json.Marshal(Envelope{MessageType: messageType, Payload: payload})
	if err != nil {
		logger.Error("ws: failed to marshal outbound envelope", "type", messageType, "err", err)
		return
	}
	select {
	case c.Send <- blob:
	default:
		logger.Warn("ws: dropping outbound frame, send buffer full", "conn_id", c.ConnID(), "type", messageType)
	}
}

// Run starts the read/write pumps and blocks until the socket closes.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.OnClose(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(readLimit)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			return
		}
		c.hub.OnFrame(c, msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
