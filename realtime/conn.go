package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	outboxSize    = 256
	pingInterval  = 30 * time.Second
	readDeadline  = time.Minute
	closeDeadline = 20 * time.Second
)

// Conn wraps one WebSocket. Writes go through a buffered outbox drained by
// WritePump so broadcasts never block on a slow client; a full outbox marks
// the connection dead. The limiter only throttles chat and guess traffic;
// draw strokes stream freely.
type Conn struct {
	socket    *websocket.Conn
	outbox    chan []byte
	done      chan struct{}
	closeOnce sync.Once
	limiter   *rate.Limiter
}

func NewConn(socket *websocket.Conn) *Conn {
	socket.SetReadDeadline(time.Now().Add(readDeadline))
	socket.SetPongHandler(func(string) error {
		socket.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})
	return &Conn{
		socket:  socket,
		outbox:  make(chan []byte, outboxSize),
		done:    make(chan struct{}),
		limiter: rate.NewLimiter(2, 5),
	}
}

// Send marshals and enqueues an event. Returns false when the connection is
// dead or its outbox is full; the caller drops the connection then.
func (c *Conn) Send(ev Event) bool {
	data, err := json.Marshal(ev)
	if err != nil {
		return true
	}
	select {
	case <-c.done:
		return false
	case c.outbox <- data:
		return true
	default:
		return false
	}
}

// Read blocks for the next client frame.
func (c *Conn) Read() ([]byte, error) {
	_, data, err := c.socket.ReadMessage()
	if err != nil {
		return nil, err
	}
	return data, nil
}

// AllowText reports whether another chat or guess message fits in the
// sender's rate budget.
func (c *Conn) AllowText() bool {
	return c.limiter.Allow()
}

// WritePump drains the outbox and keeps the connection alive with pings.
// Runs in its own goroutine per connection.
func (c *Conn) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case data, ok := <-c.outbox:
			if !ok {
				return
			}
			if err := c.socket.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close sends a close frame and tears the socket down. Safe to call more
// than once.
func (c *Conn) Close(reason string) {
	c.closeOnce.Do(func() {
		close(c.done)
		c.socket.SetWriteDeadline(time.Now().Add(closeDeadline))
		c.socket.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))
		c.socket.Close()
	})
}
