package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// SessionHeader carries the client session id on the websocket handshake.
const SessionHeader = "X-Client-Session"

// Conn is the client end of the server websocket. Inbound text frames are
// queued in arrival order for the session to drain; outbound tokens go
// through a bounded send queue drained by the write pump.
type Conn struct {
	ws       *websocket.Conn
	send     chan []byte
	inbound  chan []byte
	done     chan struct{}
	once     sync.Once
	timeouts Timeouts
	log      *zap.SugaredLogger
}

// Dial opens the websocket at cfg.ServerURL and starts its pumps.
func Dial(ctx context.Context, cfg *Config, sessionID string, log *zap.SugaredLogger) (*Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
	}
	header := http.Header{}
	header.Set(SessionHeader, sessionID)

	ws, _, err := dialer.DialContext(ctx, cfg.ServerURL, header)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", cfg.ServerURL, err)
	}

	c := NewConn(ws, cfg.SendBuffer, cfg.InboundBuffer, cfg.Timeouts(), log)
	go c.writePump()
	go c.readPump()
	return c, nil
}

// NewConn wraps an established websocket. The caller starts the pumps.
func NewConn(ws *websocket.Conn, sendBuffer, inboundBuffer int, t Timeouts, log *zap.SugaredLogger) *Conn {
	return &Conn{
		ws:       ws,
		send:     make(chan []byte, sendBuffer),
		inbound:  make(chan []byte, inboundBuffer),
		done:     make(chan struct{}),
		timeouts: t,
		log:      log,
	}
}

// Send queues one outbound token without blocking.
func (c *Conn) Send(token string) error {
	select {
	case <-c.done:
		return ErrNotConnected
	default:
	}
	select {
	case c.send <- []byte(token):
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrSendQueueFull, token)
	}
}

// Inbound is the ordered stream of received text frames.
func (c *Conn) Inbound() <-chan []byte { return c.inbound }

// Done is closed once the connection is gone.
func (c *Conn) Done() <-chan struct{} { return c.done }

// Close sends a normal close frame and tears the connection down.
func (c *Conn) Close() {
	deadline := time.Now().Add(c.timeouts.WriteWait)
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client shutting down"), deadline)
	c.shutdown()
}

func (c *Conn) shutdown() {
	c.once.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

// writePump owns all data writes to the socket.
func (c *Conn) writePump() {
	ticker := time.NewTicker(c.timeouts.PingPeriod)
	defer ticker.Stop()
	defer c.shutdown()
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.timeouts.WriteWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.log.Warnw("websocket write", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.timeouts.WriteWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.Warnw("websocket ping", "error", err)
				return
			}
		}
	}
}

// readPump queues inbound frames. It blocks rather than drop when the
// queue is full, since a lost event would desync the world.
func (c *Conn) readPump() {
	defer c.shutdown()
	c.ws.SetReadLimit(1 << 20) // 1MB
	_ = c.ws.SetReadDeadline(time.Now().Add(c.timeouts.PongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.timeouts.PongWait))
	})

	for {
		kind, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Infow("websocket closed by server")
			} else {
				select {
				case <-c.done:
				default:
					c.log.Warnw("websocket read", "error", err)
				}
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(c.timeouts.PongWait))
		if kind != websocket.TextMessage {
			continue
		}
		select {
		case c.inbound <- payload:
		case <-c.done:
			return
		}
	}
}
