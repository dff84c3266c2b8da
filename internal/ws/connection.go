package ws

import (
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
	sendBuffer   = 16
)

// Conn is a feed subscriber. The server only pushes; inbound frames are
// drained to keep control messages flowing.
type Conn struct {
	socket  *websocket.Conn
	send    chan []byte
	done    chan struct{}
	logger  *zap.Logger
	onClose func(*Conn)
}

func newConn(socket *websocket.Conn, logger *zap.Logger, onClose func(*Conn)) *Conn {
	return &Conn{
		socket:  socket,
		send:    make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
		logger:  logger,
		onClose: onClose,
	}
}

func (c *Conn) serve() {
	go c.writePump()
	c.readPump()
}

func (c *Conn) readPump() {
	defer c.cleanup()
	c.socket.SetReadLimit(512)
	c.socket.SetReadDeadline(time.Now().Add(pongTimeout))
	c.socket.SetPongHandler(func(string) error {
		c.socket.SetReadDeadline(time.Now().Add(pongTimeout))
		return nil
	})

	for {
		if _, _, err := c.socket.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Conn) enqueue(msg []byte) {
	select {
	case c.send <- msg:
	default:
		c.logger.Warn("dropping feed event, subscriber buffer full")
	}
}

func (c *Conn) write(messageType int, data []byte) error {
	c.socket.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.socket.WriteMessage(messageType, data)
}

func (c *Conn) cleanup() {
	close(c.done)
	_ = c.socket.Close()
	if c.onClose != nil {
		c.onClose(c)
	}
}
