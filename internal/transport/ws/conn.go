package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// conn adapts a websocket connection to realtime.Sink. gorilla allows one
// concurrent writer, so data frames are serialized by mu; control frames
// and Close may run concurrently with them.
type conn struct {
	ws        *websocket.Conn
	writeWait time.Duration

	mu sync.Mutex
}

func newConn(c *websocket.Conn, writeWait time.Duration) *conn {
	return &conn{ws: c, writeWait: writeWait}
}

// Write sends one text frame, honoring the ctx deadline.
func (c *conn) Write(ctx context.Context, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeLocked(ctx, msg)
}

// hold blocks Write until the returned release is called. Frames sent with
// writeLocked in between go out before anything queued by the session.
func (c *conn) hold() (release func()) {
	c.mu.Lock()
	return c.mu.Unlock
}

func (c *conn) writeLocked(ctx context.Context, msg []byte) error {
	deadline := time.Now().Add(c.writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.ws.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, msg)
}

// ping sends a ping control frame.
func (c *conn) ping() error {
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.writeWait))
}

// Close tears down the underlying connection, unblocking any pending Write
// and the read loop.
func (c *conn) Close() error {
	return c.ws.Close()
}
