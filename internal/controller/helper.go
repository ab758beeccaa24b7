package controller

import (
	"context"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

func (c controller) generateTimeBasedId() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36)
}

// writeToConn delivers one message to one connection through the router's
// per-connection write lock. A failed write means the transport is already
// dying; it is logged and dropped, and the session is reclaimed later through
// the normal disconnect path.
func (c controller) writeToConn(ctx context.Context, conn *websocket.Conn, output *Output) {
	if err := c.wsmux.WriteJSON(conn, output); err != nil {
		c.logger.DebugContext(ctx, "dropped write to dead connection", "type", output.Type, "error", err)
	}
}

func (c controller) broadcast(ctx context.Context, conns []*websocket.Conn, output *Output) {
	for _, conn := range conns {
		c.writeToConn(ctx, conn, output)
	}
}
