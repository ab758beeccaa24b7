package controller

import (
	"net/http"
)

// serveWS upgrades the connection and pumps messages through the WS router.
// The session (if one was admitted via join-room) is reclaimed on exit
// through the normal disconnect path.
func (c controller) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}

	defer func() {
		disconnectResp, err := c.roomService.DisconnectSession(r.Context(), conn)
		if err != nil {
			c.logger.WarnContext(r.Context(), "failed to disconnect session", "error", err)
			return
		}
		if disconnectResp.Session.Id != "" {
			c.logger.InfoContext(r.Context(), "session disconnected",
				"session_id", disconnectResp.Session.Id,
				"room_code", disconnectResp.Session.RoomCode,
			)
		}
	}()

	if err := c.wsmux.ServeConn(r.Context(), conn); err != nil {
		c.logger.DebugContext(r.Context(), "connection closed", "error", err)
	}
}
