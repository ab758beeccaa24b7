package inmemory

import (
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/swipemood/server/internal/repository/session"
)

type repo struct {
	byConn map[*websocket.Conn]session.Session
	byRoom map[string]map[*websocket.Conn]struct{}
	mu     sync.RWMutex
	logger *slog.Logger
}

func NewRepo(logger *slog.Logger) *repo {
	return &repo{
		byConn: make(map[*websocket.Conn]session.Session),
		byRoom: make(map[string]map[*websocket.Conn]struct{}),
		logger: logger,
	}
}

func (r *repo) Add(conn *websocket.Conn, sess session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byConn[conn]; ok {
		r.logger.Debug("session.inmemory.Add", "error", session.ErrSessionAlreadyExists)
		return session.ErrSessionAlreadyExists
	}

	r.byConn[conn] = sess
	conns, ok := r.byRoom[sess.RoomCode]
	if !ok {
		conns = make(map[*websocket.Conn]struct{})
		r.byRoom[sess.RoomCode] = conns
	}
	conns[conn] = struct{}{}

	return nil
}

// RemoveByConn is the disconnect path. Removing an unknown connection is a
// no-op so it can race the close-room teardown safely.
func (r *repo) RemoveByConn(conn *websocket.Conn) (session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.byConn[conn]
	if !ok {
		return session.Session{}, session.ErrSessionNotFound
	}

	delete(r.byConn, conn)
	if conns, ok := r.byRoom[sess.RoomCode]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(r.byRoom, sess.RoomCode)
		}
	}

	return sess, nil
}

func (r *repo) GetByConn(conn *websocket.Conn) (session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.byConn[conn]
	if !ok {
		return session.Session{}, session.ErrSessionNotFound
	}

	return sess, nil
}

// GetRoomConns snapshots the connections registered under the room code.
// Writes to the returned conns happen outside the registry lock.
func (r *repo) GetRoomConns(roomCode string) []*websocket.Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]*websocket.Conn, 0, len(r.byRoom[roomCode]))
	for conn := range r.byRoom[roomCode] {
		conns = append(conns, conn)
	}

	return conns
}

// GetRoomSessions is for diagnostics only; the durable roster is the room
// directory's member set, never the connected set.
func (r *repo) GetRoomSessions(roomCode string) []session.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]session.Session, 0, len(r.byRoom[roomCode]))
	for conn := range r.byRoom[roomCode] {
		sessions = append(sessions, r.byConn[conn])
	}

	return sessions
}
