package session

import "errors"

var (
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrSessionNotFound      = errors.New("session not found")
)

// Session is one live connection's in-memory presence. It carries no role:
// role is derived from the durable room on every roster computation.
type Session struct {
	Id          string
	RoomCode    string
	DisplayName string
}
