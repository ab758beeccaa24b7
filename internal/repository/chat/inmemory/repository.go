package inmemory

import (
	"sync"

	"github.com/swipemood/server/internal/repository/chat"
)

// repo holds the append-only chat log per open room, evicted on room close.
type repo struct {
	logs map[string][]chat.Message
	mu   sync.RWMutex
}

func NewRepo() *repo {
	return &repo{logs: make(map[string][]chat.Message)}
}

func (r *repo) Append(roomCode string, message chat.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs[roomCode] = append(r.logs[roomCode], message)
}

// List returns a copy of the log in append order, so a history snapshot taken
// for a joining session is not mutated by messages posted afterwards.
func (r *repo) List(roomCode string) []chat.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log := r.logs[roomCode]
	messages := make([]chat.Message, len(log))
	copy(messages, log)

	return messages
}

func (r *repo) Remove(roomCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.logs, roomCode)
}
