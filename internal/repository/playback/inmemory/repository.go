package inmemory

import "sync"

// repo holds one current playback locator per open room. The value is absent
// until the first set and evicted when the room closes.
type repo struct {
	locators map[string]string
	mu       sync.RWMutex
}

func NewRepo() *repo {
	return &repo{locators: make(map[string]string)}
}

func (r *repo) Set(roomCode, locator string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.locators[roomCode] = locator
}

func (r *repo) Get(roomCode string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	locator, ok := r.locators[roomCode]
	return locator, ok
}

func (r *repo) Remove(roomCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.locators, roomCode)
}
