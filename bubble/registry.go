package bubble

import (
	"sync"

	"github.com/mobile-next/bubble/utils"
)

// Registry tracks live sessions so they can be torn down on exit.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates a new session registry instance
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// Register adds a session for cleanup tracking. The session removes itself
// when it closes.
func (r *Registry) Register(id string, session *Session) {
	r.mu.Lock()
	r.sessions[id] = session
	r.mu.Unlock()

	session.OnClose("registry", func() error {
		r.Remove(id)
		return nil
	})
}

// Remove forgets a session without closing it.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Count returns the number of tracked sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CleanupAll gracefully closes all registered sessions
func (r *Registry) CleanupAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for id, session := range sessions {
		if err := session.Close(); err != nil {
			utils.Verbose("Error cleaning up session %s: %v", id, err)
		}
	}
}
