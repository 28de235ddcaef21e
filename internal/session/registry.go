package session

import (
	"sync"
	"time"
)

const janitorInterval = 30 * time.Second

// Registry maps the ID of an outbound paginated message to its session.
// Sessions expire after a fixed inactivity window; expiry is enforced both
// by a janitor sweep and lazily on access.
type Registry struct {
	ttl      time.Duration
	onExpire func(*Session)

	mu       sync.Mutex
	sessions map[string]*Session
	done     chan struct{}
	once     sync.Once
}

// NewRegistry starts the janitor. onExpire runs once per session after it
// expires, so the host can render the navigation controls as disabled;
// it may be nil.
func NewRegistry(ttl time.Duration, onExpire func(*Session)) *Registry {
	r := &Registry{
		ttl:      ttl,
		onExpire: onExpire,
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}
	go r.janitor()
	return r
}

func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.MessageID] = s
}

// Get returns the live session for a message, lazily expiring it when the
// inactivity window has already passed.
func (r *Registry) Get(messageID string) (*Session, bool) {
	r.mu.Lock()
	s, ok := r.sessions[messageID]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}

	if s.idleSince(time.Now(), r.ttl) {
		r.expire(s)
		return nil, false
	}
	return s, true
}

func (r *Registry) expire(s *Session) {
	r.mu.Lock()
	_, present := r.sessions[s.MessageID]
	delete(r.sessions, s.MessageID)
	r.mu.Unlock()

	if !present {
		return
	}
	s.Expire()
	if r.onExpire != nil {
		r.onExpire(s)
	}
}

func (r *Registry) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case now := <-ticker.C:
			r.sweep(now)
		}
	}
}

func (r *Registry) sweep(now time.Time) {
	r.mu.Lock()
	var idle []*Session
	for _, s := range r.sessions {
		if s.idleSince(now, r.ttl) {
			idle = append(idle, s)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		r.expire(s)
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) Stop() {
	r.once.Do(func() {
		close(r.done)
	})
}
