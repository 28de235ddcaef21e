// Package session holds the ephemeral pagination state for browse views.
// Sessions live in process memory only; a restart drops them.
package session

import (
	"sync"
	"time"

	"github.com/nguyentranbao-ct/wishlist-bot/internal/models"
	"github.com/nguyentranbao-ct/wishlist-bot/internal/repo/store"
)

// Session tracks which page of a channel's wishlist one requester is
// viewing. Only the requester may drive navigation; the rendered content
// stays visible to the whole channel. Item content is never cached here:
// every navigation re-reads the store.
type Session struct {
	MessageID   string
	RequesterID string
	Scope       store.Scope
	PageSize    int

	mu         sync.Mutex
	page       int
	totalPages int
	expired    bool
	lastActive time.Time
}

func New(messageID, requesterID string, scope store.Scope, pageSize, totalPages int) *Session {
	return &Session{
		MessageID:   messageID,
		RequesterID: requesterID,
		Scope:       scope,
		PageSize:    pageSize,
		page:        0,
		totalPages:  totalPages,
		lastActive:  time.Now(),
	}
}

// Advance applies one navigation action. recount is only consulted when the
// action can move the page: a press against the boundary is a no-op and does
// not touch the store. When the collection shrank since the last render the
// page is clamped before it is returned.
func (s *Session) Advance(action string, recount func() int) (page, totalPages int, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expired {
		return s.page, s.totalPages, false
	}
	s.lastActive = time.Now()

	switch action {
	case models.ActionNext:
		if s.page >= s.totalPages-1 {
			return s.page, s.totalPages, false
		}
	case models.ActionPrev:
		if s.page <= 0 {
			return s.page, s.totalPages, false
		}
	default:
		return s.page, s.totalPages, false
	}

	s.totalPages = recount()
	if s.totalPages < 1 {
		s.totalPages = 1
	}

	if action == models.ActionNext {
		s.page++
	} else {
		s.page--
	}
	s.page = store.ClampPage(s.page, s.totalPages)

	return s.page, s.totalPages, true
}

// View returns the current page bounds without mutating anything.
func (s *Session) View() (page, totalPages int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page, s.totalPages
}

// Controls reports which navigation affordances should be enabled.
func (s *Session) Controls() models.Controls {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expired {
		return models.Controls{}
	}
	return models.Controls{
		PrevEnabled: s.page > 0,
		NextEnabled: s.page < s.totalPages-1,
	}
}

// Expire is terminal: further navigation is silently ignored.
func (s *Session) Expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired = true
}

func (s *Session) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expired
}

func (s *Session) idleSince(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive) >= ttl
}
