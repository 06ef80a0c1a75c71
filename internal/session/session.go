package session

import (
	"sync"
	"time"

	"github.com/MegaGrindStone/finbot-web/internal/chat"
	"github.com/MegaGrindStone/finbot-web/internal/market"
	"github.com/MegaGrindStone/finbot-web/internal/metrics"
)

// Session is the state of one mounted page: its chat panel and its sidebar. The two panels share nothing.
type Session struct {
	ID      string
	Chat    *chat.Panel
	Sidebar *market.Sidebar

	mu       sync.Mutex
	lastSeen time.Time
	streams  int
}

// New creates a session for a freshly mounted page.
func New(id string, chatPanel *chat.Panel, sidebar *market.Sidebar, now time.Time) *Session {
	return &Session{
		ID:       id,
		Chat:     chatPanel,
		Sidebar:  sidebar,
		lastSeen: now,
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.After(s.lastSeen) {
		s.lastSeen = now
	}
}

// StreamOpened records an event stream opened by the page. A page with an open stream is never idle.
func (s *Session) StreamOpened() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streams++
}

// StreamClosed records that one of the page's event streams ended at now. Idle time counts from the
// last stream closing.
func (s *Session) StreamClosed(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streams > 0 {
		s.streams--
	}
	if now.After(s.lastSeen) {
		s.lastSeen = now
	}
}

// Streaming reports whether the page has an event stream open.
func (s *Session) Streaming() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streams > 0
}

func (s *Session) idle(now time.Time, maxIdle time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streams == 0 && now.Sub(s.lastSeen) > maxIdle
}

// Store keeps the sessions of all mounted pages in memory. Nothing survives a restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewStore creates an empty store. A nil clock defaults to time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		sessions: make(map[string]*Session),
		now:      now,
	}
}

// Now returns the store's current time, for stamping sessions passed to Add.
func (st *Store) Now() time.Time {
	return st.now()
}

// Add registers s, replacing any session with the same ID.
func (st *Store) Add(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[s.ID]; !ok {
		metrics.ActivePages.Inc()
	}
	st.sessions[s.ID] = s
}

// Get returns the session with the given ID and marks it as seen.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}

	s.touch(st.now())
	return s, true
}

// Remove unmounts the session. It reports whether the session existed.
func (st *Store) Remove(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	metrics.ActivePages.Dec()
	return true
}

// Sweep removes sessions that haven't been seen for longer than maxIdle and returns their IDs. Sessions
// with an open event stream are kept however long ago they were last seen.
func (st *Store) Sweep(maxIdle time.Duration) []string {
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()

	var removed []string
	for id, s := range st.sessions {
		if s.idle(now, maxIdle) {
			delete(st.sessions, id)
			removed = append(removed, id)
		}
	}
	metrics.ActivePages.Sub(float64(len(removed)))
	return removed
}

// Len returns the number of mounted pages.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
