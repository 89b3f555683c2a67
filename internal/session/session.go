// Package session keeps per-browser exercise state in memory. State lives
// only for the lifetime of the process; nothing is persisted.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sqlcoach/internal/grader"
	"github.com/abhisek/sqlcoach/internal/question"
)

// CookieName identifies the browser session.
const CookieName = "sqlcoach_session"

// State is one browser's exercise state. The selectors always carry valid
// enum values; Question and Result are nil until the first generation and
// submission respectively.
//
// Concurrent requests can share one State (two tabs, a double-clicked
// button); callers must hold Lock while reading or mutating it.
type State struct {
	mu sync.Mutex

	Track      question.Track
	Difficulty question.Difficulty
	Dialect    question.Dialect

	Question *question.Question

	// Answer is the last submitted SQL, echoed back into the editor.
	Answer string
	Result *grader.Result
}

// Lock acquires the per-session lock.
func (s *State) Lock() { s.mu.Lock() }

// Unlock releases the per-session lock.
func (s *State) Unlock() { s.mu.Unlock() }

// newState returns the defaults shown on first visit: the first member of
// each selector enum, no question, no result.
func newState() *State {
	return &State{
		Track:      question.Tracks()[0],
		Difficulty: question.Difficulties()[0],
		Dialect:    question.Dialects()[0],
	}
}

// SetQuestion installs a freshly generated question and clears any previous
// answer and grading result.
func (s *State) SetQuestion(q *question.Question) {
	s.Question = q
	s.Answer = ""
	s.Result = nil
}

type entry struct {
	state    *State
	lastSeen time.Time
}

// Manager maps session IDs to state. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
	maxIdle  time.Duration
}

// NewManager creates a Manager that evicts sessions idle longer than
// maxIdle. Zero disables eviction.
func NewManager(maxIdle time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*entry),
		maxIdle:  maxIdle,
	}
}

// Get returns the state for the request's session cookie, creating both the
// session and the cookie as needed. The returned ID should be written back
// via SetCookie when it differs from the request's.
func (m *Manager) Get(r *http.Request) (string, *State) {
	var id string
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		id = c.Value
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.evictLocked()

	if id != "" {
		if e, ok := m.sessions[id]; ok {
			e.lastSeen = time.Now()
			return id, e.state
		}
	}

	id = uuid.NewString()
	st := newState()
	m.sessions[id] = &entry{state: st, lastSeen: time.Now()}
	return id, st
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) evictLocked() {
	if m.maxIdle <= 0 {
		return
	}
	cutoff := time.Now().Add(-m.maxIdle)
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}

// SetCookie writes the session cookie on the response.
func SetCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
