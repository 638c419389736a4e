package session

import (
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/server/services"
	"github.com/google/uuid"
)

// InputMethod records how the pending text was entered.
type InputMethod string

const (
	MethodType  InputMethod = "type"
	MethodSpeak InputMethod = "speak"
)

// Input is the text waiting to be translated. RecognitionErr is set when the
// last spoken input could not be recognised; Text is empty then.
type Input struct {
	Text           string
	Method         InputMethod
	RecognitionErr error
}

// Session is the state of one visitor.
type Session struct {
	ID               string
	Page             Page
	Username         string
	Input            Input
	DetectedLanguage string
	// Errors holds the user-facing messages of the last action.
	Errors []string
	// Notice is a confirmation of the last successful action.
	Notice     string
	LastResult *services.TranslationResult
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

func (s *Session) clone() Session {
	c := *s
	c.Errors = slices.Clone(s.Errors)
	return c
}

func (s *Session) resetFeedback() {
	s.Errors = nil
	s.Notice = ""
}

type entry struct {
	mu sync.Mutex
	s  *Session
}

// Store keeps sessions in memory. Actions on one session run one at a time;
// different sessions proceed in parallel.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

// NewStore returns an empty Store whose sessions live for ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a session on the signup page.
func (st *Store) Create() Session {
	now := st.now()
	s := &Session{
		ID:        uuid.NewString(),
		Page:      PageSignup,
		CreatedAt: now,
		ExpiresAt: now.Add(st.ttl),
	}

	st.mu.Lock()
	st.purgeLocked(now)
	st.sessions[s.ID] = &entry{s: s}
	st.mu.Unlock()

	return s.clone()
}

// Get returns a snapshot of the session.
func (st *Store) Get(id string) (Session, error) {
	return st.Do(id, func(*Session) error { return nil })
}

// Do runs fn with exclusive access to the session and returns a snapshot taken
// after fn, together with fn's error.
func (st *Store) Do(id string, fn func(s *Session) error) (Session, error) {
	st.mu.Lock()
	e, ok := st.sessions[id]
	st.mu.Unlock()
	if !ok {
		return Session{}, common.ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !st.now().Before(e.s.ExpiresAt) {
		st.Delete(id)
		return Session{}, common.ErrSessionNotFound
	}

	err := fn(e.s)
	return e.s.clone(), err
}

// Delete forgets the session.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len reports the number of live and not yet purged sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// purgeLocked drops expired sessions that nobody is using right now.
func (st *Store) purgeLocked(now time.Time) {
	for id, e := range st.sessions {
		if !e.mu.TryLock() {
			continue
		}
		if !now.Before(e.s.ExpiresAt) {
			delete(st.sessions, id)
		}
		e.mu.Unlock()
	}
}
