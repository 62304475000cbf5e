package inmemstore

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/shule/core/session"
)

// Store keeps the session in memory, keyed by a bare session-id cookie.
// Test implementation of session.Store; nothing expires.
type Store struct {
	name string

	mu       sync.Mutex
	sessions map[string]session.Session
}

var _ session.Store = (*Store)(nil)

func NewStore(cookieName string) *Store {
	return &Store{name: cookieName, sessions: make(map[string]session.Session)}
}

func (s *Store) Load(r *http.Request) (session.Session, error) {
	c, err := r.Cookie(s.name)
	if err != nil {
		return session.Session{}, session.ErrNotAuthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[c.Value]
	if !ok {
		return session.Session{}, session.ErrNotAuthenticated
	}
	return sess, nil
}

func (s *Store) Save(w http.ResponseWriter, r *http.Request, sess session.Session) error {
	if sess.SID == "" {
		sess.SID = uuid.NewString()
	}
	s.mu.Lock()
	s.sessions[sess.SID] = sess
	s.mu.Unlock()
	http.SetCookie(w, &http.Cookie{Name: s.name, Value: sess.SID, Path: "/", HttpOnly: true})
	return nil
}

func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	if c, err := r.Cookie(s.name); err == nil {
		s.mu.Lock()
		delete(s.sessions, c.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: s.name, Value: "", Path: "/", MaxAge: -1})
	return nil
}

// Sessions returns a snapshot of everything stored; test helper.
func (s *Store) Sessions() []session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]session.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}
