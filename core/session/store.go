package session

import "net/http"

// Store persists the Session between requests. Implementations live in
// storage/session.
//
// Load returns ErrNotAuthenticated when no session is persisted; token
// validity is not checked here, a stale token simply fails at the API.
type Store interface {
	Load(r *http.Request) (Session, error)
	Save(w http.ResponseWriter, r *http.Request, s Session) error
	Clear(w http.ResponseWriter, r *http.Request) error
}
