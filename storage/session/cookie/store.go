package cookiestore

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/session"
)

// value keys inside the cookie; the token and the serialized user record,
// plus the locally-assigned console session id.
const (
	tokenKey = "token"
	userKey  = "user"
	sidKey   = "sid"
)

// Store persists the session in a signed cookie.
type Store struct {
	name string
	gs   *sessions.CookieStore
}

var _ session.Store = (*Store)(nil)

func NewStore(conf *core.Config) *Store {
	key := []byte(conf.SecretKey)
	if len(key) == 0 {
		// sessions will not survive a restart without a configured secret
		key = securecookie.GenerateRandomKey(32)
	}
	gs := sessions.NewCookieStore(key)
	gs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(conf.SessionCookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   !conf.Debug,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{name: conf.SessionCookie.Name, gs: gs}
}

func (s *Store) Load(r *http.Request) (session.Session, error) {
	gsess, err := s.gs.Get(r, s.name)
	if err != nil {
		// an undecodable cookie is the same as no cookie
		return session.Session{}, session.ErrNotAuthenticated
	}

	token, _ := gsess.Values[tokenKey].(string)
	if token == "" {
		return session.Session{}, session.ErrNotAuthenticated
	}
	userJSON, _ := gsess.Values[userKey].(string)
	var usr session.User
	if err := json.Unmarshal([]byte(userJSON), &usr); err != nil {
		return session.Session{}, session.ErrNotAuthenticated
	}
	sid, _ := gsess.Values[sidKey].(string)
	return session.Session{Token: token, User: usr, SID: sid}, nil
}

func (s *Store) Save(w http.ResponseWriter, r *http.Request, sess session.Session) error {
	gsess, _ := s.gs.Get(r, s.name)

	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return errors.Wrap(err, "marshalling user")
	}
	if sess.SID == "" {
		sess.SID = uuid.NewString()
	}
	gsess.Values[tokenKey] = sess.Token
	gsess.Values[userKey] = string(userJSON)
	gsess.Values[sidKey] = sess.SID
	return errors.Wrap(gsess.Save(r, w), "saving session cookie")
}

func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	gsess, _ := s.gs.Get(r, s.name)
	gsess.Options.MaxAge = -1
	for k := range gsess.Values {
		delete(gsess.Values, k)
	}
	return errors.Wrap(gsess.Save(r, w), "clearing session cookie")
}
