package server

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/matst80/shophub-catalog/pkg/catalog"
	"github.com/matst80/shophub-catalog/pkg/types"
)

const sessionCookieName = "shophub_session"

// Session owns one browser session's query state and comparison set.
// Nothing is persisted; a new session starts from the identity filter over
// the current collection.
type Session struct {
	mu      sync.Mutex
	Query   types.QueryState
	Compare catalog.ComparisonSet
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: map[string]*Session{}}
}

func (s *sessionStore) get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *sessionStore) create(defaults types.QueryState) (string, *Session) {
	id := uuid.New().String()
	session := &Session{Query: defaults}
	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()
	return id, session
}

// session resolves the request's session from its cookie, creating one
// when missing or unknown.
func (ws *WebServer) session(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if session, ok := ws.sessions.get(cookie.Value); ok {
			return session
		}
	}
	id, session := ws.sessions.create(types.DefaultQueryState(ws.Catalog.Facets().Price))
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return session
}
