// internal/adapters/in/http/handler/session_registry.go
package handler

import (
	"sync"

	"github.com/google/uuid"

	"nursery/internal/adapters/out/screen"
	"nursery/internal/application/tracking"
)

// liveSession is one mounted tracking screen held server-side: the
// session itself plus the presentation journal the client drains and
// the prompter relaying the client's confirm dialog outcome.
type liveSession struct {
	session *tracking.Session
	journal *screen.Journal
	prompt  *screen.RelayPrompter

	// ownerUID scopes the session to the authenticated caller that
	// opened it.
	ownerUID string
}

// SessionRegistry keeps live tracking sessions keyed by an opaque id.
// The customer and delivery handlers share one registry so a single
// close path releases everything on shutdown.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*liveSession
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*liveSession)}
}

func (r *SessionRegistry) put(ls *liveSession) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = ls
	r.mu.Unlock()
	return id
}

// get returns the session only when uid owns it. A wrong uid looks
// identical to a missing id.
func (r *SessionRegistry) get(id, uid string) (*liveSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ls, ok := r.sessions[id]
	if !ok || ls.ownerUID != uid {
		return nil, false
	}
	return ls, true
}

// remove unmounts the session: it is closed and dropped. Missing or
// foreign ids are a no-op.
func (r *SessionRegistry) remove(id, uid string) bool {
	r.mu.Lock()
	ls, ok := r.sessions[id]
	if ok && ls.ownerUID == uid {
		delete(r.sessions, id)
	} else {
		ls, ok = nil, false
	}
	r.mu.Unlock()
	if ok {
		ls.session.Close()
	}
	return ok
}

// CloseAll tears down every live session. Called on server shutdown.
func (r *SessionRegistry) CloseAll() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*liveSession)
	r.mu.Unlock()
	for _, ls := range all {
		ls.session.Close()
	}
}
