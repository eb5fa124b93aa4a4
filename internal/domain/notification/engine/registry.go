package engine

import (
	"context"

	"github.com/puzpuzpuz/xsync"
	"github.com/ripple-lab/backend/pkg/xcontext"
)

// Registry tracks every live session and indexes them by the user they were
// authorized as. Lookups by user id go through the index, never by scanning
// all sessions.
type Registry struct {
	sessions *xsync.MapOf[string, *Session]
	users    *xsync.MapOf[string, *UserHub]
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: xsync.NewMapOf[*Session](),
		users:    xsync.NewMapOf[*UserHub](),
	}
}

func (r *Registry) Register(session *Session) {
	r.sessions.Store(session.id, session)
}

// Authorize attaches a user identity to a registered session. The session
// could already be gone if the client disconnected right after emitting the
// authorize event, that race is logged and ignored.
func (r *Registry) Authorize(ctx context.Context, sessionID, userID string) {
	session, ok := r.sessions.Load(sessionID)
	if !ok {
		xcontext.Logger(ctx).Warnf("Authorize an unknown session %s", sessionID)
		return
	}

	if old := session.UserID(); old != "" {
		if old == userID {
			return
		}

		if hub, ok := r.users.Load(old); ok {
			hub.unregister(session)
		}
	}

	session.setUserID(userID)
	hub, _ := r.users.LoadOrStore(userID, NewUserHub(userID))
	hub.register(session)
}

func (r *Registry) Unregister(sessionID string) {
	session, ok := r.sessions.LoadAndDelete(sessionID)
	if !ok {
		return
	}

	if userID := session.UserID(); userID != "" {
		if hub, ok := r.users.Load(userID); ok {
			hub.unregister(session)
			if hub.IsEmpty() {
				r.users.Delete(userID)
			}
		}
	}

	session.close()
}

func (r *Registry) SetContext(sessionID string, page PageContext) {
	if session, ok := r.sessions.Load(sessionID); ok {
		session.setContext(page)
	}
}

func (r *Registry) ContextOf(sessionID string) PageContext {
	session, ok := r.sessions.Load(sessionID)
	if !ok {
		return PageContext{}
	}

	return session.Context()
}

func (r *Registry) SessionsFor(userID string) []*Session {
	hub, ok := r.users.Load(userID)
	if !ok {
		return nil
	}

	return hub.Sessions()
}

// Range iterates over every registered session until f returns false.
func (r *Registry) Range(f func(session *Session) bool) {
	r.sessions.Range(func(_ string, session *Session) bool {
		return f(session)
	})
}
