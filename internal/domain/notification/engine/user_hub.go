package engine

import "sync"

type UserHub struct {
	userID   string
	sessions map[string]*Session

	mutex sync.RWMutex
}

func NewUserHub(userID string) *UserHub {
	return &UserHub{
		userID:   userID,
		sessions: make(map[string]*Session),
		mutex:    sync.RWMutex{},
	}
}

func (h *UserHub) Sessions() []*Session {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}

	return sessions
}

func (h *UserHub) register(session *Session) {
	h.mutex.RLock()
	_, ok := h.sessions[session.id]
	h.mutex.RUnlock()
	if ok {
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	// Double check.
	if _, ok := h.sessions[session.id]; !ok {
		h.sessions[session.id] = session
	}
}

func (h *UserHub) unregister(session *Session) {
	h.mutex.RLock()
	_, ok := h.sessions[session.id]
	h.mutex.RUnlock()
	if !ok {
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.sessions, session.id)
}

func (h *UserHub) IsEmpty() bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.sessions) == 0
}
