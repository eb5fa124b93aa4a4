package engine

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/ripple-lab/backend/internal/domain/notification/event"
)

type Session struct {
	C chan *event.EventRequest

	id string

	mutex  sync.RWMutex
	userID string
	page   PageContext
}

func NewSession() *Session {
	return &Session{
		C:  make(chan *event.EventRequest, 16),
		id: uuid.NewString(),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) UserID() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.userID
}

func (s *Session) Context() PageContext {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.page
}

func (s *Session) setUserID(userID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.userID = userID
}

func (s *Session) setContext(page PageContext) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.page = page
}

// Deliver pushes the event to the session without blocking. The session could
// be closed concurrently, in that case an error is returned instead of
// panicking.
func (s *Session) Deliver(ev *event.EventRequest) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("session is closed")
		}
	}()

	select {
	case s.C <- ev:
		return nil
	default:
		return errors.New("session buffer is full")
	}
}

func (s *Session) close() {
	close(s.C)
}
