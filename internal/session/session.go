// Package session holds the signed-in user for the running process.
//
// A Session has any number of readers and exactly one Writer, handed out by
// New. Whoever owns the Writer (auth.Service) is the only code that can sign
// a user in or out; everything else reads or subscribes.
package session

import (
	"sync"

	"github.com/Veraticus/dex/internal/model"
)

// Listener is notified with the current user after every change.
// A nil user means signed out.
type Listener func(user *model.User)

// Session is the read side of the signed-in state.
type Session struct {
	user      *model.User
	listeners map[int]Listener
	mu        sync.RWMutex
	nextID    int
}

// Writer mutates a Session.
type Writer struct {
	s *Session
}

// New creates a signed-out session and its writer.
func New() (*Session, *Writer) {
	s := &Session{listeners: make(map[int]Listener)}
	return s, &Writer{s: s}
}

// Current returns a copy of the signed-in user, or nil.
func (s *Session) Current() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SignedIn reports whether a user is signed in.
func (s *Session) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Subscribe registers fn for changes and returns a function that removes it.
func (s *Session) Subscribe(fn Listener) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Session returns the session this writer controls.
func (w *Writer) Session() *Session {
	return w.s
}

// Set signs user in.
func (w *Writer) Set(user *model.User) {
	if user == nil {
		w.Clear()
		return
	}
	u := *user
	w.s.publish(&u)
}

// Clear signs the current user out.
func (w *Writer) Clear() {
	w.s.publish(nil)
}

func (s *Session) publish(user *model.User) {
	s.mu.Lock()
	s.user = user
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	// Listeners run outside the lock so they can read the session.
	for _, fn := range listeners {
		fn(s.Current())
	}
}
