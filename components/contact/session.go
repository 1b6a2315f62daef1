package contact

import (
	"container/list"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgcontact "github.com/goliatone/go-contactform/pkg/contact"
)

const (
	DefaultMaxSessions     = 10000
	DefaultSessionIdleTime = 30 * time.Minute
)

// SessionStore keeps one form per session id in memory. Sessions idle for
// longer than the idle timeout expire, and once the store is full the least
// recently used session is evicted to make room.
type SessionStore struct {
	mu          sync.Mutex
	validator   pkgcontact.Validator
	maxSessions int
	idleTimeout time.Duration
	now         func() time.Time

	sessions map[string]*list.Element
	order    *list.List // front is most recently used
}

// Session serialises access to a single form. A session with an empty ID is
// ephemeral and lives only for one request.
type Session struct {
	ID string

	mu       sync.Mutex
	form     *pkgcontact.Form
	lastSeen time.Time
}

// SessionOption tunes a SessionStore.
type SessionOption func(*SessionStore)

// WithMaxSessions caps the number of live sessions. Values <= 0 keep the
// default.
func WithMaxSessions(n int) SessionOption {
	return func(s *SessionStore) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithIdleTimeout sets how long an unused session survives. Values <= 0 keep
// the default.
func WithIdleTimeout(d time.Duration) SessionOption {
	return func(s *SessionStore) {
		if d > 0 {
			s.idleTimeout = d
		}
	}
}

// WithClock replaces the time source used for expiry.
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSessionStore returns an empty store whose forms use validator.
func NewSessionStore(validator pkgcontact.Validator, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		validator:   validator,
		maxSessions: DefaultMaxSessions,
		idleTimeout: DefaultSessionIdleTime,
		now:         time.Now,
		sessions:    make(map[string]*list.Element),
		order:       list.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Acquire returns the session for id, creating a fresh one with a new id when
// id is empty, malformed, unknown or expired. created reports whether a new
// session was made.
func (s *SessionStore) Acquire(id string) (session *Session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	if existing, ok := s.lookupLocked(id, now); ok {
		return existing, false
	}

	for s.order.Len() >= s.maxSessions {
		s.removeLocked(s.order.Back())
	}

	session = &Session{
		ID:       uuid.NewString(),
		form:     pkgcontact.NewFormWithValidator(s.validator),
		lastSeen: now,
	}
	s.sessions[session.ID] = s.order.PushFront(session)
	return session, true
}

// Lookup returns the live session for id without creating one.
func (s *SessionStore) Lookup(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	return s.lookupLocked(id, now)
}

// Ephemeral returns a session that is never stored.
func (s *SessionStore) Ephemeral() *Session {
	return &Session{form: pkgcontact.NewFormWithValidator(s.validator)}
}

// Get returns an existing session without refreshing it.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elem, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return elem.Value.(*Session), true
}

// Delete drops the session for id.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if elem, ok := s.sessions[id]; ok {
		s.removeLocked(elem)
	}
}

// Len counts live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(s.now())
	return len(s.sessions)
}

func (s *SessionStore) lookupLocked(id string, now time.Time) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	elem, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	session := elem.Value.(*Session)
	session.lastSeen = now
	s.order.MoveToFront(elem)
	return session, true
}

// sweepLocked drops expired sessions from the back of the LRU list.
func (s *SessionStore) sweepLocked(now time.Time) {
	for {
		elem := s.order.Back()
		if elem == nil {
			return
		}
		if now.Sub(elem.Value.(*Session).lastSeen) <= s.idleTimeout {
			return
		}
		s.removeLocked(elem)
	}
}

func (s *SessionStore) removeLocked(elem *list.Element) {
	if elem == nil {
		return
	}
	session := s.order.Remove(elem).(*Session)
	delete(s.sessions, session.ID)
}

// Do runs fn with exclusive access to the session form.
func (s *Session) Do(fn func(form *pkgcontact.Form) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.form)
}

// Snapshot returns the current form snapshot.
func (s *Session) Snapshot() pkgcontact.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Snapshot()
}
