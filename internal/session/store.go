package session

import "sync"

// Store holds live sessions keyed by token. Sessions exist for the lifetime
// of one participant's run; finished sessions are removed once their outcome
// is persisted.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

func (s *Store) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token()] = sess
}

func (s *Store) Get(token string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	return sess, ok
}

func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Expired returns every live session whose countdown has run out. The
// background reaper force-finalizes these.
func (s *Store) Expired() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var expired []*Session
	for _, sess := range s.sessions {
		if sess.Expired() {
			expired = append(expired, sess)
		}
	}
	return expired
}
