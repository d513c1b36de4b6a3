package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Turn is one exchange recorded in a session.
type Turn struct {
	Role    string
	Content string
	At      time.Time
}

// Session holds the conversation state for one user of one app.
type Session struct {
	ID        string
	AppName   string
	UserID    string
	CreatedAt time.Time

	mu    sync.Mutex
	turns []Turn
}

// AddTurn appends an exchange to the session history.
func (s *Session) AddTurn(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, Turn{Role: role, Content: content, At: time.Now()})
}

// Turns returns a copy of the session history.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Store keeps recent sessions in memory. Idle sessions expire; when the
// store is full the least recently used session is evicted.
type Store struct {
	sessions *expirable.LRU[string, *Session]
}

func NewStore(size int, ttl time.Duration) *Store {
	return &Store{
		sessions: expirable.NewLRU[string, *Session](size, nil, ttl),
	}
}

// Create registers a new session and returns it.
func (s *Store) Create(appName, userID string) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		AppName:   appName,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	s.sessions.Add(sess.ID, sess)
	return sess
}

// Get looks up a session by ID.
func (s *Store) Get(id string) (*Session, error) {
	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	return sess, nil
}

// Len reports how many live sessions the store holds.
func (s *Store) Len() int {
	return s.sessions.Len()
}
