package memory

import (
	"sync"

	contractx "github.com/tanpawarit/kopibot/agent/contract"
)

// Store keeps one transcript per session for the lifetime of the process.
// It never evicts; durability is the archive's concern.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating it on first use. Every call for
// the same id returns the same *Session.
func (st *Store) Get(sessionID string) *Session {
	st.mu.RLock()
	sess, ok := st.sessions[sessionID]
	st.mu.RUnlock()
	if ok {
		return sess
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if sess, ok := st.sessions[sessionID]; ok {
		return sess
	}
	sess = &Session{id: sessionID}
	st.sessions[sessionID] = sess
	return sess
}

// Append records one turn on the session for id, creating the session if
// needed.
func (st *Store) Append(sessionID string, role contractx.Role, text string) {
	st.Get(sessionID).Append(role, text)
}

// Session is the ordered transcript of one conversation. Turn access is
// guarded by its own mutex; the separate exchange gate serializes whole
// request/reply cycles so two concurrent calls on the same session cannot
// interleave their turn pairs. Distinct sessions share no locks.
type Session struct {
	id string

	gate sync.Mutex

	mu    sync.RWMutex
	turns []contractx.Turn
}

// Lock acquires the exchange gate. Hold it for a full request/reply cycle,
// collaborator calls included; only callers of the same session block.
func (s *Session) Lock() { s.gate.Lock() }

func (s *Session) Unlock() { s.gate.Unlock() }

func (s *Session) ID() string { return s.id }

func (s *Session) Append(role contractx.Role, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, contractx.Turn{Role: role, Text: text})
}

// Turns returns a copy of the transcript in append order.
func (s *Session) Turns() []contractx.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]contractx.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// Restore fills an empty transcript with turns, for warm starts from the
// archive. A session that already has turns is left untouched.
func (s *Session) Restore(turns []contractx.Turn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.turns) > 0 {
		return false
	}
	s.turns = append(s.turns, turns...)
	return true
}
