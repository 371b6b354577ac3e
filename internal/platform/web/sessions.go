package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/slovotetris/internal/game"
)

// session is one game played over HTTP. Its mutex serializes operations
// on the game state, which is not safe for concurrent use.
type session struct {
	mu       sync.Mutex
	id       string
	state    *game.State
	saved    bool
	lastSeen time.Time
}

// sessions keeps the active games in memory, keyed by ID.
type sessions struct {
	mu    sync.RWMutex
	games map[string]*session
	now   func() time.Time
}

func newSessions() *sessions {
	return &sessions{
		games: make(map[string]*session),
		now:   time.Now,
	}
}

// add stores a new game under a fresh ID.
func (s *sessions) add(state *game.State) *session {
	sess := &session{
		id:       uuid.NewString(),
		state:    state,
		lastSeen: s.now(),
	}

	s.mu.Lock()
	s.games[sess.id] = sess
	s.mu.Unlock()
	return sess
}

// get looks up a game and marks it as seen.
func (s *sessions) get(id string) (*session, bool) {
	s.mu.RLock()
	sess, ok := s.games[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	sess.mu.Lock()
	sess.lastSeen = s.now()
	sess.mu.Unlock()
	return sess, true
}

// remove deletes a game and returns it.
func (s *sessions) remove(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.games[id]
	if ok {
		delete(s.games, id)
	}
	return sess, ok
}

// prune drops games idle for longer than maxIdle and returns them.
func (s *sessions) prune(maxIdle time.Duration) []*session {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	var dropped []*session
	for id, sess := range s.games {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.games, id)
			dropped = append(dropped, sess)
		}
	}
	return dropped
}

// drain removes and returns every game.
func (s *sessions) drain() []*session {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*session, 0, len(s.games))
	for id, sess := range s.games {
		delete(s.games, id)
		all = append(all, sess)
	}
	return all
}

// len returns the number of active games.
func (s *sessions) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
