package game

import (
	"Farol/services/cards"
	"sync"
)

/*
 * Ephemeral per-game state. The pile and the last play live only in process
 * memory: a restart loses them and the affected game has to be restarted.
 * That is a documented limitation of the design, not something this package
 * tries to paper over.
 *
 * Each active game owns exactly one Session. All mutating engine operations
 * lock the session for their whole critical section, so operations on the
 * same game never interleave while different games proceed in parallel.
 */

// LastPlay records the most recent play of a game. It exists only to
// resolve the next challenge and is overwritten by every new play.
type LastPlay struct {
	Username     string
	Position     int
	Cards        []cards.Card
	DeclaredRank string
	Count        int
}

// Session is the exclusively-owned ephemeral state of one active game.
type Session struct {
	GameID string

	mu       sync.Mutex
	pile     []cards.Card
	lastPlay *LastPlay
}

// PileSize returns the current number of cards on the pile.
func (s *Session) PileSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pile)
}

// Snapshot returns the pile size and a copy of the last play, for building
// state views without racing the engine.
func (s *Session) Snapshot() (pileSize int, lastPlay *LastPlay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastPlay != nil {
		lp := *s.lastPlay
		lastPlay = &lp
	}
	return len(s.pile), lastPlay
}

// Registry maps game ids to their sessions. One entry per active game;
// entries are removed when the game ends or is abandoned.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// GetOrCreate returns the session for a game id, creating it on first use.
func (r *Registry) GetOrCreate(gameID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, exists := r.sessions[gameID]
	if !exists {
		sess = &Session{GameID: gameID}
		r.sessions[gameID] = sess
	}
	return sess
}

// Get returns the session for a game id, if one exists.
func (r *Registry) Get(gameID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, exists := r.sessions[gameID]
	return sess, exists
}

// Remove releases the ephemeral state of an ended or abandoned game.
func (r *Registry) Remove(gameID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, gameID)
}

// Count returns the number of active sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
