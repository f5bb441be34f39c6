package game

import (
	"Farol/services/cards"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryIsolatesGames(t *testing.T) {
	reg := NewRegistry()

	a := reg.GetOrCreate("aaaa")
	b := reg.GetOrCreate("bbbb")
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, reg.Count())

	// Second lookup returns the same session
	again := reg.GetOrCreate("aaaa")
	assert.Same(t, a, again)
	assert.Equal(t, 2, reg.Count())

	a.pile = append(a.pile, cards.Card{ID: 1, Rank: 1, Suit: cards.SuitClubs})
	assert.Equal(t, 1, a.PileSize())
	assert.Equal(t, 0, b.PileSize())
}

func TestRegistryRemoveReleasesState(t *testing.T) {
	reg := NewRegistry()
	sess := reg.GetOrCreate("aaaa")
	sess.pile = append(sess.pile, cards.Card{ID: 1, Rank: 1, Suit: cards.SuitClubs})

	reg.Remove("aaaa")
	_, exists := reg.Get("aaaa")
	assert.False(t, exists)
	assert.Equal(t, 0, reg.Count())

	// A new session for the same id starts empty
	fresh := reg.GetOrCreate("aaaa")
	assert.Equal(t, 0, fresh.PileSize())
}

func TestRegistryConcurrentAccess(t *testing.T) {
	reg := NewRegistry()
	ids := []string{"g1", "g2", "g3", "g4"}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		for _, id := range ids {
			wg.Add(1)
			go func(gameID string) {
				defer wg.Done()
				sess := reg.GetOrCreate(gameID)
				sess.mu.Lock()
				sess.pile = append(sess.pile, cards.Card{ID: len(sess.pile) + 1})
				sess.mu.Unlock()
			}(id)
		}
	}
	wg.Wait()

	assert.Equal(t, len(ids), reg.Count())
	for _, id := range ids {
		sess, exists := reg.Get(id)
		assert.True(t, exists)
		assert.Equal(t, 100, sess.PileSize(), "game %s", id)
	}
}

func TestSnapshotCopiesLastPlay(t *testing.T) {
	sess := &Session{GameID: "aaaa"}
	sess.pile = []cards.Card{{ID: 1, Rank: 2, Suit: cards.SuitHearts}}
	sess.lastPlay = &LastPlay{
		Username:     "ana",
		Position:     0,
		Cards:        sess.pile,
		DeclaredRank: "A",
		Count:        1,
	}

	pileSize, lp := sess.Snapshot()
	assert.Equal(t, 1, pileSize)
	assert.NotNil(t, lp)
	assert.NotSame(t, sess.lastPlay, lp)
	assert.Equal(t, "ana", lp.Username)

	// Mutating the copy must not touch the session's record
	lp.DeclaredRank = "K"
	assert.Equal(t, "A", sess.lastPlay.DeclaredRank)
}

func TestSnapshotWithoutLastPlay(t *testing.T) {
	sess := &Session{GameID: "aaaa"}
	pileSize, lp := sess.Snapshot()
	assert.Equal(t, 0, pileSize)
	assert.Nil(t, lp)
}
