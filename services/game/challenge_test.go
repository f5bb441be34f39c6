package game

import (
	"Farol/services/cards"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerdictTruthfulPlay(t *testing.T) {
	played := []cards.Card{
		{ID: 1, Rank: 1, Suit: cards.SuitClubs},
		{ID: 14, Rank: 1, Suit: cards.SuitDiamonds},
	}
	wasBluff, err := Verdict("A", played)
	assert.NoError(t, err)
	assert.False(t, wasBluff)
}

func TestVerdictBluff(t *testing.T) {
	// Declared "A" but the true ranks are 2 and 3 (spec scenario C)
	played := []cards.Card{
		{ID: 2, Rank: 2, Suit: cards.SuitClubs},
		{ID: 3, Rank: 3, Suit: cards.SuitClubs},
	}
	wasBluff, err := Verdict("A", played)
	assert.NoError(t, err)
	assert.True(t, wasBluff)
}

func TestVerdictPartialBluff(t *testing.T) {
	// One honest card does not save a play with a single mismatch
	played := []cards.Card{
		{ID: 7, Rank: 7, Suit: cards.SuitClubs},
		{ID: 21, Rank: 8, Suit: cards.SuitDiamonds},
	}
	wasBluff, err := Verdict("7", played)
	assert.NoError(t, err)
	assert.True(t, wasBluff)
}

func TestVerdictUnknownLabelIsDataIntegrityError(t *testing.T) {
	played := []cards.Card{{ID: 1, Rank: 1, Suit: cards.SuitClubs}}
	_, err := Verdict("joker", played)
	assert.ErrorIs(t, err, ErrInvalidDeclaredRank)
}
