package game

import (
	models "Farol/models/postgres"
	"Farol/services/cards"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fourSeats(gameID string) []models.GamePlayer {
	return []models.GamePlayer{
		{GameID: gameID, Username: "ana", Position: 0},
		{GameID: gameID, Username: "bruno", Position: 1},
		{GameID: gameID, Username: "carla", Position: 2},
		{GameID: gameID, Username: "dani", Position: 3},
	}
}

func TestBuildGameViewFreshDeal(t *testing.T) {
	g := &models.Game{ID: "aaaa", State: models.GameStatePlaying, CardsDealt: 52}
	players := fourSeats("aaaa")
	players[0].IsTurn = true

	// 52 cards over 4 players: 13 each (spec scenario A)
	handSizes := map[string]int{"ana": 13, "bruno": 13, "carla": 13, "dani": 13}

	view := BuildGameView(g, players, handSizes, 0, nil)

	assert.Equal(t, "aaaa", view.GameID)
	assert.Equal(t, models.GameStatePlaying, view.State)
	assert.Equal(t, 4, view.PlayerCount)
	assert.Equal(t, 0, view.PileSize)
	assert.Equal(t, 0, view.CurrentTurn)
	assert.Nil(t, view.LastPlay)

	total := 0
	for i, seat := range view.Seats {
		assert.Equal(t, i, seat.Position)
		assert.Equal(t, 13, seat.CardCount)
		total += seat.CardCount
	}
	assert.Equal(t, 52, total+view.PileSize)
}

func TestBuildGameViewAfterPlay(t *testing.T) {
	g := &models.Game{ID: "aaaa", State: models.GameStatePlaying, CardsDealt: 52}
	players := fourSeats("aaaa")
	players[1].IsTurn = true // turn moved on after ana played

	handSizes := map[string]int{"ana": 11, "bruno": 13, "carla": 13, "dani": 13}
	lastPlay := &LastPlay{
		Username:     "ana",
		Position:     0,
		Cards:        []cards.Card{{ID: 2, Rank: 2, Suit: cards.SuitClubs}, {ID: 3, Rank: 3, Suit: cards.SuitClubs}},
		DeclaredRank: "A",
		Count:        2,
	}

	view := BuildGameView(g, players, handSizes, 2, lastPlay)

	assert.Equal(t, 2, view.PileSize)
	assert.Equal(t, 1, view.CurrentTurn)
	assert.Equal(t, 11, view.Seats[0].CardCount)
	if assert.NotNil(t, view.LastPlay) {
		assert.Equal(t, "ana", view.LastPlay.Username)
		assert.Equal(t, "A", view.LastPlay.DeclaredRank)
		assert.Equal(t, 2, view.LastPlay.Count)
	}

	// Conservation holds: hands plus pile account for every dealt card
	total := view.PileSize
	for _, seat := range view.Seats {
		total += seat.CardCount
	}
	assert.Equal(t, g.CardsDealt, total)
}

func TestBuildGameViewOrdersSeatsByPosition(t *testing.T) {
	g := &models.Game{ID: "aaaa", State: models.GameStatePlaying}
	players := []models.GamePlayer{
		{GameID: "aaaa", Username: "carla", Position: 2},
		{GameID: "aaaa", Username: "ana", Position: 0},
		{GameID: "aaaa", Username: "bruno", Position: 1, IsTurn: true},
	}

	view := BuildGameView(g, players, map[string]int{}, 0, nil)
	assert.Equal(t, []string{"ana", "bruno", "carla"},
		[]string{view.Seats[0].Username, view.Seats[1].Username, view.Seats[2].Username})
	assert.Equal(t, 1, view.CurrentTurn)
}

func TestBuildGameViewEndedGame(t *testing.T) {
	g := &models.Game{ID: "aaaa", State: models.GameStateEnded, CardsDealt: 52}
	players := fourSeats("aaaa")
	players[2].IsWinner = true // nobody holds the turn anymore

	view := BuildGameView(g, players, map[string]int{"ana": 20, "bruno": 16, "dani": 16}, 0, nil)
	assert.Equal(t, models.GameStateEnded, view.State)
	assert.Equal(t, -1, view.CurrentTurn)
	assert.True(t, view.Seats[2].IsWinner)
	assert.Equal(t, 0, view.Seats[2].CardCount)
}

func TestSharedViewNeverContainsHands(t *testing.T) {
	g := &models.Game{ID: "aaaa", State: models.GameStatePlaying}
	view := BuildGameView(g, fourSeats("aaaa"), map[string]int{"ana": 13}, 0, nil)

	data, err := json.Marshal(view)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "\"hand\"")
	assert.NotContains(t, string(data), "\"rank\"")
	assert.NotContains(t, string(data), "\"suit\"")
}

func TestBuildPlayerViewIncludesOwnHandOnly(t *testing.T) {
	g := &models.Game{ID: "aaaa", State: models.GameStatePlaying}
	shared := BuildGameView(g, fourSeats("aaaa"), map[string]int{"ana": 2}, 0, nil)

	hand := []cards.Card{
		{ID: 1, Rank: 1, Suit: cards.SuitClubs},
		{ID: 27, Rank: 1, Suit: cards.SuitHearts},
	}
	view := BuildPlayerView(shared, hand)
	assert.Equal(t, hand, view.Hand)

	// A nil hand serializes as an empty array, not null
	empty := BuildPlayerView(shared, nil)
	data, err := json.Marshal(empty)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "\"hand\":[]")
}
