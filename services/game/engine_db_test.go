package game

import (
	"Farol/config"
	models "Farol/models/postgres"
	"Farol/services/cards"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Full engine flow against a real database. Skipped unless POSTGRES_HOST is
// configured (directly or via a .env at the repo root).
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	godotenv.Load("../../.env")
	if os.Getenv("POSTGRES_HOST") == "" {
		t.Skip("POSTGRES_HOST not configured, skipping database test")
	}

	db, err := config.ConnectGORM()
	require.NoError(t, err)
	require.NoError(t, config.MigrateDatabase(db))
	return db
}

// seedGame creates profiles, a game and n seats with unique usernames.
func seedGame(t *testing.T, db *gorm.DB, n int) (string, []string) {
	t.Helper()
	suffix := time.Now().UnixNano()

	usernames := make([]string, n)
	for i := range usernames {
		usernames[i] = fmt.Sprintf("enginetest%d_%d", i, suffix)
		profile := models.GameProfile{Username: usernames[i], UserStats: []byte(`{}`)}
		require.NoError(t, db.Create(&profile).Error)
	}

	g := models.Game{HostUsername: usernames[0], State: models.GameStateWaiting, MaxPlayers: 8}
	require.NoError(t, db.Create(&g).Error)

	for i, username := range usernames {
		seat := models.GamePlayer{GameID: g.ID, Username: username, Position: i}
		require.NoError(t, db.Create(&seat).Error)
	}
	return g.ID, usernames
}

func handTotal(t *testing.T, db *gorm.DB, gameID string) int {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.HandCard{}).Where("game_id = ?", gameID).Count(&count).Error)
	return int(count)
}

func TestEngineFullGameFlow(t *testing.T) {
	db := testDB(t)
	gameID, players := seedGame(t, db, 4)

	registry := NewRegistry()
	sess := registry.GetOrCreate(gameID)

	// Deal: 52 cards over 4 seats, turn on position 0
	deal, err := DealCards(db, sess, players[0])
	require.NoError(t, err)
	assert.Equal(t, 52, deal.CardsDealt)
	assert.Equal(t, 0, deal.CurrentTurn)
	for _, username := range players {
		assert.Equal(t, 13, deal.HandSizes[username])
	}
	assert.Equal(t, 52, handTotal(t, db, gameID))

	// Position 0 plays two cards, declared truthfully or not, and the turn
	// advances
	hand0, err := LoadHand(db, gameID, players[0])
	require.NoError(t, err)
	playIDs := []int{hand0[0].ID, hand0[1].ID}

	play, err := ExecutePlay(db, sess, players[0], playIDs, cards.RankLabel(hand0[0].Rank))
	require.NoError(t, err)
	assert.Equal(t, 2, play.Count)
	assert.Equal(t, 11, play.HandSize)
	assert.Equal(t, 2, play.PileSize)
	assert.Equal(t, 1, play.NextTurn)
	assert.False(t, play.WonGame)

	// Cards in the pile are no longer durable; conservation holds across
	// hands + pile
	assert.Equal(t, 50, handTotal(t, db, gameID))
	pileSize, lastPlay := sess.Snapshot()
	assert.Equal(t, 2, pileSize)
	require.NotNil(t, lastPlay)

	// Replaying the same cards must fail: they left the hand
	_, err = ExecutePlay(db, sess, players[1], playIDs, "K")
	assert.ErrorIs(t, err, ErrCardNotInHand)

	// Position 1 bluffs on purpose: declares a rank its card does not have
	hand1, err := LoadHand(db, gameID, players[1])
	require.NoError(t, err)
	bluffCard := hand1[0]
	liedRank := bluffCard.Rank%13 + 1 // Any rank that is not the card's own

	play, err = ExecutePlay(db, sess, players[1], []int{bluffCard.ID}, cards.RankLabel(liedRank))
	require.NoError(t, err)
	assert.Equal(t, 2, play.NextTurn)

	// Position 2 calls BS: the play was a bluff, so the liar takes the
	// 3-card pile and the turn
	challenge, err := ResolveChallenge(db, sess, players[2])
	require.NoError(t, err)
	assert.True(t, challenge.WasBluff)
	assert.Equal(t, players[1], challenge.PileReceiver)
	assert.Equal(t, 1, challenge.ReceiverPos)
	assert.Equal(t, 3, challenge.PileSize)
	assert.Len(t, challenge.Revealed, 1)

	// Pile is back in a hand, everything durable again
	assert.Equal(t, 52, handTotal(t, db, gameID))
	pileSize, lastPlay = sess.Snapshot()
	assert.Equal(t, 0, pileSize)
	assert.Nil(t, lastPlay)

	// Nothing left to challenge after a resolution
	_, err = ResolveChallenge(db, sess, players[1])
	assert.ErrorIs(t, err, ErrNoPlayToChallenge)
}

func TestEngineTruthfulChallengePunishesChallenger(t *testing.T) {
	db := testDB(t)
	gameID, players := seedGame(t, db, 2)

	registry := NewRegistry()
	sess := registry.GetOrCreate(gameID)

	_, err := DealCards(db, sess, players[0])
	require.NoError(t, err)

	hand0, err := LoadHand(db, gameID, players[0])
	require.NoError(t, err)
	honest := hand0[0]

	_, err = ExecutePlay(db, sess, players[0], []int{honest.ID}, cards.RankLabel(honest.Rank))
	require.NoError(t, err)

	challenge, err := ResolveChallenge(db, sess, players[1])
	require.NoError(t, err)
	assert.False(t, challenge.WasBluff)
	assert.Equal(t, players[1], challenge.PileReceiver)

	// The challenger took the pile and keeps the turn
	var seat models.GamePlayer
	require.NoError(t, db.Where("game_id = ? AND username = ?", gameID, players[1]).First(&seat).Error)
	assert.True(t, seat.IsTurn)

	hand1, err := LoadHand(db, gameID, players[1])
	require.NoError(t, err)
	assert.Len(t, hand1, 27)
}

func TestEngineWinOnEmptyHand(t *testing.T) {
	db := testDB(t)
	gameID, players := seedGame(t, db, 2)

	registry := NewRegistry()
	sess := registry.GetOrCreate(gameID)

	_, err := DealCards(db, sess, players[0])
	require.NoError(t, err)

	// Playing the entire hand at once empties it and wins instantly
	hand0, err := LoadHand(db, gameID, players[0])
	require.NoError(t, err)
	require.Len(t, hand0, 26)
	ids := make([]int, len(hand0))
	for i, c := range hand0 {
		ids[i] = c.ID
	}

	play, err := ExecutePlay(db, sess, players[0], ids, "A")
	require.NoError(t, err)
	assert.True(t, play.WonGame)
	assert.Equal(t, 0, play.HandSize)
	assert.Equal(t, -1, play.NextTurn)

	var g models.Game
	require.NoError(t, db.Where("id = ?", gameID).First(&g).Error)
	assert.Equal(t, models.GameStateEnded, g.State)

	var winner models.GamePlayer
	require.NoError(t, db.Where("game_id = ? AND username = ?", gameID, players[0]).First(&winner).Error)
	assert.True(t, winner.IsWinner)
	assert.False(t, winner.IsTurn)

	// No further plays on an ended game
	hand1, err := LoadHand(db, gameID, players[1])
	require.NoError(t, err)
	_, err = ExecutePlay(db, sess, players[1], []int{hand1[0].ID}, "A")
	assert.ErrorIs(t, err, ErrInvalidGameState)
}

func TestEngineRejectsOutOfTurnAndStrangers(t *testing.T) {
	db := testDB(t)
	gameID, players := seedGame(t, db, 3)

	registry := NewRegistry()
	sess := registry.GetOrCreate(gameID)

	// Starting with a single stranger is rejected before any mutation
	_, err := DealCards(db, sess, "not_seated_anywhere")
	assert.ErrorIs(t, err, ErrNotAPlayer)

	_, err = DealCards(db, sess, players[0])
	require.NoError(t, err)

	// Restarting a playing game is rejected
	_, err = DealCards(db, sess, players[0])
	assert.ErrorIs(t, err, ErrInvalidGameState)

	// Position 1 cannot play while position 0 holds the turn
	hand1, err := LoadHand(db, gameID, players[1])
	require.NoError(t, err)
	_, err = ExecutePlay(db, sess, players[1], []int{hand1[0].ID}, "A")
	assert.ErrorIs(t, err, ErrNotYourTurn)

	_, err = ExecutePlay(db, sess, "not_seated_anywhere", []int{hand1[0].ID}, "A")
	assert.ErrorIs(t, err, ErrNotAPlayer)

	// Challenging with no play on the table
	_, err = ResolveChallenge(db, sess, players[0])
	assert.ErrorIs(t, err, ErrNoPlayToChallenge)
}
