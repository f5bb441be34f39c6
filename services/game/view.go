package game

import (
	models "Farol/models/postgres"
	"Farol/services/cards"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

/*
 * State views. BuildGameView and BuildPlayerView are pure: they assemble a
 * snapshot from already-loaded rows and session state, so they can be
 * tested without a database or a live transport. The Load* helpers do the
 * querying.
 */

// SeatView is the public projection of one seat.
type SeatView struct {
	Username  string `json:"username"`
	Position  int    `json:"position"`
	CardCount int    `json:"card_count"`
	IsTurn    bool   `json:"is_turn"`
	IsWinner  bool   `json:"is_winner"`
}

// LastPlayView is the public part of the last play. The cards themselves
// stay hidden until a challenge reveals them.
type LastPlayView struct {
	Username     string `json:"username"`
	Position     int    `json:"position"`
	DeclaredRank string `json:"declared_rank"`
	Count        int    `json:"count"`
}

// GameView is the shared snapshot every observer of a game may see.
type GameView struct {
	GameID      string        `json:"game_id"`
	State       string        `json:"state"`
	PlayerCount int           `json:"player_count"`
	Seats       []SeatView    `json:"seats"`
	PileSize    int           `json:"pile_size"`
	CurrentTurn int           `json:"current_turn"` // -1 when nobody holds the turn
	LastPlay    *LastPlayView `json:"last_play,omitempty"`
}

// PlayerView is the personalized snapshot for one seated player: the shared
// view plus that player's own hand, and nobody else's.
type PlayerView struct {
	GameView
	Hand []cards.Card `json:"hand"`
}

// BuildGameView assembles the shared snapshot from loaded rows and the
// session's ephemeral state.
func BuildGameView(g *models.Game, players []models.GamePlayer, handSizes map[string]int,
	pileSize int, lastPlay *LastPlay) GameView {

	sorted := make([]models.GamePlayer, len(players))
	copy(sorted, players)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	view := GameView{
		GameID:      g.ID,
		State:       g.State,
		PlayerCount: len(sorted),
		Seats:       make([]SeatView, 0, len(sorted)),
		PileSize:    pileSize,
		CurrentTurn: -1,
	}
	for _, p := range sorted {
		view.Seats = append(view.Seats, SeatView{
			Username:  p.Username,
			Position:  p.Position,
			CardCount: handSizes[p.Username],
			IsTurn:    p.IsTurn,
			IsWinner:  p.IsWinner,
		})
		if p.IsTurn {
			view.CurrentTurn = p.Position
		}
	}
	if lastPlay != nil {
		view.LastPlay = &LastPlayView{
			Username:     lastPlay.Username,
			Position:     lastPlay.Position,
			DeclaredRank: lastPlay.DeclaredRank,
			Count:        lastPlay.Count,
		}
	}
	return view
}

// BuildPlayerView personalizes a shared view with the viewer's own hand.
func BuildPlayerView(shared GameView, hand []cards.Card) PlayerView {
	if hand == nil {
		hand = []cards.Card{}
	}
	return PlayerView{GameView: shared, Hand: hand}
}

// LoadGameState loads the game row, its seats and the per-seat hand sizes.
func LoadGameState(db *gorm.DB, gameID string) (*models.Game, []models.GamePlayer, map[string]int, error) {
	var g models.Game
	if err := db.Where("id = ?", gameID).First(&g).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, nil, ErrGameNotFound
		}
		return nil, nil, nil, fmt.Errorf("error loading game: %w", err)
	}

	var players []models.GamePlayer
	if err := db.Where("game_id = ?", gameID).Order("position").Find(&players).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("error loading seats: %w", err)
	}

	type ownerCount struct {
		Username string
		Total    int
	}
	var counts []ownerCount
	err := db.Model(&models.HandCard{}).
		Select("username, count(*) as total").
		Where("game_id = ?", gameID).
		Group("username").
		Scan(&counts).Error
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error counting hands: %w", err)
	}
	handSizes := make(map[string]int, len(counts))
	for _, c := range counts {
		handSizes[c.Username] = c.Total
	}
	return &g, players, handSizes, nil
}

// LoadHand loads one player's full hand, ordered by card id for stable
// client rendering.
func LoadHand(db *gorm.DB, gameID, username string) ([]cards.Card, error) {
	var held []models.HandCard
	err := db.Preload("Card").
		Where("game_id = ? AND username = ?", gameID, username).
		Order("card_id").
		Find(&held).Error
	if err != nil {
		return nil, fmt.Errorf("error loading hand: %w", err)
	}
	hand := make([]cards.Card, 0, len(held))
	for _, hc := range held {
		hand = append(hand, cards.Card{ID: hc.Card.ID, Rank: hc.Card.Rank, Suit: hc.Card.Suit})
	}
	return hand, nil
}
