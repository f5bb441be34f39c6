package game

import (
	models "Farol/models/postgres"
	"Farol/services/cards"
	"fmt"
	"log"

	"gorm.io/gorm"
)

// DealResult describes a completed deal.
type DealResult struct {
	CardsDealt  int
	HandSizes   map[string]int
	CurrentTurn int // Always position 0 right after dealing
}

// DealCards starts a game: it shuffles the reference deck, distributes it
// round-robin over the seats (card i goes to position i mod N) and puts the
// turn on position 0. The caller must be seated in the game and the game
// must still be waiting.
//
// All durable changes happen in one transaction; the session's pile and
// last play are reset only after it commits.
func DealCards(db *gorm.DB, sess *Session, username string) (*DealResult, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	deck := cards.NewDeck()
	cards.Shuffle(deck)

	result := &DealResult{HandSizes: make(map[string]int)}

	err := db.Transaction(func(tx *gorm.DB) error {
		var g models.Game
		if err := tx.Where("id = ?", sess.GameID).First(&g).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrGameNotFound
			}
			return fmt.Errorf("error loading game: %w", err)
		}
		if g.State != models.GameStateWaiting {
			return ErrInvalidGameState
		}

		var players []models.GamePlayer
		if err := tx.Where("game_id = ?", sess.GameID).Order("position").Find(&players).Error; err != nil {
			return fmt.Errorf("error loading seats: %w", err)
		}
		if len(players) < 2 {
			return ErrInsufficientPlayers
		}

		seated := false
		for _, p := range players {
			if p.Username == username {
				seated = true
				break
			}
		}
		if !seated {
			return ErrNotAPlayer
		}

		// Defensive reset for a restarted game: drop any stale hand rows
		if err := tx.Where("game_id = ?", sess.GameID).Delete(&models.HandCard{}).Error; err != nil {
			return fmt.Errorf("error clearing stale hands: %w", err)
		}

		rows := make([]models.HandCard, 0, len(deck))
		for i, c := range deck {
			owner := players[i%len(players)]
			rows = append(rows, models.HandCard{
				GameID:   sess.GameID,
				CardID:   c.ID,
				Username: owner.Username,
			})
			result.HandSizes[owner.Username]++
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("error dealing cards: %w", err)
		}

		if err := clearTurnFlags(tx, sess.GameID); err != nil {
			return err
		}
		err := tx.Model(&models.GamePlayer{}).
			Where("game_id = ? AND position = ?", sess.GameID, 0).
			Update("is_turn", true).Error
		if err != nil {
			return fmt.Errorf("error setting initial turn: %w", err)
		}

		err = tx.Model(&models.Game{}).Where("id = ?", sess.GameID).
			Updates(map[string]interface{}{
				"state":       models.GameStatePlaying,
				"cards_dealt": len(deck),
			}).Error
		if err != nil {
			return fmt.Errorf("error updating game state: %w", err)
		}

		result.CardsDealt = len(deck)
		result.CurrentTurn = 0
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Durable state committed, now reset the ephemeral side
	sess.pile = nil
	sess.lastPlay = nil

	log.Printf("[DEAL] Dealt %d cards to %d players in game %s",
		result.CardsDealt, len(result.HandSizes), sess.GameID)
	return result, nil
}
