package game

import (
	models "Farol/models/postgres"
	"Farol/services/cards"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
)

// PlayResult describes a successfully executed play.
type PlayResult struct {
	Username     string
	Position     int
	DeclaredRank string
	Count        int
	PileSize     int
	HandSize     int
	WonGame      bool
	NextTurn     int // -1 when the game ended with this play
}

// ExecutePlay plays a declared group of cards face down onto the pile. The
// named cards are removed from the caller's durable hand atomically (any
// missing card fails the whole operation) and only after the transaction
// commits are they appended to the in-memory pile and recorded as the last
// play. The declared rank is deliberately NOT checked against the true
// ranks here; truth surfaces only if someone calls BS.
func ExecutePlay(db *gorm.DB, sess *Session, username string, cardIDs []int, declaredRank string) (*PlayResult, error) {
	if len(cardIDs) == 0 {
		return nil, ErrNoCardsSelected
	}
	if strings.TrimSpace(declaredRank) == "" {
		return nil, ErrMissingDeclaredRank
	}

	// Reject duplicated ids up front so the row count check below stays exact
	unique := make(map[int]bool, len(cardIDs))
	ids := make([]int, 0, len(cardIDs))
	for _, id := range cardIDs {
		if !unique[id] {
			unique[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) != len(cardIDs) {
		return nil, ErrCardNotInHand
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	result := &PlayResult{
		Username:     username,
		DeclaredRank: declaredRank,
		Count:        len(ids),
	}
	var played []cards.Card

	err := db.Transaction(func(tx *gorm.DB) error {
		var g models.Game
		if err := tx.Where("id = ?", sess.GameID).First(&g).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrGameNotFound
			}
			return fmt.Errorf("error loading game: %w", err)
		}
		if g.State != models.GameStatePlaying {
			return ErrInvalidGameState
		}

		var seat models.GamePlayer
		if err := tx.Where("game_id = ? AND username = ?", sess.GameID, username).First(&seat).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotAPlayer
			}
			return fmt.Errorf("error loading seat: %w", err)
		}
		if !seat.IsTurn {
			return ErrNotYourTurn
		}
		result.Position = seat.Position

		var held []models.HandCard
		err := tx.Preload("Card").
			Where("game_id = ? AND username = ? AND card_id IN ?", sess.GameID, username, ids).
			Find(&held).Error
		if err != nil {
			return fmt.Errorf("error loading hand cards: %w", err)
		}
		if len(held) != len(ids) {
			return ErrCardNotInHand
		}

		res := tx.Where("game_id = ? AND username = ? AND card_id IN ?", sess.GameID, username, ids).
			Delete(&models.HandCard{})
		if res.Error != nil {
			return fmt.Errorf("error removing played cards: %w", res.Error)
		}
		if res.RowsAffected != int64(len(ids)) {
			// Row count changed between load and delete: abort, no partial removal
			return ErrCardNotInHand
		}

		played = make([]cards.Card, 0, len(held))
		for _, hc := range held {
			played = append(played, cards.Card{ID: hc.Card.ID, Rank: hc.Card.Rank, Suit: hc.Card.Suit})
		}

		var remaining int64
		err = tx.Model(&models.HandCard{}).
			Where("game_id = ? AND username = ?", sess.GameID, username).
			Count(&remaining).Error
		if err != nil {
			return fmt.Errorf("error counting remaining hand: %w", err)
		}
		result.HandSize = int(remaining)

		if remaining == 0 {
			// Win: mark the seat, stop the turn rotation, end the game
			err = tx.Model(&models.GamePlayer{}).
				Where("game_id = ? AND username = ?", sess.GameID, username).
				Updates(map[string]interface{}{"is_winner": true, "is_turn": false}).Error
			if err != nil {
				return fmt.Errorf("error marking winner: %w", err)
			}
			err = tx.Model(&models.Game{}).Where("id = ?", sess.GameID).
				Update("state", models.GameStateEnded).Error
			if err != nil {
				return fmt.Errorf("error ending game: %w", err)
			}
			result.WonGame = true
			result.NextTurn = -1
			return nil
		}

		next, err := advanceTurn(tx, sess.GameID)
		if err != nil {
			return err
		}
		result.NextTurn = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Durable state committed, now the ephemeral side
	sess.pile = append(sess.pile, played...)
	sess.lastPlay = &LastPlay{
		Username:     username,
		Position:     result.Position,
		Cards:        played,
		DeclaredRank: declaredRank,
		Count:        len(played),
	}
	result.PileSize = len(sess.pile)

	log.Printf("[PLAY] %s played %d card(s) declared as %q in game %s (pile: %d)",
		username, result.Count, declaredRank, sess.GameID, result.PileSize)
	return result, nil
}
