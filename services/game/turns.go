package game

import (
	models "Farol/models/postgres"
	"fmt"

	"gorm.io/gorm"
)

// NextPosition computes the seat that plays after the given position.
func NextPosition(current, playerCount int) int {
	return (current + 1) % playerCount
}

// advanceTurn moves the turn flag to the next seat in position order and
// returns the new turn position. If no seat currently holds the turn (a
// freshly started game), the turn is initialized to position 0.
// Must run inside the operation's transaction.
func advanceTurn(tx *gorm.DB, gameID string) (int, error) {
	var players []models.GamePlayer
	if err := tx.Where("game_id = ?", gameID).Order("position").Find(&players).Error; err != nil {
		return 0, fmt.Errorf("error loading seats: %w", err)
	}
	if len(players) == 0 {
		return 0, fmt.Errorf("no seats found for game %s", gameID)
	}

	current := -1
	for _, p := range players {
		if p.IsTurn {
			current = p.Position
			break
		}
	}

	next := 0
	if current >= 0 {
		next = NextPosition(current, len(players))
	}

	if err := clearTurnFlags(tx, gameID); err != nil {
		return 0, err
	}
	err := tx.Model(&models.GamePlayer{}).
		Where("game_id = ? AND position = ?", gameID, next).
		Update("is_turn", true).Error
	if err != nil {
		return 0, fmt.Errorf("error setting turn flag: %w", err)
	}
	return next, nil
}

// setTurn redirects the turn to a specific seat (used by the challenge
// resolver to hand the turn to whoever received the pile) and returns that
// seat's position. Must run inside the operation's transaction.
func setTurn(tx *gorm.DB, gameID string, username string) (int, error) {
	var seat models.GamePlayer
	if err := tx.Where("game_id = ? AND username = ?", gameID, username).First(&seat).Error; err != nil {
		return 0, fmt.Errorf("error loading seat for %s: %w", username, err)
	}

	if err := clearTurnFlags(tx, gameID); err != nil {
		return 0, err
	}
	err := tx.Model(&models.GamePlayer{}).
		Where("game_id = ? AND username = ?", gameID, username).
		Update("is_turn", true).Error
	if err != nil {
		return 0, fmt.Errorf("error setting turn flag: %w", err)
	}
	return seat.Position, nil
}

// clearTurnFlags drops every turn flag of a game so that exactly one can be
// set afterwards.
func clearTurnFlags(tx *gorm.DB, gameID string) error {
	err := tx.Model(&models.GamePlayer{}).
		Where("game_id = ? AND is_turn = ?", gameID, true).
		Update("is_turn", false).Error
	if err != nil {
		return fmt.Errorf("error clearing turn flags: %w", err)
	}
	return nil
}
