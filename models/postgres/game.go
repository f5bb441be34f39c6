package postgres

import (
	"math/rand"
	"time"

	"gorm.io/gorm"
)

// Game states. A game is created 'waiting', moves to 'playing' when cards
// are dealt and to 'ended' when someone wins or the host ends it. Ended
// games are kept (soft-ended), never deleted.
const (
	GameStateWaiting = "waiting"
	GameStatePlaying = "playing"
	GameStateEnded   = "ended"
)

/*
 * 'Game' defines the structure of a Farol game room. It contains references
 * to GameProfile (host) and GamePlayer (seats)
 */
type Game struct {
	ID           string    `gorm:"primaryKey;size:50;not null"`
	HostUsername string    `gorm:"size:50;index:idx_games_host"`
	State        string    `gorm:"size:20;default:'waiting';index:idx_games_state"`
	MaxPlayers   int       `gorm:"default:8"`
	CardsDealt   int       `gorm:"default:0"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Host    GameProfile   `gorm:"foreignKey:HostUsername"`
	Players []*GamePlayer `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Random game id generation
const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateGameID(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

// Ensure the generated id is unique before inserting. The id space is small
// on purpose (players type these codes by hand).
func (g *Game) BeforeCreate(tx *gorm.DB) (err error) {
	for {
		newID := generateGameID(4)
		var existing Game
		if err := tx.Where("id = ?", newID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				g.ID = newID
				return nil
			}
			return err
		}
		// Collision, loop again with a new id
	}
}
