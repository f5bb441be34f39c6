package handlers

import (
	models "Farol/models/postgres"
	"Farol/services/game"
	socketio_types "Farol/services/socket_io/types"
	"log"

	"gorm.io/gorm"
)

// ReleaseSessionIfAbandoned drops a game's ephemeral session when nothing
// will use it again: the game row is gone, the game has ended, or no seated
// player is connected anymore. A session released mid-play loses its pile,
// same as a process restart; the game continues from its durable state.
func ReleaseSessionIfAbandoned(db *gorm.DB, registry *game.Registry,
	sio *socketio_types.SocketServer, gameID string) {

	if _, exists := registry.Get(gameID); !exists {
		return
	}

	var g models.Game
	if err := db.Where("id = ?", gameID).First(&g).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			registry.Remove(gameID)
			log.Printf("[SESSION] Released session of missing game %s", gameID)
		}
		return
	}

	if g.State == models.GameStateEnded {
		registry.Remove(gameID)
		log.Printf("[SESSION] Released session of ended game %s", gameID)
		return
	}

	var players []models.GamePlayer
	if err := db.Where("game_id = ?", gameID).Find(&players).Error; err != nil {
		log.Printf("[SESSION-ERROR] Error loading seats of game %s: %v", gameID, err)
		return
	}
	for _, p := range players {
		if _, connected := sio.GetConnection(p.Username); connected {
			return
		}
	}

	registry.Remove(gameID)
	log.Printf("[SESSION] Released session of abandoned game %s", gameID)
}
