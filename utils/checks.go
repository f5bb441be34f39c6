package utils

import (
	models "Farol/models/postgres"
	"fmt"

	"gorm.io/gorm"
)

// Function to check if a game exists
func CheckGameExists(db *gorm.DB, gameID string) (*models.Game, error) {
	var g models.Game
	result := db.Where("id = ?", gameID).First(&g)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("game not found")
		}
		return nil, result.Error
	}

	return &g, nil
}

func IsPlayerInGame(db *gorm.DB, gameID string, username string) (bool, error) {
	var count int64
	err := db.Model(&models.GamePlayer{}).
		Where("game_id = ? AND username = ?", gameID, username).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Returns the icon of the user
func UserIcon(db *gorm.DB, username string) int {
	var icon int
	err := db.Model(&models.GameProfile{}).
		Select("user_icon").
		Where("username = ?", username).
		Find(&icon).Error
	if err != nil {
		return 1
	}

	return icon
}
