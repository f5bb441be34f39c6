package postgres

import (
	"gorm.io/datatypes"
)

/*
 * 'GameProfile' defines the structure for a user's game profile. It is
 * referenced in User, Game and GamePlayer
 */
type GameProfile struct {
	Username  string         `gorm:"primaryKey;size:50;not null"`
	UserStats datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	UserIcon  int            `gorm:"default:0"`
	IsInAGame bool           `gorm:"default:false"`

	Games       []Game       `gorm:"foreignKey:HostUsername"`
	GamePlayers []GamePlayer `gorm:"foreignKey:Username"`
}
