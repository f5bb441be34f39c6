package postgres

/*
 * 'GamePlayer' represents a seat: the durable membership of a user in one
 * specific game. It contains references to Game and GameProfile.
 *
 * Invariants: positions are a dense 0..N-1 permutation per game, and at
 * most one seat per game has IsTurn set while the game is playing.
 */
type GamePlayer struct {
	// NOTE: composite primary key definition
	GameID   string `gorm:"primaryKey;size:50;not null"`
	Username string `gorm:"primaryKey;size:50;not null;index"`
	Position int    `gorm:"not null"`
	IsTurn   bool   `gorm:"default:false"`
	IsWinner bool   `gorm:"default:false"`

	// Relationship with the game and the user's game profile
	Game        Game        `gorm:"foreignKey:GameID"`
	GameProfile GameProfile `gorm:"foreignKey:Username"`
}
