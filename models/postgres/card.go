package postgres

/*
 * 'Card' is reference data: one row per card of the standard 52-card deck,
 * seeded at migration time. Rank is 1..13 (1=Ace, 11=Jack, 12=Queen,
 * 13=King); every (rank, suit) pair exists exactly once.
 */
type Card struct {
	ID   int    `gorm:"primaryKey"`
	Rank int    `gorm:"not null;index:idx_cards_rank"`
	Suit string `gorm:"size:10;not null"`
}

/*
 * 'HandCard' associates a dealt card with the seat currently holding it.
 * A row exists while the card sits in a player's hand; it is deleted when
 * the card is played onto the (in-memory) pile and re-inserted for whoever
 * receives the pile after a challenge.
 */
type HandCard struct {
	// NOTE: composite primary key definition
	GameID   string `gorm:"primaryKey;size:50;not null"`
	CardID   int    `gorm:"primaryKey;not null"`
	Username string `gorm:"size:50;not null;index:idx_hand_cards_owner"`

	Game Game `gorm:"foreignKey:GameID"`
	Card Card `gorm:"foreignKey:CardID"`
}
