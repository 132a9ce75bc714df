package entity

import "database/sql"

// AreaConfig overrides the financial parameters of a game for a single sales
// area. Null fields fall back to the game, then to the process default.
type AreaConfig struct {
	Base

	AreaID string `gorm:"uniqueIndex:idx_area_config_area_game"`
	Area   Area   `gorm:"foreignKey:AreaID"`

	GameID string `gorm:"uniqueIndex:idx_area_config_area_game"`
	Game   Game   `gorm:"foreignKey:GameID"`

	CommissionRate   sql.NullFloat64
	Multiplier       sql.NullFloat64
	LiabilityCeiling sql.NullFloat64
}
