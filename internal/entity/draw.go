package entity

import (
	"database/sql"
	"time"

	"github.com/lotoplay/backend/pkg/enum"
)

type DrawStatus string

var (
	DrawScheduled = enum.New(DrawStatus("scheduled"))
	DrawCompleted = enum.New(DrawStatus("completed"))
)

type MatchResult string

var (
	MatchHome = enum.New(MatchResult("home"))
	MatchDraw = enum.New(MatchResult("draw"))
	MatchAway = enum.New(MatchResult("away"))

	// MatchCancelled marks a fixture that was called off. It counts as a hit
	// for every guess when settling.
	MatchCancelled = enum.New(MatchResult("cancelled"))
)

// NumberOfMatches is the fixed length of a ranked-match card.
const NumberOfMatches = 14

type Draw struct {
	Base

	GameID string
	Game   Game `gorm:"foreignKey:GameID"`

	// AreaID scopes the draw to a single sales area when valid.
	AreaID sql.NullString

	DrawDate time.Time

	// Numbers holds the winning numbers of a match-any draw. Empty until the
	// draw is resulted.
	Numbers Array[string]

	// Matches holds the NumberOfMatches ordered results of a ranked-match
	// draw. Empty until the draw is resulted.
	Matches Array[MatchResult]

	Status DrawStatus
}
