package entity

import "github.com/lotoplay/backend/pkg/enum"

type GameKind string

var (
	// NumberPoolGame sells tickets over a fixed pool of zero-padded numbers.
	// Settlement follows the match-any model.
	NumberPoolGame = enum.New(GameKind("number_pool"))

	// RankedMatchGame sells tickets of exactly fourteen ordered categorical
	// guesses. Settlement follows the ranked-match model.
	RankedMatchGame = enum.New(GameKind("ranked_match"))

	// TimedPickGame sells tickets of player-chosen picks bounded by the game
	// modality. Settlement follows the match-any model.
	TimedPickGame = enum.New(GameKind("timed_pick"))
)

type NumberingMode string

var (
	RandomNumbering     = enum.New(NumberingMode("random"))
	SequentialNumbering = enum.New(NumberingMode("sequential"))
)

type Game struct {
	Base

	Name string
	Kind GameKind

	// ExtractionTimes holds the daily draw slots as "HH:mm" civil-time
	// strings.
	ExtractionTimes Array[string]

	// Financial defaults. A zero value falls back to the area config or the
	// process-wide default.
	CommissionRate   float64
	Multiplier       float64
	LiabilityCeiling float64

	NumberingMode    NumberingMode
	PoolSize         int
	NumbersPerTicket int

	// ModalityMax bounds every pick of a timed_pick game.
	ModalityMax int

	// GlobalUniqueness enforces bet-number uniqueness across all series of a
	// draw instead of within a single series.
	GlobalUniqueness bool

	// RestrictedMode limits the game to MaxTickets sequence-numbered tickets
	// per series scope.
	RestrictedMode bool
	MaxTickets     int

	IsActive bool
}
