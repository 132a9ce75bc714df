package gamekind

import (
	"testing"

	"github.com/lotoplay/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func card(guess string) []string {
	result := make([]string, entity.NumberOfMatches)
	for i := range result {
		result[i] = guess
	}

	return result
}

func TestRankedMatch_ValidateNumbers(t *testing.T) {
	s := rankedMatchStrategy{}
	game := &entity.Game{Kind: entity.RankedMatchGame}

	require.NoError(t, s.ValidateNumbers(game, card("home")))

	err := s.ValidateNumbers(game, card("home")[:13])
	require.Error(t, err)
	require.Equal(t, "Expected exactly 14 guesses, got 13", err.Error())

	err = s.ValidateNumbers(game, card("banana"))
	require.Error(t, err)
	require.Equal(t, "Invalid guess banana at position 1", err.Error())

	// A player cannot guess a cancellation.
	err = s.ValidateNumbers(game, card("cancelled"))
	require.Error(t, err)
}

func TestRankedMatch_Settle(t *testing.T) {
	s := rankedMatchStrategy{}

	// An unresulted draw settles nothing.
	won, resultable := s.Settle(&entity.Draw{}, card("home"))
	require.False(t, resultable)
	require.False(t, won)

	matches := make(entity.Array[entity.MatchResult], entity.NumberOfMatches)
	for i := range matches {
		matches[i] = entity.MatchHome
	}
	draw := &entity.Draw{Matches: matches}

	// A full card of correct guesses wins.
	won, resultable = s.Settle(draw, card("home"))
	require.True(t, resultable)
	require.True(t, won)

	// Thirteen hits still win.
	almost := card("home")
	almost[0] = "away"
	won, _ = s.Settle(draw, almost)
	require.True(t, won)

	// Twelve do not.
	almost[1] = "away"
	won, _ = s.Settle(draw, almost)
	require.False(t, won)

	// A cancelled fixture counts as a hit for any guess.
	draw.Matches[1] = entity.MatchCancelled
	won, _ = s.Settle(draw, almost)
	require.True(t, won)
}

func TestRankedMatch_Financials(t *testing.T) {
	s := rankedMatchStrategy{}
	require.Equal(t, float64(50), s.PossiblePrize(5, entity.NumberOfMatches, 10))

	// Ranked cards carry no per-number liability.
	require.Equal(t, float64(0), s.Exposure(5, entity.NumberOfMatches, 10))
}
