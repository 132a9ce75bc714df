package gamekind

import (
	"testing"

	"github.com/lotoplay/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func poolGame(poolSize, perTicket int) *entity.Game {
	return &entity.Game{
		Kind:             entity.NumberPoolGame,
		PoolSize:         poolSize,
		NumbersPerTicket: perTicket,
		NumberingMode:    entity.RandomNumbering,
	}
}

func TestNumberPool_ValidateNumbers(t *testing.T) {
	s := numberPoolStrategy{}
	game := poolGame(100, 2)

	require.NoError(t, s.ValidateNumbers(game, nil))
	require.NoError(t, s.ValidateNumbers(game, []string{"7", "42"}))

	err := s.ValidateNumbers(game, []string{"7"})
	require.Error(t, err)
	require.Equal(t, "Expected exactly 2 numbers, got 1", err.Error())

	err = s.ValidateNumbers(game, []string{"7", "100"})
	require.Error(t, err)
	require.Equal(t, "Invalid number 100", err.Error())

	// Leading zeros do not make a number distinct.
	err = s.ValidateNumbers(game, []string{"7", "07"})
	require.Error(t, err)
	require.Equal(t, "Duplicated number 07 on the ticket", err.Error())
}

func TestNumberPool_AssignNumbers(t *testing.T) {
	s := numberPoolStrategy{}
	game := poolGame(100, 1)
	sold := map[string]struct{}{"07": {}}

	numbers, err := s.AssignNumbers(game, []string{"8"}, sold)
	require.NoError(t, err)
	require.Equal(t, []string{"08"}, numbers)

	_, err = s.AssignNumbers(game, []string{"7"}, sold)
	require.Error(t, err)
	require.Equal(t, "Numbers already sold: 07", err.Error())
}

func TestNumberPool_AssignNumbers_Random(t *testing.T) {
	s := numberPoolStrategy{}
	game := poolGame(10, 2)

	// Only 8 and 9 remain unsold.
	sold := map[string]struct{}{}
	for _, n := range []string{"0", "1", "2", "3", "4", "5", "6", "7"} {
		sold[n] = struct{}{}
	}

	numbers, err := s.AssignNumbers(game, nil, sold)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"8", "9"}, numbers)

	sold["8"] = struct{}{}
	_, err = s.AssignNumbers(game, nil, sold)
	require.Error(t, err)
	require.Equal(t, "Not enough unsold numbers remaining", err.Error())
}

func TestNumberPool_AssignNumbers_Sequential(t *testing.T) {
	s := numberPoolStrategy{}
	game := poolGame(10, 2)
	game.NumberingMode = entity.SequentialNumbering

	numbers, err := s.AssignNumbers(game, nil, map[string]struct{}{"0": {}, "2": {}})
	require.NoError(t, err)
	require.Equal(t, []string{"1", "3"}, numbers)
}

func TestNumberPool_Settle(t *testing.T) {
	s := numberPoolStrategy{}

	won, resultable := s.Settle(&entity.Draw{}, []string{"07"})
	require.False(t, resultable)
	require.False(t, won)

	draw := &entity.Draw{Numbers: entity.Array[string]{"07", "51"}}

	won, resultable = s.Settle(draw, []string{"03", "51"})
	require.True(t, resultable)
	require.True(t, won)

	won, resultable = s.Settle(draw, []string{"03", "04"})
	require.True(t, resultable)
	require.False(t, won)
}

func TestNumberPool_Financials(t *testing.T) {
	s := numberPoolStrategy{}
	require.Equal(t, float64(350), s.PossiblePrize(10, 2, 70))
	require.Equal(t, float64(350), s.Exposure(10, 2, 70))
}
