package gamekind

import (
	"testing"

	"github.com/lotoplay/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func TestTimedPick_ValidateNumbers(t *testing.T) {
	s := timedPickStrategy{}
	game := &entity.Game{Kind: entity.TimedPickGame, NumbersPerTicket: 2, ModalityMax: 25}

	require.NoError(t, s.ValidateNumbers(game, []string{"0", "25"}))

	err := s.ValidateNumbers(game, []string{"3"})
	require.Error(t, err)
	require.Equal(t, "Expected exactly 2 picks, got 1", err.Error())

	err = s.ValidateNumbers(game, []string{"3", "26"})
	require.Error(t, err)
	require.Equal(t, "Pick 26 out of the modality range [0, 25]", err.Error())
}

func TestTimedPick_AssignNumbers(t *testing.T) {
	s := timedPickStrategy{}
	game := &entity.Game{Kind: entity.TimedPickGame, NumbersPerTicket: 2, ModalityMax: 25}

	// Zero-padded picks normalize to their plain form.
	numbers, err := s.AssignNumbers(game, []string{"07", "3"}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"7", "3"}, numbers)

	_, err = s.AssignNumbers(game, nil, nil)
	require.Error(t, err)
}

func TestTimedPick_Settle(t *testing.T) {
	s := timedPickStrategy{}

	won, resultable := s.Settle(&entity.Draw{}, []string{"7"})
	require.False(t, resultable)
	require.False(t, won)

	draw := &entity.Draw{Numbers: entity.Array[string]{"7"}}
	won, resultable = s.Settle(draw, []string{"3", "7"})
	require.True(t, resultable)
	require.True(t, won)

	won, _ = s.Settle(draw, []string{"3", "8"})
	require.False(t, won)
}
