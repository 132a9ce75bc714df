package gamekind

import (
	"testing"

	"github.com/lotoplay/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, kind := range []entity.GameKind{
		entity.NumberPoolGame, entity.RankedMatchGame, entity.TimedPickGame,
	} {
		strategy, err := New(kind)
		require.NoError(t, err)
		require.NotNil(t, strategy)
	}

	_, err := New(entity.GameKind("roulette"))
	require.Error(t, err)
}

func TestFormatNumber(t *testing.T) {
	require.Equal(t, "07", FormatNumber(7, 100))
	require.Equal(t, "0007", FormatNumber(7, 10000))
	require.Equal(t, "7", FormatNumber(7, 10))
	require.Equal(t, "00", FormatNumber(0, 100))
	require.Equal(t, "99", FormatNumber(99, 100))
}
