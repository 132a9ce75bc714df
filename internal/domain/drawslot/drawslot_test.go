package drawslot

import (
	"context"
	"testing"
	"time"

	"github.com/lotoplay/backend/config"
	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newContext(cutoff time.Duration, defaults []string) context.Context {
	return xcontext.WithConfigs(context.Background(), config.Configs{
		Lottery: config.LotteryConfigs{
			Timezone:               "UTC",
			CutoffWindow:           cutoff,
			DefaultExtractionTimes: defaults,
		},
	})
}

func TestNext(t *testing.T) {
	ctx := newContext(5*time.Minute, nil)
	game := &entity.Game{ExtractionTimes: entity.Array[string]{"13:00", "21:00"}}

	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	next, err := Next(ctx, game, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC), next)

	// Inside the cutoff window the slot is no longer eligible.
	now = time.Date(2026, 3, 10, 12, 56, 0, 0, time.UTC)
	next, err = Next(ctx, game, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC), next)

	// Just outside the window the slot still counts.
	now = time.Date(2026, 3, 10, 12, 54, 0, 0, time.UTC)
	next, err = Next(ctx, game, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC), next)

	// Past the last slot of the day the first slot tomorrow applies.
	now = time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)
	next, err = Next(ctx, game, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 11, 13, 0, 0, 0, time.UTC), next)
}

func TestNext_SlotOrderDoesNotMatter(t *testing.T) {
	ctx := newContext(5*time.Minute, nil)
	game := &entity.Game{ExtractionTimes: entity.Array[string]{"21:00", "13:00"}}

	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	next, err := Next(ctx, game, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC), next)
}

func TestNext_FallbackChain(t *testing.T) {
	// A game without slots uses the configured defaults.
	ctx := newContext(5*time.Minute, []string{"18:30"})
	game := &entity.Game{}

	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	next, err := Next(ctx, game, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC), next)

	// Without configured defaults the built-in slots apply.
	ctx = newContext(5*time.Minute, nil)
	next, err = Next(ctx, game, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC), next)
}

func TestNext_CutoffAcrossMidnight(t *testing.T) {
	ctx := newContext(9*time.Minute, nil)
	game := &entity.Game{ExtractionTimes: entity.Array[string]{"00:05"}}

	// Tomorrow's only slot is six minutes away and falls inside the cutoff
	// window; the day after carries the first eligible slot.
	now := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	next, err := Next(ctx, game, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 12, 0, 5, 0, 0, time.UTC), next)
}

func TestNext_InvalidSlot(t *testing.T) {
	ctx := newContext(5*time.Minute, nil)
	game := &entity.Game{ExtractionTimes: entity.Array[string]{"25:00"}}

	_, err := Next(ctx, game, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))
	require.Error(t, err)
}
