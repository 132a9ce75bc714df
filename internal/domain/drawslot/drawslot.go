package drawslot

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/pkg/xcontext"
)

// defaultSlots is assumed when neither the game nor the configuration
// provides extraction times.
var defaultSlots = []string{"13:00", "21:00"}

// Next computes the next eligible draw timestamp of a game: the first
// configured extraction time strictly more than the cutoff window ahead of
// now, today or tomorrow. All comparisons happen in the configured civil
// timezone.
func Next(ctx context.Context, game *entity.Game, now time.Time) (time.Time, error) {
	cfg := xcontext.Configs(ctx).Lottery

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid lottery timezone %q: %w", cfg.Timezone, err)
	}

	slots := []string(game.ExtractionTimes)
	if len(slots) == 0 {
		slots = cfg.DefaultExtractionTimes
	}
	if len(slots) == 0 {
		slots = defaultSlots
	}

	parsed := make([]time.Duration, 0, len(slots))
	for _, slot := range slots {
		var hh, mm int
		if _, err := fmt.Sscanf(slot, "%d:%d", &hh, &mm); err != nil || hh < 0 || hh > 23 || mm < 0 || mm > 59 {
			return time.Time{}, fmt.Errorf("invalid extraction time %q", slot)
		}

		parsed = append(parsed, time.Duration(hh)*time.Hour+time.Duration(mm)*time.Minute)
	}

	sort.Slice(parsed, func(i, j int) bool { return parsed[i] < parsed[j] })

	localNow := now.In(loc)
	midnight := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)

	// The first slot of the next day can still sit inside the cutoff window
	// when now is close to midnight, so every candidate passes the same
	// predicate regardless of its day.
	for day := 0; day <= 2; day++ {
		base := midnight.AddDate(0, 0, day)
		for _, offset := range parsed {
			candidate := base.Add(offset)
			if candidate.Sub(localNow) > cfg.CutoffWindow {
				return candidate, nil
			}
		}
	}

	return time.Time{}, fmt.Errorf("no extraction time clears the cutoff window %s", cfg.CutoffWindow)
}
