package gamekind

import (
	"fmt"
	"strconv"

	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/pkg/errorx"
)

// Strategy is the closed set of behaviors a game kind must provide. The kind
// is resolved once at the boundary of ticket issuance or settlement and
// dispatched polymorphically afterwards.
type Strategy interface {
	// ValidateNumbers checks player-chosen numbers against the game rules.
	// Pool games that auto-assign accept an empty slice.
	ValidateNumbers(game *entity.Game, numbers []string) error

	// AssignNumbers returns the final bet numbers of the ticket. sold holds
	// the numbers already taken in the allocation scope.
	AssignNumbers(game *entity.Game, requested []string, sold map[string]struct{}) ([]string, error)

	// PoolBacked reports whether the kind allocates numbers from a shared
	// pool and therefore enforces number uniqueness within its scope.
	PoolBacked() bool

	// PossiblePrize returns the payout the ticket commands when it wins. It
	// is fixed at issuance and never recomputed by settlement.
	PossiblePrize(amount float64, numbers int, multiplier float64) float64

	// Exposure returns the house liability carried by a single number of the
	// ticket. Zero disables the liability guard for this kind.
	Exposure(amount float64, numbers int, multiplier float64) float64

	// Settle classifies the ticket against the draw results. A resultable of
	// false means the draw carries no usable result yet and settlement must
	// leave the ticket untouched.
	Settle(draw *entity.Draw, numbers []string) (won bool, resultable bool)
}

// New returns the strategy of a game kind. Unknown kinds are a configuration
// error, not a branch to default through.
func New(kind entity.GameKind) (Strategy, error) {
	switch kind {
	case entity.NumberPoolGame:
		return numberPoolStrategy{}, nil
	case entity.RankedMatchGame:
		return rankedMatchStrategy{}, nil
	case entity.TimedPickGame:
		return timedPickStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown game kind %s", kind)
	}
}

// FormatNumber renders a pool number zero-padded to the width of the pool.
// A pool of 10000 yields 4-digit numbers.
func FormatNumber(n, poolSize int) string {
	width := len(strconv.Itoa(poolSize - 1))
	return fmt.Sprintf("%0*d", width, n)
}

func parseInRange(s string, max int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > max {
		return 0, errorx.New(errorx.BadRequest, "Invalid number %s", s)
	}

	return n, nil
}
