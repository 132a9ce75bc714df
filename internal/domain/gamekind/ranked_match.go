package gamekind

import (
	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/pkg/enum"
	"github.com/lotoplay/backend/pkg/errorx"
)

// minimumHits is the lowest number of correct guesses that still wins a
// ranked-match card.
const minimumHits = entity.NumberOfMatches - 1

type rankedMatchStrategy struct{}

func (rankedMatchStrategy) PoolBacked() bool { return false }

func (rankedMatchStrategy) ValidateNumbers(game *entity.Game, numbers []string) error {
	if len(numbers) != entity.NumberOfMatches {
		return errorx.New(errorx.BadRequest,
			"Expected exactly %d guesses, got %d", entity.NumberOfMatches, len(numbers))
	}

	for i, guess := range numbers {
		result, err := enum.ToEnum[entity.MatchResult](guess)
		if err != nil || result == entity.MatchCancelled {
			return errorx.New(errorx.BadRequest, "Invalid guess %s at position %d", guess, i+1)
		}
	}

	return nil
}

func (rankedMatchStrategy) AssignNumbers(
	game *entity.Game, requested []string, sold map[string]struct{},
) ([]string, error) {
	if len(requested) == 0 {
		return nil, errorx.New(errorx.BadRequest, "A card of guesses is required")
	}

	return requested, nil
}

// PossiblePrize for ranked cards is the stake times the multiplier. The
// tier-based parimutuel split across 13 and 14 hit winners is an external
// pricing decision.
func (rankedMatchStrategy) PossiblePrize(amount float64, numbers int, multiplier float64) float64 {
	return amount * multiplier
}

func (rankedMatchStrategy) Exposure(amount float64, numbers int, multiplier float64) float64 {
	return 0
}

func (rankedMatchStrategy) Settle(draw *entity.Draw, numbers []string) (bool, bool) {
	if len(draw.Matches) != entity.NumberOfMatches || len(numbers) != entity.NumberOfMatches {
		return false, len(draw.Matches) == entity.NumberOfMatches
	}

	hits := 0
	for i, result := range draw.Matches {
		// A cancelled fixture counts as a hit for every guess.
		if result == entity.MatchCancelled || string(result) == numbers[i] {
			hits++
		}
	}

	return hits >= minimumHits, true
}
