package gamekind

import (
	"strconv"

	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/pkg/errorx"
)

type timedPickStrategy struct{}

func (timedPickStrategy) PoolBacked() bool { return false }

func (timedPickStrategy) ValidateNumbers(game *entity.Game, numbers []string) error {
	if len(numbers) != game.NumbersPerTicket {
		return errorx.New(errorx.BadRequest,
			"Expected exactly %d picks, got %d", game.NumbersPerTicket, len(numbers))
	}

	for _, s := range numbers {
		if _, err := parseInRange(s, game.ModalityMax); err != nil {
			return errorx.New(errorx.BadRequest,
				"Pick %s out of the modality range [0, %d]", s, game.ModalityMax)
		}
	}

	return nil
}

func (timedPickStrategy) AssignNumbers(
	game *entity.Game, requested []string, sold map[string]struct{},
) ([]string, error) {
	if len(requested) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Picks are required")
	}

	// Normalize "07" and "7" to the same pick.
	numbers := make([]string, 0, len(requested))
	for _, s := range requested {
		n, err := parseInRange(s, game.ModalityMax)
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, strconv.Itoa(n))
	}

	return numbers, nil
}

func (timedPickStrategy) PossiblePrize(amount float64, numbers int, multiplier float64) float64 {
	return amount / float64(numbers) * multiplier
}

func (timedPickStrategy) Exposure(amount float64, numbers int, multiplier float64) float64 {
	return amount / float64(numbers) * multiplier
}

func (timedPickStrategy) Settle(draw *entity.Draw, numbers []string) (bool, bool) {
	if len(draw.Numbers) == 0 {
		return false, false
	}

	winning := make(map[string]struct{}, len(draw.Numbers))
	for _, n := range draw.Numbers {
		winning[n] = struct{}{}
	}

	for _, n := range numbers {
		if _, ok := winning[n]; ok {
			return true, true
		}
	}

	return false, true
}
