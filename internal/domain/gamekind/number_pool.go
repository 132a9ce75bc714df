package gamekind

import (
	"strings"

	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/pkg/crypto"
	"github.com/lotoplay/backend/pkg/errorx"
)

// maxRandomAttempts bounds rejection sampling before falling back to a
// linear scan of the pool.
const maxRandomAttempts = 100

type numberPoolStrategy struct{}

func (numberPoolStrategy) PoolBacked() bool { return true }

func (numberPoolStrategy) ValidateNumbers(game *entity.Game, numbers []string) error {
	if len(numbers) == 0 {
		// The generator assigns numbers from the pool.
		return nil
	}

	if len(numbers) != game.NumbersPerTicket {
		return errorx.New(errorx.BadRequest,
			"Expected exactly %d numbers, got %d", game.NumbersPerTicket, len(numbers))
	}

	seen := map[string]struct{}{}
	for _, s := range numbers {
		n, err := parseInRange(s, game.PoolSize-1)
		if err != nil {
			return err
		}

		formatted := FormatNumber(n, game.PoolSize)
		if _, ok := seen[formatted]; ok {
			return errorx.New(errorx.BadRequest, "Duplicated number %s on the ticket", formatted)
		}
		seen[formatted] = struct{}{}
	}

	return nil
}

func (s numberPoolStrategy) AssignNumbers(
	game *entity.Game, requested []string, sold map[string]struct{},
) ([]string, error) {
	if len(requested) > 0 {
		numbers := make([]string, 0, len(requested))
		var conflicts []string
		for _, raw := range requested {
			n, err := parseInRange(raw, game.PoolSize-1)
			if err != nil {
				return nil, err
			}

			formatted := FormatNumber(n, game.PoolSize)
			if _, taken := sold[formatted]; taken {
				conflicts = append(conflicts, formatted)
			}
			numbers = append(numbers, formatted)
		}

		if len(conflicts) > 0 {
			return nil, errorx.New(errorx.AlreadyExists,
				"Numbers already sold: %s", strings.Join(conflicts, ", "))
		}

		return numbers, nil
	}

	k := game.NumbersPerTicket
	if game.PoolSize-len(sold) < k {
		return nil, errorx.New(errorx.SoldOut, "Not enough unsold numbers remaining")
	}

	if game.NumberingMode == entity.SequentialNumbering {
		return s.pickSequential(game, k, sold), nil
	}

	return s.pickRandom(game, k, sold), nil
}

// pickRandom draws k distinct unused numbers uniformly from the unsold
// complement. Rejection sampling covers the common sparse case; a linear
// scan finishes the job when the pool is nearly full.
func (numberPoolStrategy) pickRandom(game *entity.Game, k int, sold map[string]struct{}) []string {
	taken := make(map[string]struct{}, len(sold)+k)
	for n := range sold {
		taken[n] = struct{}{}
	}

	picked := make([]string, 0, k)
	for len(picked) < k {
		found := false
		for attempt := 0; attempt < maxRandomAttempts; attempt++ {
			candidate := FormatNumber(crypto.RandIntn(game.PoolSize), game.PoolSize)
			if _, ok := taken[candidate]; !ok {
				picked = append(picked, candidate)
				taken[candidate] = struct{}{}
				found = true
				break
			}
		}

		if !found {
			offset := crypto.RandIntn(game.PoolSize)
			for i := 0; i < game.PoolSize; i++ {
				candidate := FormatNumber((offset+i)%game.PoolSize, game.PoolSize)
				if _, ok := taken[candidate]; !ok {
					picked = append(picked, candidate)
					taken[candidate] = struct{}{}
					break
				}
			}
		}
	}

	return picked
}

// pickSequential returns the k lowest unused numbers in ascending order.
func (numberPoolStrategy) pickSequential(game *entity.Game, k int, sold map[string]struct{}) []string {
	picked := make([]string, 0, k)
	for n := 0; n < game.PoolSize && len(picked) < k; n++ {
		candidate := FormatNumber(n, game.PoolSize)
		if _, ok := sold[candidate]; !ok {
			picked = append(picked, candidate)
		}
	}

	return picked
}

func (numberPoolStrategy) PossiblePrize(amount float64, numbers int, multiplier float64) float64 {
	return amount / float64(numbers) * multiplier
}

func (numberPoolStrategy) Exposure(amount float64, numbers int, multiplier float64) float64 {
	return amount / float64(numbers) * multiplier
}

func (numberPoolStrategy) Settle(draw *entity.Draw, numbers []string) (bool, bool) {
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
