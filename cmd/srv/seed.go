package main

import (
	"context"

	"github.com/BurntSushi/toml"
	"github.com/lotoplay/backend/internal/model"
)

type gameSeed struct {
	Games []struct {
		Name             string   `toml:"name"`
		Kind             string   `toml:"kind"`
		ExtractionTimes  []string `toml:"extraction_times"`
		CommissionRate   float64  `toml:"commission_rate"`
		Multiplier       float64  `toml:"multiplier"`
		LiabilityCeiling float64  `toml:"liability_ceiling"`
		NumberingMode    string   `toml:"numbering_mode"`
		PoolSize         int      `toml:"pool_size"`
		NumbersPerTicket int      `toml:"numbers_per_ticket"`
		ModalityMax      int      `toml:"modality_max"`
		GlobalUniqueness bool     `toml:"global_uniqueness"`
		RestrictedMode   bool     `toml:"restricted_mode"`
		MaxTickets       int      `toml:"max_tickets"`
	} `toml:"games"`
}

// seedGames inserts the games of the seed file on first start. A database
// that already holds games is left untouched.
func (s *srv) seedGames(ctx context.Context) {
	path := s.configs.Lottery.GameSeedFile
	if path == "" {
		return
	}

	existing, err := s.gameRepo.GetList(ctx)
	if err != nil {
		panic(err)
	}

	if len(existing) > 0 {
		return
	}

	var seed gameSeed
	if _, err := toml.DecodeFile(path, &seed); err != nil {
		panic(err)
	}

	for _, game := range seed.Games {
		_, err := s.gameDomain.CreateGame(ctx, &model.CreateGameRequest{
			Name:             game.Name,
			Kind:             game.Kind,
			ExtractionTimes:  game.ExtractionTimes,
			CommissionRate:   game.CommissionRate,
			Multiplier:       game.Multiplier,
			LiabilityCeiling: game.LiabilityCeiling,
			NumberingMode:    game.NumberingMode,
			PoolSize:         game.PoolSize,
			NumbersPerTicket: game.NumbersPerTicket,
			ModalityMax:      game.ModalityMax,
			GlobalUniqueness: game.GlobalUniqueness,
			RestrictedMode:   game.RestrictedMode,
			MaxTickets:       game.MaxTickets,
		})
		if err != nil {
			panic(err)
		}

		s.logger.Infof("Seeded game %s", game.Name)
	}
}
