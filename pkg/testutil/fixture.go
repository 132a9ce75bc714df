package testutil

import (
	"context"

	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/internal/repository"
)

// CreateFixtureDb inserts a small, well-known set of users, areas, and games
// into the database held by ctx. Tests reference the fixture rows by their
// literal identifiers.
func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertAreas(ctx)
	InsertGames(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()

	// user1
	err := userRepo.Create(ctx, &entity.User{
		Base:     entity.Base{ID: "user1"},
		Name:     "User 1",
		IsActive: true,
	})
	if err != nil {
		panic(err)
	}

	// user2 has a daily stake limit.
	err = userRepo.Create(ctx, &entity.User{
		Base:            entity.Base{ID: "user2"},
		Name:            "User 2",
		IsActive:        true,
		DailyStakeLimit: 100,
	})
	if err != nil {
		panic(err)
	}

	// banned_user cannot buy anything.
	err = userRepo.Create(ctx, &entity.User{
		Base: entity.Base{ID: "banned_user"},
		Name: "Banned User",
	})
	if err != nil {
		panic(err)
	}
}

func InsertAreas(ctx context.Context) {
	areaRepo := repository.NewAreaRepository()

	err := areaRepo.Create(ctx, &entity.Area{
		Base:                entity.Base{ID: "area1"},
		Name:                "Area 1",
		CurrentSeries:       "0001",
		MaxTicketsPerSeries: 100,
		IsActive:            true,
		AutoCycleSeries:     true,
	})
	if err != nil {
		panic(err)
	}

	// area2 holds very small series and warns near saturation.
	err = areaRepo.Create(ctx, &entity.Area{
		Base:                entity.Base{ID: "area2"},
		Name:                "Area 2",
		CurrentSeries:       "0001",
		MaxTicketsPerSeries: 3,
		IsActive:            true,
		AutoCycleSeries:     true,
		WarningThreshold:    0.6,
		NotifyOnWarning:     true,
	})
	if err != nil {
		panic(err)
	}

	// area3 does not cycle and is one ticket away from exhaustion.
	err = areaRepo.Create(ctx, &entity.Area{
		Base:                entity.Base{ID: "area3"},
		Name:                "Area 3",
		CurrentSeries:       "0042",
		TicketsInSeries:     1,
		MaxTicketsPerSeries: 2,
		IsActive:            true,
	})
	if err != nil {
		panic(err)
	}

	// paused_area is temporarily out of sale.
	err = areaRepo.Create(ctx, &entity.Area{
		Base:                entity.Base{ID: "paused_area"},
		Name:                "Paused Area",
		CurrentSeries:       "0001",
		MaxTicketsPerSeries: 100,
	})
	if err != nil {
		panic(err)
	}
}

func InsertGames(ctx context.Context) {
	gameRepo := repository.NewGameRepository()

	// pool_game draws one number out of one hundred per ticket.
	err := gameRepo.Create(ctx, &entity.Game{
		Base:             entity.Base{ID: "pool_game"},
		Name:             "Pool Game",
		Kind:             entity.NumberPoolGame,
		ExtractionTimes:  entity.Array[string]{"13:00", "21:00"},
		NumberingMode:    entity.RandomNumbering,
		PoolSize:         100,
		NumbersPerTicket: 1,
		IsActive:         true,
	})
	if err != nil {
		panic(err)
	}

	// global_game enforces number uniqueness across all series.
	err = gameRepo.Create(ctx, &entity.Game{
		Base:             entity.Base{ID: "global_game"},
		Name:             "Global Game",
		Kind:             entity.NumberPoolGame,
		ExtractionTimes:  entity.Array[string]{"13:00", "21:00"},
		NumberingMode:    entity.SequentialNumbering,
		PoolSize:         50,
		NumbersPerTicket: 1,
		GlobalUniqueness: true,
		IsActive:         true,
	})
	if err != nil {
		panic(err)
	}

	err = gameRepo.Create(ctx, &entity.Game{
		Base:            entity.Base{ID: "ranked_game"},
		Name:            "Ranked Game",
		Kind:            entity.RankedMatchGame,
		ExtractionTimes: entity.Array[string]{"18:00"},
		Multiplier:      10,
		IsActive:        true,
	})
	if err != nil {
		panic(err)
	}

	err = gameRepo.Create(ctx, &entity.Game{
		Base:             entity.Base{ID: "timed_game"},
		Name:             "Timed Game",
		Kind:             entity.TimedPickGame,
		ExtractionTimes:  entity.Array[string]{"13:00", "21:00"},
		NumbersPerTicket: 2,
		ModalityMax:      25,
		IsActive:         true,
	})
	if err != nil {
		panic(err)
	}

	// restricted_game caps every series at five numbered tickets.
	err = gameRepo.Create(ctx, &entity.Game{
		Base:             entity.Base{ID: "restricted_game"},
		Name:             "Restricted Game",
		Kind:             entity.NumberPoolGame,
		ExtractionTimes:  entity.Array[string]{"13:00", "21:00"},
		NumberingMode:    entity.SequentialNumbering,
		PoolSize:         100,
		NumbersPerTicket: 1,
		RestrictedMode:   true,
		MaxTickets:       5,
		IsActive:         true,
	})
	if err != nil {
		panic(err)
	}

	// disabled_game is kept for history but sells nothing.
	err = gameRepo.Create(ctx, &entity.Game{
		Base:             entity.Base{ID: "disabled_game"},
		Name:             "Disabled Game",
		Kind:             entity.NumberPoolGame,
		ExtractionTimes:  entity.Array[string]{"13:00"},
		PoolSize:         10,
		NumbersPerTicket: 1,
	})
	if err != nil {
		panic(err)
	}
}
