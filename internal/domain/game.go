package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/internal/model"
	"github.com/lotoplay/backend/internal/repository"
	"github.com/lotoplay/backend/pkg/enum"
	"github.com/lotoplay/backend/pkg/errorx"
	"github.com/lotoplay/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GameDomain interface {
	CreateGame(context.Context, *model.CreateGameRequest) (*model.CreateGameResponse, error)
	DisableGame(context.Context, *model.DisableGameRequest) (*model.DisableGameResponse, error)
	GetGames(context.Context, *model.GetGamesRequest) (*model.GetGamesResponse, error)
	CreateArea(context.Context, *model.CreateAreaRequest) (*model.CreateAreaResponse, error)
	UpsertAreaConfig(context.Context, *model.UpsertAreaConfigRequest) (*model.UpsertAreaConfigResponse, error)
}

type gameDomain struct {
	gameRepo       repository.GameRepository
	areaRepo       repository.AreaRepository
	areaConfigRepo repository.AreaConfigRepository
}

func NewGameDomain(
	gameRepo repository.GameRepository,
	areaRepo repository.AreaRepository,
	areaConfigRepo repository.AreaConfigRepository,
) *gameDomain {
	return &gameDomain{
		gameRepo:       gameRepo,
		areaRepo:       areaRepo,
		areaConfigRepo: areaConfigRepo,
	}
}

func (d *gameDomain) CreateGame(
	ctx context.Context, req *model.CreateGameRequest,
) (*model.CreateGameResponse, error) {
	kind, err := enum.ToEnum[entity.GameKind](req.Kind)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid game kind %s", req.Kind)
	}

	numberingMode := entity.RandomNumbering
	if req.NumberingMode != "" {
		numberingMode, err = enum.ToEnum[entity.NumberingMode](req.NumberingMode)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid numbering mode %s", req.NumberingMode)
		}
	}

	if kind == entity.NumberPoolGame && req.PoolSize <= 0 {
		return nil, errorx.New(errorx.BadRequest, "A number pool game needs a positive pool size")
	}

	if kind != entity.RankedMatchGame && req.NumbersPerTicket <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Numbers per ticket must be positive")
	}

	if req.RestrictedMode && req.MaxTickets <= 0 {
		return nil, errorx.New(errorx.BadRequest, "A restricted game needs a positive max tickets")
	}

	game := &entity.Game{
		Base:             entity.Base{ID: uuid.NewString()},
		Name:             req.Name,
		Kind:             kind,
		ExtractionTimes:  req.ExtractionTimes,
		CommissionRate:   req.CommissionRate,
		Multiplier:       req.Multiplier,
		LiabilityCeiling: req.LiabilityCeiling,
		NumberingMode:    numberingMode,
		PoolSize:         req.PoolSize,
		NumbersPerTicket: req.NumbersPerTicket,
		ModalityMax:      req.ModalityMax,
		GlobalUniqueness: req.GlobalUniqueness,
		RestrictedMode:   req.RestrictedMode,
		MaxTickets:       req.MaxTickets,
		IsActive:         true,
	}

	if err := d.gameRepo.Create(ctx, game); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create game: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateGameResponse{Game: model.ConvertGame(game)}, nil
}

func (d *gameDomain) DisableGame(
	ctx context.Context, req *model.DisableGameRequest,
) (*model.DisableGameResponse, error) {
	if err := d.gameRepo.Disable(ctx, req.GameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found game")
		}

		xcontext.Logger(ctx).Errorf("Cannot disable game: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DisableGameResponse{}, nil
}

func (d *gameDomain) GetGames(
	ctx context.Context, req *model.GetGamesRequest,
) (*model.GetGamesResponse, error) {
	games, err := d.gameRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get games: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetGamesResponse{}
	for i := range games {
		resp.Games = append(resp.Games, model.ConvertGame(&games[i]))
	}

	return resp, nil
}

func (d *gameDomain) CreateArea(
	ctx context.Context, req *model.CreateAreaRequest,
) (*model.CreateAreaResponse, error) {
	if req.MaxTicketsPerSeries <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Max tickets per series must be positive")
	}

	area := &entity.Area{
		Base:                entity.Base{ID: uuid.NewString()},
		Name:                req.Name,
		CurrentSeries:       "0001",
		TicketsInSeries:     0,
		MaxTicketsPerSeries: req.MaxTicketsPerSeries,
		IsActive:            true,
		AutoCycleSeries:     req.AutoCycleSeries,
		WarningThreshold:    req.WarningThreshold,
		NotifyOnWarning:     req.NotifyOnWarning,
	}

	if err := d.areaRepo.Create(ctx, area); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create area: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateAreaResponse{AreaID: area.ID}, nil
}

func (d *gameDomain) UpsertAreaConfig(
	ctx context.Context, req *model.UpsertAreaConfigRequest,
) (*model.UpsertAreaConfigResponse, error) {
	if _, err := d.areaRepo.GetByID(ctx, req.AreaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found area")
		}

		xcontext.Logger(ctx).Errorf("Cannot get area: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.gameRepo.GetByID(ctx, req.GameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found game")
		}

		xcontext.Logger(ctx).Errorf("Cannot get game: %v", err)
		return nil, errorx.Unknown
	}

	config := &entity.AreaConfig{
		Base:             entity.Base{ID: uuid.NewString()},
		AreaID:           req.AreaID,
		GameID:           req.GameID,
		CommissionRate:   nullFloat(req.CommissionRate),
		Multiplier:       nullFloat(req.Multiplier),
		LiabilityCeiling: nullFloat(req.LiabilityCeiling),
	}

	if err := d.areaConfigRepo.Upsert(ctx, config); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert area config: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpsertAreaConfigResponse{}, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}

	return sql.NullFloat64{Float64: *v, Valid: true}
}
