package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lotoplay/backend/internal/common"
	"github.com/lotoplay/backend/internal/domain/gamekind"
	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/internal/model"
	"github.com/lotoplay/backend/internal/repository"
	"github.com/lotoplay/backend/pkg/enum"
	"github.com/lotoplay/backend/pkg/errorx"
	"github.com/lotoplay/backend/pkg/pubsub"
	"github.com/lotoplay/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type DrawDomain interface {
	ScheduleDraw(context.Context, *model.ScheduleDrawRequest) (*model.ScheduleDrawResponse, error)
	GetDraw(context.Context, *model.GetDrawRequest) (*model.GetDrawResponse, error)
	SettleDraw(context.Context, *model.SettleDrawRequest) (*model.SettleDrawResponse, error)
}

type drawDomain struct {
	drawRepo        repository.DrawRepository
	gameRepo        repository.GameRepository
	ticketRepo      repository.TicketRepository
	transactionRepo repository.TransactionRepository
	publisher       pubsub.Publisher
}

func NewDrawDomain(
	drawRepo repository.DrawRepository,
	gameRepo repository.GameRepository,
	ticketRepo repository.TicketRepository,
	transactionRepo repository.TransactionRepository,
	publisher pubsub.Publisher,
) *drawDomain {
	return &drawDomain{
		drawRepo:        drawRepo,
		gameRepo:        gameRepo,
		ticketRepo:      ticketRepo,
		transactionRepo: transactionRepo,
		publisher:       publisher,
	}
}

func (d *drawDomain) ScheduleDraw(
	ctx context.Context, req *model.ScheduleDrawRequest,
) (*model.ScheduleDrawResponse, error) {
	game, err := d.gameRepo.GetByID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found game")
		}

		xcontext.Logger(ctx).Errorf("Cannot get game: %v", err)
		return nil, errorx.Unknown
	}

	if req.DrawDate.IsZero() {
		return nil, errorx.New(errorx.BadRequest, "A draw date is required")
	}

	if _, err := d.drawRepo.GetByGameAndDate(ctx, game.ID, req.DrawDate); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "The draw is already scheduled")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing draw: %v", err)
		return nil, errorx.Unknown
	}

	draw := &entity.Draw{
		Base:     entity.Base{ID: uuid.NewString()},
		GameID:   game.ID,
		DrawDate: req.DrawDate,
		Status:   entity.DrawScheduled,
	}

	if req.AreaID != "" {
		draw.AreaID = sql.NullString{String: req.AreaID, Valid: true}
	}

	if err := d.drawRepo.Create(ctx, draw); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create draw: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ScheduleDrawResponse{Draw: model.ConvertDraw(draw)}, nil
}

func (d *drawDomain) GetDraw(
	ctx context.Context, req *model.GetDrawRequest,
) (*model.GetDrawResponse, error) {
	draw, err := d.drawRepo.GetByID(ctx, req.DrawID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found draw")
		}

		xcontext.Logger(ctx).Errorf("Cannot get draw: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetDrawResponse{Draw: model.ConvertDraw(draw)}, nil
}

// SettleDraw records the results of a draw and classifies every
// non-cancelled ticket of that draw as won or lost. Re-invoking it with the
// same results re-evaluates every ticket but only transacts on those whose
// current status differs from the computed one, so the operation is
// idempotent with respect to already-settled tickets.
func (d *drawDomain) SettleDraw(
	ctx context.Context, req *model.SettleDrawRequest,
) (*model.SettleDrawResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The draw row lock serializes concurrent settlement runs for the same
	// draw.
	draw, err := d.drawRepo.GetByIDForUpdate(ctx, req.DrawID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found draw")
		}

		xcontext.Logger(ctx).Errorf("Cannot get draw: %v", err)
		return nil, errorx.Unknown
	}

	game, err := d.gameRepo.GetByID(ctx, draw.GameID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get game of draw: %v", err)
		return nil, errorx.Unknown
	}

	strategy, err := gamekind.New(game.Kind)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot resolve game kind: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.applyResults(ctx, draw, game, req); err != nil {
		return nil, err
	}

	tickets, err := d.ticketRepo.GetByDraw(ctx, game.ID, draw.DrawDate, nullableString(draw.AreaID))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tickets of draw: %v", err)
		return nil, errorx.Unknown
	}

	wonCount, lostCount := 0, 0
	for i := range tickets {
		ticket := &tickets[i]
		if ticket.Status == entity.TicketPaid {
			wonCount++
			continue
		}

		won, resultable := strategy.Settle(draw, ticket.Numbers)
		if !resultable {
			continue
		}

		newStatus := entity.TicketLost
		if won {
			newStatus = entity.TicketWon
			wonCount++
		} else {
			lostCount++
		}

		if ticket.Status == newStatus {
			continue
		}

		// Each ticket settles independently: a failure here is logged and
		// the batch moves on.
		if err := d.transition(ctx, ticket, newStatus); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot settle ticket %s: %v", ticket.ID, err)
			continue
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	common.Notify(ctx, d.publisher, common.DrawSettledTopic, draw.ID, common.DrawSettledEvent{
		DrawID:    draw.ID,
		GameID:    game.ID,
		WonCount:  wonCount,
		LostCount: lostCount,
	})

	return &model.SettleDrawResponse{WonCount: wonCount, LostCount: lostCount}, nil
}

// applyResults validates the submitted results and stores them on the draw.
// Submitting no results settles against whatever the draw already carries.
func (d *drawDomain) applyResults(
	ctx context.Context, draw *entity.Draw, game *entity.Game, req *model.SettleDrawRequest,
) error {
	switch game.Kind {
	case entity.RankedMatchGame:
		if len(req.Matches) == 0 {
			return nil
		}

		if len(req.Matches) != entity.NumberOfMatches {
			return errorx.New(errorx.BadRequest,
				"Expected exactly %d match results, got %d", entity.NumberOfMatches, len(req.Matches))
		}

		matches := make([]entity.MatchResult, 0, entity.NumberOfMatches)
		for i, raw := range req.Matches {
			result, err := enum.ToEnum[entity.MatchResult](raw)
			if err != nil {
				return errorx.New(errorx.BadRequest, "Invalid match result %s at position %d", raw, i+1)
			}

			matches = append(matches, result)
		}

		draw.Matches = matches
		draw.Status = entity.DrawCompleted

	default:
		if len(req.Numbers) == 0 {
			return nil
		}

		draw.Numbers = req.Numbers
		draw.Status = entity.DrawCompleted
	}

	if err := d.drawRepo.UpdateResult(ctx, draw); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update draw result: %v", err)
		return errorx.Unknown
	}

	return nil
}

// transition moves a ticket to its newly computed status and issues the
// matching ledger transaction. Winning credits the possible prize; taking a
// win back debits the same amount.
func (d *drawDomain) transition(
	ctx context.Context, ticket *entity.Ticket, newStatus entity.TicketStatus,
) error {
	if err := d.ticketRepo.UpdateStatus(ctx, ticket.ID, ticket.Status, newStatus); err != nil {
		return err
	}

	if newStatus == entity.TicketWon && ticket.PossiblePrize > 0 {
		return d.transactionRepo.Create(ctx, &entity.Transaction{
			Base:     entity.Base{ID: uuid.NewString()},
			UserID:   ticket.UserID,
			TicketID: sql.NullString{String: ticket.ID, Valid: true},
			Type:     entity.TransactionCredit,
			Amount:   ticket.PossiblePrize,
			Note:     "Prize payout",
		})
	}

	if ticket.Status == entity.TicketWon && newStatus == entity.TicketLost && ticket.PossiblePrize > 0 {
		return d.transactionRepo.Create(ctx, &entity.Transaction{
			Base:     entity.Base{ID: uuid.NewString()},
			UserID:   ticket.UserID,
			TicketID: sql.NullString{String: ticket.ID, Valid: true},
			Type:     entity.TransactionDebit,
			Amount:   ticket.PossiblePrize,
			Note:     "Prize reversal",
		})
	}

	return nil
}

func nullableString(s sql.NullString) string {
	if !s.Valid {
		return ""
	}

	return s.String
}
