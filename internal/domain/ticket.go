package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lotoplay/backend/internal/common"
	"github.com/lotoplay/backend/internal/domain/drawslot"
	"github.com/lotoplay/backend/internal/domain/gamekind"
	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/internal/model"
	"github.com/lotoplay/backend/internal/repository"
	"github.com/lotoplay/backend/pkg/crypto"
	"github.com/lotoplay/backend/pkg/errorx"
	"github.com/lotoplay/backend/pkg/pubsub"
	"github.com/lotoplay/backend/pkg/xcontext"
	"github.com/lotoplay/backend/pkg/xredis"
	"gorm.io/gorm"
)

// seriesModulus keeps the series counter inside its 4-digit space. A counter
// past 9999 wraps to 0000; the wrap is logged so the territory can be split
// before it ever matters.
const seriesModulus = 10000

type TicketDomain interface {
	CreateTicket(context.Context, *model.CreateTicketRequest) (*model.CreateTicketResponse, error)
	GetTicket(context.Context, *model.GetTicketRequest) (*model.GetTicketResponse, error)
	GetMyTickets(context.Context, *model.GetMyTicketsRequest) (*model.GetMyTicketsResponse, error)
	GetAvailability(context.Context, *model.GetAvailabilityRequest) (*model.GetAvailabilityResponse, error)
	CancelTicket(context.Context, *model.CancelTicketRequest) (*model.CancelTicketResponse, error)
	ApproveCancel(context.Context, *model.ApproveCancelRequest) (*model.ApproveCancelResponse, error)
	MarkPaid(context.Context, *model.MarkPaidRequest) (*model.MarkPaidResponse, error)
}

type ticketDomain struct {
	gameRepo       repository.GameRepository
	areaRepo       repository.AreaRepository
	areaConfigRepo repository.AreaConfigRepository
	ticketRepo     repository.TicketRepository
	userRepo       repository.UserRepository
	redisClient    xredis.Client
	publisher      pubsub.Publisher
	eligibility    common.EligibilityChecker
	signer         common.Signer
}

func NewTicketDomain(
	gameRepo repository.GameRepository,
	areaRepo repository.AreaRepository,
	areaConfigRepo repository.AreaConfigRepository,
	ticketRepo repository.TicketRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
	publisher pubsub.Publisher,
	eligibility common.EligibilityChecker,
	signer common.Signer,
) *ticketDomain {
	return &ticketDomain{
		gameRepo:       gameRepo,
		areaRepo:       areaRepo,
		areaConfigRepo: areaConfigRepo,
		ticketRepo:     ticketRepo,
		userRepo:       userRepo,
		redisClient:    redisClient,
		publisher:      publisher,
		eligibility:    eligibility,
		signer:         signer,
	}
}

func (d *ticketDomain) CreateTicket(
	ctx context.Context, req *model.CreateTicketRequest,
) (*model.CreateTicketResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Stake must be a positive amount")
	}

	if err := d.eligibility.Validate(ctx, userID, req.Amount); err != nil {
		return nil, err
	}

	game, err := d.gameRepo.GetByID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found game")
		}

		xcontext.Logger(ctx).Errorf("Cannot get game: %v", err)
		return nil, errorx.Unknown
	}

	if !game.IsActive {
		return nil, errorx.New(errorx.Unavailable, "Game is disabled")
	}

	strategy, err := gamekind.New(game.Kind)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot resolve game kind: %v", err)
		return nil, errorx.Unknown
	}

	if err := strategy.ValidateNumbers(game, req.Numbers); err != nil {
		return nil, err
	}

	now := time.Now()

	// A draw-date resolution failure is not fatal: the ticket is issued
	// without a draw date and the checks that need one are skipped.
	var drawDate *time.Time
	if resolved, err := drawslot.Next(ctx, game, now); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot resolve the next draw slot: %v", err)
	} else {
		drawDate = &resolved
	}

	if drawDate != nil {
		margin := drawDate.Sub(now)
		if margin < 0 {
			return nil, errorx.New(errorx.LateBet, "The draw has already started")
		}

		if margin < xcontext.Configs(ctx).Lottery.SuspiciousMargin {
			xcontext.Logger(ctx).Warnf(
				"Suspicious bet timing: user=%s game=%s margin=%s", userID, game.ID, margin)
		}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The game row lock serializes every issuance for this game. Liability
	// aggregates per number across all areas and series of a draw, so the
	// sum-check-insert sequence below cannot run concurrently from two
	// areas; the same lock also covers games with global number uniqueness.
	if _, err := d.gameRepo.GetByIDForUpdate(ctx, game.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot lock game: %v", err)
		return nil, errorx.Unknown
	}

	// The area row lock guards the series counter read-compute-write.
	area, err := d.areaRepo.GetByIDForUpdate(ctx, req.AreaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found area")
		}

		xcontext.Logger(ctx).Errorf("Cannot get area: %v", err)
		return nil, errorx.Unknown
	}

	if !area.IsActive {
		return nil, errorx.New(errorx.Unavailable, "Sales are paused in this area")
	}

	series, rolled, err := d.nextSeries(ctx, area)
	if err != nil {
		return nil, err
	}

	areaConfig, err := d.areaConfigRepo.Get(ctx, area.ID, game.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get area config: %v", err)
		return nil, errorx.Unknown
	}

	defaults := xcontext.Configs(ctx).Lottery
	var commissionOverride, multiplierOverride, ceilingOverride sql.NullFloat64
	if areaConfig != nil {
		commissionOverride = areaConfig.CommissionRate
		multiplierOverride = areaConfig.Multiplier
		ceilingOverride = areaConfig.LiabilityCeiling
	}

	commissionRate := common.ResolveFloat(defaults.DefaultCommissionRate,
		commissionOverride, common.FloatOverride(game.CommissionRate))
	multiplier := common.ResolveFloat(defaults.DefaultMultiplier,
		multiplierOverride, common.FloatOverride(game.Multiplier))
	ceiling := common.ResolveFloat(defaults.DefaultLiabilityCeiling,
		ceilingOverride, common.FloatOverride(game.LiabilityCeiling))

	numbers, err := d.assignNumbers(ctx, game, strategy, req.Numbers, drawDate, series)
	if err != nil {
		return nil, err
	}

	exposure := strategy.Exposure(req.Amount, len(numbers), multiplier)
	if drawDate != nil && exposure > 0 {
		for _, number := range numbers {
			existing, err := d.ticketRepo.SumExposureByNumber(ctx, game.ID, *drawDate, number)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot sum liability: %v", err)
				return nil, errorx.Unknown
			}

			if existing+exposure > ceiling {
				return nil, errorx.New(errorx.RiskLimit,
					"Risk limit exceeded for number %s", number)
			}
		}
	}

	var ticketNumber sql.NullInt64
	if game.RestrictedMode {
		assigned, err := d.assignTicketNumber(ctx, game, drawDate, series)
		if err != nil {
			return nil, err
		}

		ticketNumber = sql.NullInt64{Int64: assigned, Valid: true}
	}

	commissionValue := req.Amount * commissionRate
	ticket := &entity.Ticket{
		Base:            entity.Base{ID: uuid.NewString()},
		UserID:          userID,
		GameID:          game.ID,
		AreaID:          area.ID,
		Numbers:         numbers,
		Amount:          req.Amount,
		CommissionValue: commissionValue,
		NetValue:        req.Amount - commissionValue,
		PossiblePrize:   strategy.PossiblePrize(req.Amount, len(numbers), multiplier),
		Series:          sql.NullString{String: series, Valid: true},
		TicketNumber:    ticketNumber,
		Status:          entity.TicketPending,
	}

	if drawDate != nil {
		ticket.DrawDate = sql.NullTime{Time: *drawDate, Valid: true}
	}

	ticket.Signature = d.signer.Sign(ctx, ticket.ID, numbers, req.Amount, userID, drawDate)

	if err := d.ticketRepo.Create(ctx, ticket); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create ticket: %v", err)
		return nil, errorx.Unknown
	}

	// Entries feed two queries: the sold-number set of pool-backed games and
	// the per-number liability sum. They are written whenever either one will
	// read them, even at zero exposure.
	if drawDate != nil && (strategy.PoolBacked() || exposure > 0) {
		entries := make([]entity.TicketEntry, 0, len(numbers))
		for _, number := range numbers {
			entries = append(entries, entity.TicketEntry{
				Base:     entity.Base{ID: uuid.NewString()},
				TicketID: ticket.ID,
				GameID:   game.ID,
				Series:   ticket.Series,
				DrawDate: ticket.DrawDate,
				Number:   number,
				Exposure: exposure,
			})
		}

		if err := d.ticketRepo.CreateEntries(ctx, entries); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create ticket entries: %v", err)
			return nil, errorx.Unknown
		}
	}

	// The series counter only moves after the ticket write succeeded, still
	// inside the same transaction.
	if rolled {
		err = d.areaRepo.RollSeries(ctx, area.ID, series)
	} else {
		err = d.areaRepo.UseSeriesTicket(ctx, area.ID)
	}
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit series counter: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	if drawDate != nil && strategy.PoolBacked() {
		d.invalidateAvailability(ctx, game, *drawDate, series)
	}

	d.warnOnSaturation(ctx, area, rolled)
	common.Notify(ctx, d.publisher, common.TicketIssuedTopic, ticket.ID, common.TicketIssuedEvent{
		TicketID: ticket.ID,
		UserID:   userID,
		GameID:   game.ID,
		Numbers:  numbers,
		Amount:   req.Amount,
	})

	return &model.CreateTicketResponse{Ticket: model.ConvertTicket(ticket)}, nil
}

// nextSeries returns the series the next ticket of the area belongs to,
// rolling to a fresh series when the current one is exhausted. The caller
// must hold the area row lock.
func (d *ticketDomain) nextSeries(ctx context.Context, area *entity.Area) (string, bool, error) {
	if area.TicketsInSeries < area.MaxTicketsPerSeries {
		return area.CurrentSeries, false, nil
	}

	if !area.AutoCycleSeries {
		return "", false, errorx.New(errorx.SoldOut, "Series %s is exhausted", area.CurrentSeries)
	}

	current, err := strconv.Atoi(area.CurrentSeries)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid series counter %q: %v", area.CurrentSeries, err)
		return "", false, errorx.Unknown
	}

	next := (current + 1) % seriesModulus
	if next == 0 {
		xcontext.Logger(ctx).Warnf("Series counter of area %s wrapped to 0000", area.ID)
	}

	return fmt.Sprintf("%04d", next), true, nil
}

// assignNumbers produces the final bet numbers of the ticket. The sold set
// passed to the strategy is the union of the availability cache and an
// authoritative read inside the current transaction, so a stale cache can
// never cause a wrong accept.
func (d *ticketDomain) assignNumbers(
	ctx context.Context, game *entity.Game, strategy gamekind.Strategy,
	requested []string, drawDate *time.Time, series string,
) ([]string, error) {
	if !strategy.PoolBacked() || drawDate == nil {
		return strategy.AssignNumbers(game, requested, nil)
	}

	scope := &series
	if game.GlobalUniqueness {
		scope = nil
	}

	sold := map[string]struct{}{}
	for _, n := range d.cachedSoldNumbers(ctx, game, *drawDate, scope) {
		sold[n] = struct{}{}
	}

	authoritative, err := d.ticketRepo.GetSoldNumbers(ctx, repository.ScopeFilter{
		GameID:   game.ID,
		DrawDate: *drawDate,
		Series:   scope,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get sold numbers: %v", err)
		return nil, errorx.Unknown
	}

	for _, n := range authoritative {
		sold[n] = struct{}{}
	}

	return strategy.AssignNumbers(game, requested, sold)
}

// assignTicketNumber allocates the per-series sequence number of a
// capacity-limited game.
func (d *ticketDomain) assignTicketNumber(
	ctx context.Context, game *entity.Game, drawDate *time.Time, series string,
) (int64, error) {
	if drawDate == nil {
		return 0, errorx.New(errorx.Unavailable, "Cannot number tickets without a draw date")
	}

	used, err := d.ticketRepo.GetUsedTicketNumbers(ctx, repository.ScopeFilter{
		GameID:   game.ID,
		DrawDate: *drawDate,
		Series:   &series,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get used ticket numbers: %v", err)
		return 0, errorx.Unknown
	}

	usedSet := make(map[int64]struct{}, len(used))
	var max int64
	for _, n := range used {
		usedSet[n] = struct{}{}
		if n > max {
			max = n
		}
	}

	if game.NumberingMode == entity.SequentialNumbering {
		next := max + 1
		if next > int64(game.MaxTickets) {
			return 0, errorx.New(errorx.SoldOut, "No ticket numbers remaining")
		}

		return next, nil
	}

	if len(used) >= game.MaxTickets {
		return 0, errorx.New(errorx.SoldOut, "No ticket numbers remaining")
	}

	for attempt := 0; attempt < 100; attempt++ {
		candidate := int64(crypto.RandRange(1, game.MaxTickets+1))
		if _, ok := usedSet[candidate]; !ok {
			return candidate, nil
		}
	}

	for candidate := int64(1); candidate <= int64(game.MaxTickets); candidate++ {
		if _, ok := usedSet[candidate]; !ok {
			return candidate, nil
		}
	}

	return 0, errorx.New(errorx.SoldOut, "No ticket numbers remaining")
}

// cachedSoldNumbers reads the sold set through the availability cache,
// falling back to the database on a miss or a cache failure. The result is
// best effort; correctness-critical callers merge it with an authoritative
// read.
func (d *ticketDomain) cachedSoldNumbers(
	ctx context.Context, game *entity.Game, drawDate time.Time, series *string,
) []string {
	key := common.RedisKeyAvailability(game.ID, drawDate, scopeName(series))

	exist, err := d.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check availability cache: %v", err)
	} else if exist {
		members, err := d.redisClient.SMembers(ctx, key)
		if err == nil {
			return members
		}

		xcontext.Logger(ctx).Warnf("Cannot read availability cache: %v", err)
	}

	sold, err := d.ticketRepo.GetSoldNumbers(ctx, repository.ScopeFilter{
		GameID:   game.ID,
		DrawDate: drawDate,
		Series:   series,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get sold numbers for the cache: %v", err)
		return nil
	}

	if len(sold) > 0 {
		if err := d.redisClient.SAdd(ctx, key, sold...); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot populate availability cache: %v", err)
		} else if err := d.redisClient.Expire(ctx, key, xcontext.Configs(ctx).Lottery.AvailabilityTTL); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot expire availability cache: %v", err)
		}
	}

	return sold
}

// invalidateAvailability drops the scope key of a write, plus the global key
// when the game checks uniqueness across series: a per-series write changes
// what a global query would return.
func (d *ticketDomain) invalidateAvailability(
	ctx context.Context, game *entity.Game, drawDate time.Time, series string,
) {
	keys := []string{common.RedisKeyAvailability(game.ID, drawDate, series)}
	if game.GlobalUniqueness {
		keys = append(keys, common.RedisKeyAvailability(game.ID, drawDate, common.GlobalScope))
	}

	if err := d.redisClient.Del(ctx, keys...); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate availability cache: %v", err)
	}
}

func (d *ticketDomain) warnOnSaturation(ctx context.Context, area *entity.Area, rolled bool) {
	if rolled || !area.NotifyOnWarning || area.MaxTicketsPerSeries == 0 {
		return
	}

	saturation := float64(area.TicketsInSeries+1) / float64(area.MaxTicketsPerSeries)
	if saturation < area.WarningThreshold {
		return
	}

	common.Notify(ctx, d.publisher, common.SeriesWarningTopic, area.ID, common.SeriesWarningEvent{
		AreaID:     area.ID,
		Series:     area.CurrentSeries,
		Saturation: saturation,
	})
}

func scopeName(series *string) string {
	if series == nil {
		return common.GlobalScope
	}

	return *series
}

func (d *ticketDomain) GetTicket(
	ctx context.Context, req *model.GetTicketRequest,
) (*model.GetTicketResponse, error) {
	ticket, err := d.loadTicketLazyExpire(ctx, req.TicketID)
	if err != nil {
		return nil, err
	}

	return &model.GetTicketResponse{Ticket: model.ConvertTicket(ticket)}, nil
}

func (d *ticketDomain) GetMyTickets(
	ctx context.Context, req *model.GetMyTicketsRequest,
) (*model.GetMyTicketsResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	tickets, err := d.ticketRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tickets: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()
	resp := &model.GetMyTicketsResponse{}
	for i := range tickets {
		ticket := &tickets[i]
		if expired := d.expireIfPastDraw(ctx, ticket, now); expired {
			ticket.Status = entity.TicketExpired
		}

		resp.Tickets = append(resp.Tickets, model.ConvertTicket(ticket))
	}

	return resp, nil
}

func (d *ticketDomain) GetAvailability(
	ctx context.Context, req *model.GetAvailabilityRequest,
) (*model.GetAvailabilityResponse, error) {
	game, err := d.gameRepo.GetByID(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found game")
		}

		xcontext.Logger(ctx).Errorf("Cannot get game: %v", err)
		return nil, errorx.Unknown
	}

	drawDate, err := drawslot.Next(ctx, game, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot resolve the next draw slot: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot determine the next draw")
	}

	var series *string
	if !game.GlobalUniqueness {
		area, err := d.areaRepo.GetByID(ctx, req.AreaID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found area")
			}

			xcontext.Logger(ctx).Errorf("Cannot get area: %v", err)
			return nil, errorx.Unknown
		}

		series = &area.CurrentSeries
	}

	sold := d.cachedSoldNumbers(ctx, game, drawDate, series)
	sort.Strings(sold)

	return &model.GetAvailabilityResponse{
		DrawDate:    drawDate,
		SoldNumbers: sold,
	}, nil
}

func (d *ticketDomain) CancelTicket(
	ctx context.Context, req *model.CancelTicketRequest,
) (*model.CancelTicketResponse, error) {
	requestedBy := xcontext.RequestUserID(ctx)
	now := time.Now()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	ticket, err := d.ticketRepo.GetByIDForUpdate(ctx, req.TicketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found ticket")
		}

		xcontext.Logger(ctx).Errorf("Cannot get ticket: %v", err)
		return nil, errorx.Unknown
	}

	if ticket.Status != entity.TicketPending {
		return nil, errorx.New(errorx.Unavailable, "Only pending tickets can be cancelled")
	}

	if ticket.DrawDate.Valid && !now.Before(ticket.DrawDate.Time) {
		return nil, errorx.New(errorx.LateBet, "The draw has already started")
	}

	status := entity.TicketCancelRequested
	grace := xcontext.Configs(ctx).Lottery.CancelGracePeriod
	if now.Sub(ticket.CreatedAt) <= grace {
		status = entity.TicketCancelled
	}

	if err := d.ticketRepo.Cancel(ctx, ticket.ID, status, req.Reason, requestedBy, now); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot cancel ticket: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	// A full cancellation releases the ticket's numbers.
	if status == entity.TicketCancelled {
		d.invalidateTicketScope(ctx, ticket)
	}

	ticket.Status = status
	ticket.CancelReason = req.Reason
	ticket.CancelRequestedBy = requestedBy
	return &model.CancelTicketResponse{Ticket: model.ConvertTicket(ticket)}, nil
}

func (d *ticketDomain) ApproveCancel(
	ctx context.Context, req *model.ApproveCancelRequest,
) (*model.ApproveCancelResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	ticket, err := d.ticketRepo.GetByIDForUpdate(ctx, req.TicketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found ticket")
		}

		xcontext.Logger(ctx).Errorf("Cannot get ticket: %v", err)
		return nil, errorx.Unknown
	}

	if ticket.Status != entity.TicketCancelRequested {
		return nil, errorx.New(errorx.Unavailable, "No pending cancel request")
	}

	if req.Approve {
		err = d.ticketRepo.Cancel(ctx, ticket.ID, entity.TicketCancelled,
			ticket.CancelReason, ticket.CancelRequestedBy, time.Now())
		ticket.Status = entity.TicketCancelled
	} else {
		err = d.ticketRepo.UpdateStatus(ctx, ticket.ID,
			entity.TicketCancelRequested, entity.TicketPending)
		ticket.Status = entity.TicketPending
	}
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot resolve cancel request: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	if ticket.Status == entity.TicketCancelled {
		d.invalidateTicketScope(ctx, ticket)
	}

	return &model.ApproveCancelResponse{Ticket: model.ConvertTicket(ticket)}, nil
}

func (d *ticketDomain) MarkPaid(
	ctx context.Context, req *model.MarkPaidRequest,
) (*model.MarkPaidResponse, error) {
	ticket, err := d.ticketRepo.GetByID(ctx, req.TicketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found ticket")
		}

		xcontext.Logger(ctx).Errorf("Cannot get ticket: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.ticketRepo.UpdateStatus(ctx, ticket.ID, entity.TicketWon, entity.TicketPaid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unavailable, "Only won tickets can be paid")
		}

		xcontext.Logger(ctx).Errorf("Cannot mark ticket as paid: %v", err)
		return nil, errorx.Unknown
	}

	ticket.Status = entity.TicketPaid
	return &model.MarkPaidResponse{Ticket: model.ConvertTicket(ticket)}, nil
}

func (d *ticketDomain) loadTicketLazyExpire(ctx context.Context, id string) (*entity.Ticket, error) {
	ticket, err := d.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found ticket")
		}

		xcontext.Logger(ctx).Errorf("Cannot get ticket: %v", err)
		return nil, errorx.Unknown
	}

	if d.expireIfPastDraw(ctx, ticket, time.Now()) {
		ticket.Status = entity.TicketExpired
	}

	return ticket, nil
}

// expireIfPastDraw lazily transitions a pending ticket whose draw date has
// passed. Settlement of a late-resulted draw supersedes this: it may still
// move an expired ticket to won or lost.
func (d *ticketDomain) expireIfPastDraw(ctx context.Context, ticket *entity.Ticket, now time.Time) bool {
	if ticket.Status != entity.TicketPending || !ticket.DrawDate.Valid {
		return false
	}

	if now.Before(ticket.DrawDate.Time) {
		return false
	}

	err := d.ticketRepo.UpdateStatus(ctx, ticket.ID, entity.TicketPending, entity.TicketExpired)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Warnf("Cannot expire ticket %s: %v", ticket.ID, err)
		}

		return false
	}

	return true
}

func (d *ticketDomain) invalidateTicketScope(ctx context.Context, ticket *entity.Ticket) {
	if !ticket.DrawDate.Valid || !ticket.Series.Valid {
		return
	}

	game, err := d.gameRepo.GetByID(ctx, ticket.GameID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get game for cache invalidation: %v", err)
		return
	}

	d.invalidateAvailability(ctx, game, ticket.DrawDate.Time, ticket.Series.String)
}
