package domain

import (
	"testing"
	"time"

	"github.com/lotoplay/backend/internal/common"
	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/internal/model"
	"github.com/lotoplay/backend/internal/repository"
	"github.com/lotoplay/backend/pkg/pubsub"
	"github.com/lotoplay/backend/pkg/testutil"
	"github.com/lotoplay/backend/pkg/xcontext"
	"github.com/lotoplay/backend/pkg/xredis"
	"github.com/stretchr/testify/require"
)

func newTestTicketDomain(redisClient xredis.Client, publisher pubsub.Publisher) *ticketDomain {
	gameRepo := repository.NewGameRepository()
	areaRepo := repository.NewAreaRepository()
	areaConfigRepo := repository.NewAreaConfigRepository()
	ticketRepo := repository.NewTicketRepository()
	userRepo := repository.NewUserRepository()

	return NewTicketDomain(
		gameRepo, areaRepo, areaConfigRepo, ticketRepo, userRepo,
		redisClient, publisher,
		common.NewEligibilityChecker(userRepo, ticketRepo),
		common.NewHMACSigner(),
	)
}

func Test_ticketDomain_CreateTicket(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})

	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")
	resp, err := d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID:  "pool_game",
		AreaID:  "area1",
		Numbers: []string{"7"},
		Amount:  10,
	})
	require.NoError(t, err)

	ticket := resp.Ticket
	require.Equal(t, []string{"07"}, ticket.Numbers)
	require.Equal(t, float64(1), ticket.CommissionValue)
	require.Equal(t, float64(9), ticket.NetValue)
	require.Equal(t, float64(700), ticket.PossiblePrize)
	require.Equal(t, "0001", ticket.Series)
	require.Equal(t, "pending", ticket.Status)
	require.NotNil(t, ticket.DrawDate)

	// The signature is reproducible from the slip fields and the secret.
	expected := common.NewHMACSigner().Sign(
		ctx, ticket.ID, ticket.Numbers, ticket.Amount, "user1", ticket.DrawDate)
	require.Equal(t, expected, ticket.Signature)

	// The same number cannot be sold twice in the same series.
	_, err = d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID:  "pool_game",
		AreaID:  "area1",
		Numbers: []string{"07"},
		Amount:  10,
	})
	require.Error(t, err)
	require.Equal(t, "Numbers already sold: 07", err.Error())
}

func Test_ticketDomain_CreateTicket_Validation(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")

	_, err := d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Amount: 0,
	})
	require.Error(t, err)
	require.Equal(t, "Stake must be a positive amount", err.Error())

	_, err = d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "disabled_game", AreaID: "area1", Amount: 10,
	})
	require.Error(t, err)
	require.Equal(t, "Game is disabled", err.Error())

	_, err = d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "paused_area", Amount: 10,
	})
	require.Error(t, err)
	require.Equal(t, "Sales are paused in this area", err.Error())

	_, err = d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "timed_game", AreaID: "area1", Numbers: []string{"3", "30"}, Amount: 10,
	})
	require.Error(t, err)
	require.Equal(t, "Pick 30 out of the modality range [0, 25]", err.Error())

	bannedCtx := testutil.MockContextWithUserID(ctx, "banned_user")
	_, err = d.CreateTicket(bannedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Amount: 10,
	})
	require.Error(t, err)
	require.Equal(t, "Account is inactive", err.Error())
}

func Test_ticketDomain_CreateTicket_DailyStakeLimit(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	authorizedCtx := testutil.MockContextWithUserID(ctx, "user2")

	// user2 may stake up to 100 per day.
	_, err := d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Numbers: []string{"1"}, Amount: 10,
	})
	require.NoError(t, err)

	_, err = d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Numbers: []string{"2"}, Amount: 95,
	})
	require.Error(t, err)
	require.Equal(t, "Daily stake limit reached", err.Error())
}

func Test_ticketDomain_CreateTicket_SeriesRollover(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	publisher := &testutil.MockPublisher{}
	d := newTestTicketDomain(&testutil.MockRedisClient{}, publisher)
	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")

	// area2 takes three tickets per series and cycles automatically.
	var series []string
	for i := 0; i < 4; i++ {
		resp, err := d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
			GameID: "pool_game", AreaID: "area2", Amount: 10,
		})
		require.NoError(t, err)
		series = append(series, resp.Ticket.Series)
	}

	require.Equal(t, []string{"0001", "0001", "0001", "0002"}, series)

	area, err := repository.NewAreaRepository().GetByID(ctx, "area2")
	require.NoError(t, err)
	require.Equal(t, "0002", area.CurrentSeries)
	require.Equal(t, 1, area.TicketsInSeries)

	// The second and third ticket crossed the sixty percent threshold.
	require.Len(t, publisher.Packs[common.SeriesWarningTopic], 2)
	require.Len(t, publisher.Packs[common.TicketIssuedTopic], 4)
}

func Test_ticketDomain_CreateTicket_SeriesExhausted(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")

	// area3 has one slot left in series 0042 and does not cycle.
	_, err := d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area3", Amount: 10,
	})
	require.NoError(t, err)

	_, err = d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area3", Amount: 10,
	})
	require.Error(t, err)
	require.Equal(t, "Series 0042 is exhausted", err.Error())
}

func Test_ticketDomain_CreateTicket_RiskLimit(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")

	// An area override drops the ceiling of area1 under a single exposure.
	err := repository.NewAreaConfigRepository().Upsert(ctx, &entity.AreaConfig{
		Base:             entity.Base{ID: "config1"},
		AreaID:           "area1",
		GameID:           "pool_game",
		LiabilityCeiling: nullFloat(ptrFloat(500)),
	})
	require.NoError(t, err)

	_, err = d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Numbers: []string{"7"}, Amount: 10,
	})
	require.Error(t, err)
	require.Equal(t, "Risk limit exceeded for number 07", err.Error())
}

func Test_ticketDomain_CreateTicket_RiskLimitAcrossSeries(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")

	// The exposure of 07 in series 0001 counts against the same number sold
	// later in series 0042: liability aggregates per draw across series.
	_, err := d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Numbers: []string{"7"}, Amount: 10,
	})
	require.NoError(t, err)

	_, err = d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area3", Numbers: []string{"7"}, Amount: 10,
	})
	require.Error(t, err)
	require.Equal(t, "Risk limit exceeded for number 07", err.Error())

	// The rejected ticket left no trace in the liability ledger.
	tickets, err := repository.NewTicketRepository().GetByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, tickets, 1)

	exposure, err := repository.NewTicketRepository().SumExposureByNumber(
		ctx, "pool_game", tickets[0].DrawDate.Time, "07")
	require.NoError(t, err)
	require.Equal(t, float64(700), exposure)
}

func Test_ticketDomain_CreateTicket_ZeroMultiplierKeepsUniqueness(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")

	// A promotional zero multiplier removes the prize and the liability of
	// the game in this area.
	err := repository.NewAreaConfigRepository().Upsert(ctx, &entity.AreaConfig{
		Base:       entity.Base{ID: "config1"},
		AreaID:     "area1",
		GameID:     "pool_game",
		Multiplier: nullFloat(ptrFloat(0)),
	})
	require.NoError(t, err)

	resp, err := d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Numbers: []string{"7"}, Amount: 10,
	})
	require.NoError(t, err)
	require.Equal(t, float64(0), resp.Ticket.PossiblePrize)

	// Zero exposure does not loosen number uniqueness.
	_, err = d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Numbers: []string{"7"}, Amount: 10,
	})
	require.Error(t, err)
	require.Equal(t, "Numbers already sold: 07", err.Error())
}

func Test_ticketDomain_CreateTicket_RestrictedGame(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")

	for i := int64(1); i <= 5; i++ {
		resp, err := d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
			GameID: "restricted_game", AreaID: "area1", Amount: 1,
		})
		require.NoError(t, err)
		require.Equal(t, i, resp.Ticket.TicketNumber)
	}

	_, err := d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "restricted_game", AreaID: "area1", Amount: 1,
	})
	require.Error(t, err)
	require.Equal(t, "No ticket numbers remaining", err.Error())
}

func Test_ticketDomain_GetAvailability(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestTicketDomain(testutil.NewInMemoryRedisClient(), &testutil.MockPublisher{})
	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")

	resp, err := d.GetAvailability(ctx, &model.GetAvailabilityRequest{
		GameID: "pool_game", AreaID: "area1",
	})
	require.NoError(t, err)
	require.Empty(t, resp.SoldNumbers)

	_, err = d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Numbers: []string{"7"}, Amount: 10,
	})
	require.NoError(t, err)

	// The write invalidated the cache; this read repopulates it.
	resp, err = d.GetAvailability(ctx, &model.GetAvailabilityRequest{
		GameID: "pool_game", AreaID: "area1",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"07"}, resp.SoldNumbers)

	// A conflicting purchase is refused even when served from the cache.
	_, err = d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Numbers: []string{"7"}, Amount: 10,
	})
	require.Error(t, err)
	require.Equal(t, "Numbers already sold: 07", err.Error())
}

func Test_ticketDomain_CancelTicket(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")

	resp, err := d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Numbers: []string{"7"}, Amount: 10,
	})
	require.NoError(t, err)

	// Inside the grace period the cancellation applies immediately.
	cancelResp, err := d.CancelTicket(authorizedCtx, &model.CancelTicketRequest{
		TicketID: resp.Ticket.ID, Reason: "customer changed their mind",
	})
	require.NoError(t, err)
	require.Equal(t, "cancelled", cancelResp.Ticket.Status)

	_, err = d.CancelTicket(authorizedCtx, &model.CancelTicketRequest{
		TicketID: resp.Ticket.ID,
	})
	require.Error(t, err)
	require.Equal(t, "Only pending tickets can be cancelled", err.Error())

	// A cancelled number is free to sell again.
	_, err = d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Numbers: []string{"7"}, Amount: 10,
	})
	require.NoError(t, err)
}

func Test_ticketDomain_CancelTicket_AfterGrace(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")

	create := func() string {
		resp, err := d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
			GameID: "pool_game", AreaID: "area1", Amount: 10,
		})
		require.NoError(t, err)

		// Age the ticket past the grace period.
		err = xcontext.DB(ctx).Model(&entity.Ticket{}).
			Where("id=?", resp.Ticket.ID).
			Update("created_at", time.Now().Add(-time.Hour)).Error
		require.NoError(t, err)
		return resp.Ticket.ID
	}

	ticketID := create()
	cancelResp, err := d.CancelTicket(authorizedCtx, &model.CancelTicketRequest{
		TicketID: ticketID, Reason: "misprint",
	})
	require.NoError(t, err)
	require.Equal(t, "cancel_requested", cancelResp.Ticket.Status)

	approveResp, err := d.ApproveCancel(ctx, &model.ApproveCancelRequest{
		TicketID: ticketID, Approve: true,
	})
	require.NoError(t, err)
	require.Equal(t, "cancelled", approveResp.Ticket.Status)

	// A rejected request returns the ticket to pending.
	otherID := create()
	_, err = d.CancelTicket(authorizedCtx, &model.CancelTicketRequest{TicketID: otherID})
	require.NoError(t, err)

	approveResp, err = d.ApproveCancel(ctx, &model.ApproveCancelRequest{
		TicketID: otherID, Approve: false,
	})
	require.NoError(t, err)
	require.Equal(t, "pending", approveResp.Ticket.Status)
}

func Test_ticketDomain_MarkPaid_RequiresWon(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")

	resp, err := d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Amount: 10,
	})
	require.NoError(t, err)

	_, err = d.MarkPaid(ctx, &model.MarkPaidRequest{TicketID: resp.Ticket.ID})
	require.Error(t, err)
	require.Equal(t, "Only won tickets can be paid", err.Error())
}

func Test_ticketDomain_GetMyTickets(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")

	for _, number := range []string{"1", "2"} {
		_, err := d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
			GameID: "pool_game", AreaID: "area1", Numbers: []string{number}, Amount: 10,
		})
		require.NoError(t, err)
	}

	resp, err := d.GetMyTickets(authorizedCtx, &model.GetMyTicketsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Tickets, 2)

	otherCtx := testutil.MockContextWithUserID(ctx, "user2")
	resp, err = d.GetMyTickets(otherCtx, &model.GetMyTicketsRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Tickets)
}

func Test_ticketDomain_ExpireLazily(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")

	resp, err := d.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Amount: 10,
	})
	require.NoError(t, err)

	// Move the draw date into the past.
	err = xcontext.DB(ctx).Model(&entity.Ticket{}).
		Where("id=?", resp.Ticket.ID).
		Update("draw_date", time.Now().Add(-time.Hour)).Error
	require.NoError(t, err)

	getResp, err := d.GetTicket(ctx, &model.GetTicketRequest{TicketID: resp.Ticket.ID})
	require.NoError(t, err)
	require.Equal(t, "expired", getResp.Ticket.Status)

	ticket, err := repository.NewTicketRepository().GetByID(ctx, resp.Ticket.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TicketExpired, ticket.Status)
}

func ptrFloat(v float64) *float64 { return &v }
