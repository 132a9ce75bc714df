package domain

import (
	"testing"
	"time"

	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/internal/model"
	"github.com/lotoplay/backend/internal/repository"
	"github.com/lotoplay/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestDrawDomain(publisher *testutil.MockPublisher) *drawDomain {
	return NewDrawDomain(
		repository.NewDrawRepository(),
		repository.NewGameRepository(),
		repository.NewTicketRepository(),
		repository.NewTransactionRepository(),
		publisher,
	)
}

func Test_drawDomain_SettleDraw_MatchAny(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ticketDomain := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	drawDomain := newTestDrawDomain(&testutil.MockPublisher{})
	transactionRepo := repository.NewTransactionRepository()
	ticketRepo := repository.NewTicketRepository()

	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")
	first, err := ticketDomain.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Numbers: []string{"7"}, Amount: 10,
	})
	require.NoError(t, err)

	second, err := ticketDomain.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Numbers: []string{"8"}, Amount: 10,
	})
	require.NoError(t, err)

	scheduleResp, err := drawDomain.ScheduleDraw(ctx, &model.ScheduleDrawRequest{
		GameID: "pool_game", DrawDate: *first.Ticket.DrawDate,
	})
	require.NoError(t, err)
	drawID := scheduleResp.Draw.ID

	settleResp, err := drawDomain.SettleDraw(ctx, &model.SettleDrawRequest{
		DrawID: drawID, Numbers: []string{"07"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, settleResp.WonCount)
	require.Equal(t, 1, settleResp.LostCount)

	winner, err := ticketRepo.GetByID(ctx, first.Ticket.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TicketWon, winner.Status)

	loser, err := ticketRepo.GetByID(ctx, second.Ticket.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TicketLost, loser.Status)

	// The prize fixed at issuance was credited once.
	balance, err := transactionRepo.BalanceByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, float64(700), balance)

	// Re-settling the same results changes nothing.
	settleResp, err = drawDomain.SettleDraw(ctx, &model.SettleDrawRequest{
		DrawID: drawID, Numbers: []string{"07"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, settleResp.WonCount)
	require.Equal(t, 1, settleResp.LostCount)

	balance, err = transactionRepo.BalanceByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, float64(700), balance)
}

func Test_drawDomain_SettleDraw_CorrectedResults(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ticketDomain := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	drawDomain := newTestDrawDomain(&testutil.MockPublisher{})
	transactionRepo := repository.NewTransactionRepository()

	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")
	first, err := ticketDomain.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Numbers: []string{"7"}, Amount: 10,
	})
	require.NoError(t, err)

	second, err := ticketDomain.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Numbers: []string{"8"}, Amount: 10,
	})
	require.NoError(t, err)

	scheduleResp, err := drawDomain.ScheduleDraw(ctx, &model.ScheduleDrawRequest{
		GameID: "pool_game", DrawDate: *first.Ticket.DrawDate,
	})
	require.NoError(t, err)
	drawID := scheduleResp.Draw.ID

	_, err = drawDomain.SettleDraw(ctx, &model.SettleDrawRequest{
		DrawID: drawID, Numbers: []string{"07"},
	})
	require.NoError(t, err)

	// The operator corrects the winning number. The old winner's payout is
	// reversed and the new winner is credited.
	_, err = drawDomain.SettleDraw(ctx, &model.SettleDrawRequest{
		DrawID: drawID, Numbers: []string{"08"},
	})
	require.NoError(t, err)

	ticketRepo := repository.NewTicketRepository()
	corrected, err := ticketRepo.GetByID(ctx, first.Ticket.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TicketLost, corrected.Status)

	newWinner, err := ticketRepo.GetByID(ctx, second.Ticket.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TicketWon, newWinner.Status)

	transactions, err := transactionRepo.GetByTicketID(ctx, first.Ticket.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	balance, err := transactionRepo.BalanceByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, float64(700), balance)
}

func Test_drawDomain_SettleDraw_WithoutResults(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ticketDomain := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	drawDomain := newTestDrawDomain(&testutil.MockPublisher{})

	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")
	resp, err := ticketDomain.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Numbers: []string{"7"}, Amount: 10,
	})
	require.NoError(t, err)

	scheduleResp, err := drawDomain.ScheduleDraw(ctx, &model.ScheduleDrawRequest{
		GameID: "pool_game", DrawDate: *resp.Ticket.DrawDate,
	})
	require.NoError(t, err)

	// Settling a draw that was never resulted leaves every ticket untouched.
	settleResp, err := drawDomain.SettleDraw(ctx, &model.SettleDrawRequest{
		DrawID: scheduleResp.Draw.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 0, settleResp.WonCount)
	require.Equal(t, 0, settleResp.LostCount)

	ticket, err := repository.NewTicketRepository().GetByID(ctx, resp.Ticket.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TicketPending, ticket.Status)
}

func Test_drawDomain_SettleDraw_RankedMatch(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ticketDomain := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	drawDomain := newTestDrawDomain(&testutil.MockPublisher{})

	card := make([]string, entity.NumberOfMatches)
	for i := range card {
		card[i] = "home"
	}

	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")
	winning, err := ticketDomain.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "ranked_game", AreaID: "area1", Numbers: card, Amount: 5,
	})
	require.NoError(t, err)
	require.Equal(t, float64(50), winning.Ticket.PossiblePrize)

	awayCard := make([]string, entity.NumberOfMatches)
	for i := range awayCard {
		awayCard[i] = "away"
	}

	losing, err := ticketDomain.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "ranked_game", AreaID: "area1", Numbers: awayCard, Amount: 5,
	})
	require.NoError(t, err)

	scheduleResp, err := drawDomain.ScheduleDraw(ctx, &model.ScheduleDrawRequest{
		GameID: "ranked_game", DrawDate: *winning.Ticket.DrawDate,
	})
	require.NoError(t, err)

	// Twelve home results, one away, one cancelled fixture. The home card
	// hits 12 plus the cancelled fixture: 13 hits wins. The away card only
	// hits the away fixture and the cancelled one.
	matches := make([]string, entity.NumberOfMatches)
	for i := range matches {
		matches[i] = "home"
	}
	matches[12] = "away"
	matches[13] = "cancelled"

	settleResp, err := drawDomain.SettleDraw(ctx, &model.SettleDrawRequest{
		DrawID: scheduleResp.Draw.ID, Matches: matches,
	})
	require.NoError(t, err)
	require.Equal(t, 1, settleResp.WonCount)
	require.Equal(t, 1, settleResp.LostCount)

	ticketRepo := repository.NewTicketRepository()
	winner, err := ticketRepo.GetByID(ctx, winning.Ticket.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TicketWon, winner.Status)
	require.Equal(t, float64(50), winner.PossiblePrize)

	loser, err := ticketRepo.GetByID(ctx, losing.Ticket.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TicketLost, loser.Status)

	// A partial result sheet is rejected.
	_, err = drawDomain.SettleDraw(ctx, &model.SettleDrawRequest{
		DrawID: scheduleResp.Draw.ID, Matches: matches[:13],
	})
	require.Error(t, err)
	require.Equal(t, "Expected exactly 14 match results, got 13", err.Error())
}

func Test_drawDomain_SettleDraw_PaidStaysPaid(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ticketDomain := newTestTicketDomain(&testutil.MockRedisClient{}, &testutil.MockPublisher{})
	drawDomain := newTestDrawDomain(&testutil.MockPublisher{})
	transactionRepo := repository.NewTransactionRepository()

	authorizedCtx := testutil.MockContextWithUserID(ctx, "user1")
	resp, err := ticketDomain.CreateTicket(authorizedCtx, &model.CreateTicketRequest{
		GameID: "pool_game", AreaID: "area1", Numbers: []string{"7"}, Amount: 10,
	})
	require.NoError(t, err)

	scheduleResp, err := drawDomain.ScheduleDraw(ctx, &model.ScheduleDrawRequest{
		GameID: "pool_game", DrawDate: *resp.Ticket.DrawDate,
	})
	require.NoError(t, err)
	drawID := scheduleResp.Draw.ID

	_, err = drawDomain.SettleDraw(ctx, &model.SettleDrawRequest{
		DrawID: drawID, Numbers: []string{"07"},
	})
	require.NoError(t, err)

	paidResp, err := ticketDomain.MarkPaid(ctx, &model.MarkPaidRequest{TicketID: resp.Ticket.ID})
	require.NoError(t, err)
	require.Equal(t, "paid", paidResp.Ticket.Status)

	// Re-settlement does not touch a paid ticket or its ledger.
	settleResp, err := drawDomain.SettleDraw(ctx, &model.SettleDrawRequest{
		DrawID: drawID, Numbers: []string{"07"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, settleResp.WonCount)

	ticket, err := repository.NewTicketRepository().GetByID(ctx, resp.Ticket.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TicketPaid, ticket.Status)

	balance, err := transactionRepo.BalanceByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, float64(700), balance)
}

func Test_drawDomain_ScheduleDraw_Validation(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	drawDomain := newTestDrawDomain(&testutil.MockPublisher{})

	_, err := drawDomain.ScheduleDraw(ctx, &model.ScheduleDrawRequest{
		GameID: "missing_game",
	})
	require.Error(t, err)
	require.Equal(t, "Not found game", err.Error())

	_, err = drawDomain.ScheduleDraw(ctx, &model.ScheduleDrawRequest{
		GameID: "pool_game",
	})
	require.Error(t, err)
	require.Equal(t, "A draw date is required", err.Error())

	// The same (game, draw date) pair cannot be scheduled twice.
	drawDate := time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC)
	_, err = drawDomain.ScheduleDraw(ctx, &model.ScheduleDrawRequest{
		GameID: "pool_game", DrawDate: drawDate,
	})
	require.NoError(t, err)

	_, err = drawDomain.ScheduleDraw(ctx, &model.ScheduleDrawRequest{
		GameID: "pool_game", DrawDate: drawDate,
	})
	require.Error(t, err)
	require.Equal(t, "The draw is already scheduled", err.Error())
}
