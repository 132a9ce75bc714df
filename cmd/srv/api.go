package main

import (
	"fmt"
	"net/http"

	"github.com/lotoplay/backend/pkg/router"
	"github.com/lotoplay/backend/pkg/testutil"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	server.loadConfig()
	server.loadLogger()
	server.loadDatabase()
	server.loadRedisClient(server.newContext())
	server.loadPublisher()
	server.loadRepos()
	server.loadDomains()
	server.seedGames(server.newContext())
	server.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting server on port: %s", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}
	s.logger.Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.configs, s.logger)

	// Ticket API
	router.POST(s.router, "/createTicket", s.ticketDomain.CreateTicket)
	router.GET(s.router, "/getTicket", s.ticketDomain.GetTicket)
	router.GET(s.router, "/getMyTickets", s.ticketDomain.GetMyTickets)
	router.GET(s.router, "/getAvailability", s.ticketDomain.GetAvailability)
	router.POST(s.router, "/cancelTicket", s.ticketDomain.CancelTicket)
	router.POST(s.router, "/approveCancel", s.ticketDomain.ApproveCancel)
	router.POST(s.router, "/markPaid", s.ticketDomain.MarkPaid)

	// Draw API
	router.POST(s.router, "/scheduleDraw", s.drawDomain.ScheduleDraw)
	router.GET(s.router, "/getDraw", s.drawDomain.GetDraw)
	router.POST(s.router, "/settleDraw", s.drawDomain.SettleDraw)

	// Game API
	router.POST(s.router, "/createGame", s.gameDomain.CreateGame)
	router.POST(s.router, "/disableGame", s.gameDomain.DisableGame)
	router.GET(s.router, "/getGames", s.gameDomain.GetGames)
	router.POST(s.router, "/createArea", s.gameDomain.CreateArea)
	router.POST(s.router, "/upsertAreaConfig", s.gameDomain.UpsertAreaConfig)

	if s.configs.Env != "prod" {
		testDomain := testutil.NewTestDatabaseDomain(s.gameRepo, s.ticketRepo, s.userRepo)
		router.POST(s.router, "/testDatabaseMaximumHit", testDomain.TestDatabaseMaximumHit)
	}
}
