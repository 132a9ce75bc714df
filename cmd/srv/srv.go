package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lotoplay/backend/config"
	"github.com/lotoplay/backend/internal/common"
	"github.com/lotoplay/backend/internal/domain"
	"github.com/lotoplay/backend/internal/repository"
	"github.com/lotoplay/backend/pkg/kafka"
	"github.com/lotoplay/backend/pkg/logger"
	"github.com/lotoplay/backend/pkg/pubsub"
	"github.com/lotoplay/backend/pkg/router"
	"github.com/lotoplay/backend/pkg/xcontext"
	"github.com/lotoplay/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB

	redisClient xredis.Client
	publisher   pubsub.Publisher

	gameRepo        repository.GameRepository
	drawRepo        repository.DrawRepository
	areaRepo        repository.AreaRepository
	areaConfigRepo  repository.AreaConfigRepository
	ticketRepo      repository.TicketRepository
	transactionRepo repository.TransactionRepository
	userRepo        repository.UserRepository

	ticketDomain domain.TicketDomain
	drawDomain   domain.DrawDomain
	gameDomain   domain.GameDomain

	router *router.Router
	server *http.Server
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}

	return d
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic(err)
	}

	return f
}

func (s *srv) loadConfig() {
	s.configs = config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "mysql"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "lotoplay"),
			Password: getEnv("MYSQL_PASSWORD", "lotoplay"),
			Database: getEnv("MYSQL_DATABASE", "lotoplay"),
			LogLevel: getEnv("DATABASE_LOG_LEVEL", "error"),
		},
		ApiServer: config.ServerConfigs{
			Host: getEnv("HOST", "localhost"),
			Port: getEnv("PORT", "8080"),
			Cert: getEnv("SERVER_CERT", "cert"),
			Key:  getEnv("SERVER_KEY", "key"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr: getEnv("KAFKA_ADDRESS", "localhost:9092"),
		},
		Lottery: config.LotteryConfigs{
			Timezone:                getEnv("LOTTERY_TIMEZONE", "America/Caracas"),
			CutoffWindow:            parseDuration(getEnv("LOTTERY_CUTOFF_WINDOW", "5m")),
			SuspiciousMargin:        parseDuration(getEnv("LOTTERY_SUSPICIOUS_MARGIN", "1m")),
			CancelGracePeriod:       parseDuration(getEnv("LOTTERY_CANCEL_GRACE_PERIOD", "5m")),
			AvailabilityTTL:         parseDuration(getEnv("LOTTERY_AVAILABILITY_TTL", "1m")),
			DefaultCommissionRate:   parseFloat(getEnv("LOTTERY_DEFAULT_COMMISSION_RATE", "0.1")),
			DefaultMultiplier:       parseFloat(getEnv("LOTTERY_DEFAULT_MULTIPLIER", "70")),
			DefaultLiabilityCeiling: parseFloat(getEnv("LOTTERY_DEFAULT_LIABILITY_CEILING", "10000")),
			DefaultExtractionTimes:  strings.Split(getEnv("LOTTERY_DEFAULT_EXTRACTION_TIMES", "13:00,21:00"), ","),
			SignatureSecret:         getEnv("LOTTERY_SIGNATURE_SECRET", "secret"),
			GameSeedFile:            getEnv("LOTTERY_GAME_SEED_FILE", ""),
		},
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient(ctx context.Context) {
	var err error
	s.redisClient, err = xredis.NewClient(ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPublisher() {
	s.publisher = kafka.NewPublisher("lotoplay-api", []string{s.configs.Kafka.Addr})
}

func (s *srv) loadRepos() {
	s.gameRepo = repository.NewGameRepository()
	s.drawRepo = repository.NewDrawRepository()
	s.areaRepo = repository.NewAreaRepository()
	s.areaConfigRepo = repository.NewAreaConfigRepository()
	s.ticketRepo = repository.NewTicketRepository()
	s.transactionRepo = repository.NewTransactionRepository()
	s.userRepo = repository.NewUserRepository()
}

func (s *srv) loadDomains() {
	s.ticketDomain = domain.NewTicketDomain(
		s.gameRepo, s.areaRepo, s.areaConfigRepo, s.ticketRepo, s.userRepo,
		s.redisClient, s.publisher,
		common.NewEligibilityChecker(s.userRepo, s.ticketRepo),
		common.NewHMACSigner(),
	)
	s.drawDomain = domain.NewDrawDomain(
		s.drawRepo, s.gameRepo, s.ticketRepo, s.transactionRepo, s.publisher)
	s.gameDomain = domain.NewGameDomain(s.gameRepo, s.areaRepo, s.areaConfigRepo)
}

// newContext builds the base context every non-request code path runs under.
func (s *srv) newContext() context.Context {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	if s.db != nil {
		ctx = xcontext.WithDB(ctx, s.db)
	}

	return ctx
}
