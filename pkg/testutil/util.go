package testutil

import (
	"context"
	"time"

	"github.com/lotoplay/backend/config"
	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/pkg/logger"
	"github.com/lotoplay/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Lottery: config.LotteryConfigs{
			Timezone:                "UTC",
			CutoffWindow:            5 * time.Minute,
			SuspiciousMargin:        time.Minute,
			CancelGracePeriod:       time.Minute,
			AvailabilityTTL:         time.Minute,
			DefaultCommissionRate:   0.1,
			DefaultMultiplier:       70,
			DefaultLiabilityCeiling: 1000,
			DefaultExtractionTimes:  []string{"13:00", "21:00"},
			SignatureSecret:         "signature-secret",
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.ERROR))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}
