package common

import (
	"context"
	"errors"
	"time"

	"github.com/lotoplay/backend/internal/repository"
	"github.com/lotoplay/backend/pkg/errorx"
	"github.com/lotoplay/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// EligibilityChecker decides whether a seller may take a new stake. The real
// deployment plugs the accountability subsystem in here; the default
// implementation only enforces account state and the daily stake limit.
type EligibilityChecker interface {
	Validate(ctx context.Context, userID string, stake float64) error
}

type eligibilityChecker struct {
	userRepo   repository.UserRepository
	ticketRepo repository.TicketRepository
}

func NewEligibilityChecker(
	userRepo repository.UserRepository,
	ticketRepo repository.TicketRepository,
) *eligibilityChecker {
	return &eligibilityChecker{
		userRepo:   userRepo,
		ticketRepo: ticketRepo,
	}
}

func (c *eligibilityChecker) Validate(ctx context.Context, userID string, stake float64) error {
	user, err := c.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return errorx.Unknown
	}

	if !user.IsActive {
		return errorx.New(errorx.PermissionDenied, "Account is inactive")
	}

	if user.DailyStakeLimit > 0 {
		// The daily window follows the civil day of the lottery timezone, the
		// same clock the draw slots run on.
		loc, err := time.LoadLocation(xcontext.Configs(ctx).Lottery.Timezone)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Invalid lottery timezone: %v", err)
			return errorx.Unknown
		}

		now := time.Now().In(loc)
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		total, err := c.ticketRepo.SumStakeByUserSince(ctx, userID, startOfDay)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot sum user stake: %v", err)
			return errorx.Unknown
		}

		if total+stake > user.DailyStakeLimit {
			return errorx.New(errorx.PermissionDenied, "Daily stake limit reached")
		}
	}

	return nil
}
