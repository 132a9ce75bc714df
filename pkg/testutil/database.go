package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/internal/repository"
	"github.com/lotoplay/backend/pkg/xcontext"

	"golang.org/x/sync/errgroup"
)

// TestDatabaseDomain hammers the hot queries of the sales path with a bunch
// of parallel hits. It exists to measure database sizing before a launch and
// is only routed outside production.
type TestDatabaseDomain interface {
	TestDatabaseMaximumHit(ctx context.Context, req *TestDatabaseMaximumHitRequest) (*TestDatabaseMaximumHitResponse, error)
}

func NewTestDatabaseDomain(
	gameRepo repository.GameRepository,
	ticketRepo repository.TicketRepository,
	userRepo repository.UserRepository,
) TestDatabaseDomain {
	return &testDatabaseDomain{
		gameRepo:   gameRepo,
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
	}
}

type testDatabaseDomain struct {
	gameRepo   repository.GameRepository
	ticketRepo repository.TicketRepository
	userRepo   repository.UserRepository
}

type TestDatabaseMaximumHitRequest struct {
	BunchHit      int  `json:"bunch_hit"`
	IsStrongQuery bool `json:"is_strong_query"`
}

type TestDatabaseMaximumHitResponse struct {
	ReadHit  int64 `json:"read_hit"`
	WriteHit int64 `json:"write_hit"`
}

func (d *testDatabaseDomain) TestDatabaseMaximumHit(
	ctx context.Context, req *TestDatabaseMaximumHitRequest,
) (*TestDatabaseMaximumHitResponse, error) {
	games, err := d.gameRepo.GetList(ctx)
	if err != nil {
		return nil, err
	}

	if len(games) == 0 {
		return nil, fmt.Errorf("no game to query against")
	}

	gameID := games[0].ID
	drawDate := time.Now()

	insertBunchHit := req.BunchHit * 5 / 100 // insert is 5%

	readHitSuccess := int64(0)
	writeHitSuccess := int64(0)
	xcontext.Logger(ctx).Infof("Start test database with read_hit = %v, write_hit = %v",
		req.BunchHit-insertBunchHit, insertBunchHit)

	eg, ctx := errgroup.WithContext(ctx)
	for i := 1; i <= insertBunchHit; i++ {
		eg.Go(func() error {
			id := uuid.NewString()
			if err := d.userRepo.Create(ctx, &entity.User{
				Base:     entity.Base{ID: id},
				Name:     fmt.Sprintf("test-%s", id),
				IsActive: false,
			}); err != nil {
				return err
			}

			atomic.AddInt64(&writeHitSuccess, 1)
			return nil
		})
	}

	for i := 1; i <= req.BunchHit-insertBunchHit; i++ {
		eg.Go(func() error {
			var err error
			if req.IsStrongQuery {
				_, err = d.ticketRepo.SumExposureByNumber(ctx, gameID, drawDate, "00")
			} else {
				_, err = d.gameRepo.GetByID(ctx, gameID)
			}
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot query database: %v", err)
				return err
			}

			atomic.AddInt64(&readHitSuccess, 1)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		xcontext.Logger(ctx).Errorf("Read hit success = %v, Write hit success = %v",
			readHitSuccess, writeHitSuccess)
		return nil, err
	}

	return &TestDatabaseMaximumHitResponse{
		ReadHit:  readHitSuccess,
		WriteHit: writeHitSuccess,
	}, nil
}
