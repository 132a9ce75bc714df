package repository

import (
	"context"
	"time"

	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/pkg/xcontext"
)

type DrawRepository interface {
	Create(ctx context.Context, draw *entity.Draw) error
	GetByID(ctx context.Context, id string) (*entity.Draw, error)

	// GetByIDForUpdate locks the draw row so that concurrent settlement runs
	// for the same draw serialize at the database.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Draw, error)

	GetByGameAndDate(ctx context.Context, gameID string, drawDate time.Time) (*entity.Draw, error)
	UpdateResult(ctx context.Context, draw *entity.Draw) error
}

type drawRepository struct{}

func NewDrawRepository() *drawRepository {
	return &drawRepository{}
}

func (r *drawRepository) Create(ctx context.Context, draw *entity.Draw) error {
	return xcontext.DB(ctx).Create(draw).Error
}

func (r *drawRepository) GetByID(ctx context.Context, id string) (*entity.Draw, error) {
	var result entity.Draw
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *drawRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Draw, error) {
	var result entity.Draw
	err := lockForUpdate(xcontext.DB(ctx)).
		Take(&result, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *drawRepository) GetByGameAndDate(
	ctx context.Context, gameID string, drawDate time.Time,
) (*entity.Draw, error) {
	var result entity.Draw
	err := xcontext.DB(ctx).Take(&result, "game_id=? AND draw_date=?", gameID, drawDate).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *drawRepository) UpdateResult(ctx context.Context, draw *entity.Draw) error {
	return xcontext.DB(ctx).Model(&entity.Draw{}).
		Where("id=?", draw.ID).
		Updates(map[string]any{
			"numbers": draw.Numbers,
			"matches": draw.Matches,
			"status":  draw.Status,
		}).Error
}
