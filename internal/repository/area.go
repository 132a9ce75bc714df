package repository

import (
	"context"

	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AreaRepository interface {
	Create(ctx context.Context, area *entity.Area) error
	GetByID(ctx context.Context, id string) (*entity.Area, error)

	// GetByIDForUpdate locks the area row for the rest of the current
	// transaction. Every series read-compute-write sequence must go through
	// this lock.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Area, error)

	UseSeriesTicket(ctx context.Context, id string) error
	RollSeries(ctx context.Context, id, newSeries string) error
}

type areaRepository struct{}

func NewAreaRepository() *areaRepository {
	return &areaRepository{}
}

func (r *areaRepository) Create(ctx context.Context, area *entity.Area) error {
	return xcontext.DB(ctx).Create(area).Error
}

func (r *areaRepository) GetByID(ctx context.Context, id string) (*entity.Area, error) {
	var result entity.Area
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *areaRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Area, error) {
	var result entity.Area
	err := lockForUpdate(xcontext.DB(ctx)).
		Take(&result, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// UseSeriesTicket counts one more ticket into the area's current series. The
// capacity guard is part of the statement so the counter can never pass the
// maximum even if the caller's view of the row was stale.
func (r *areaRepository) UseSeriesTicket(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Model(&entity.Area{}).
		Where("id=? AND tickets_in_series < max_tickets_per_series", id).
		Update("tickets_in_series", gorm.Expr("tickets_in_series+?", 1))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// RollSeries moves the area to a new series and counts the first ticket of
// that series. It only applies when the current series is exhausted.
func (r *areaRepository) RollSeries(ctx context.Context, id, newSeries string) error {
	tx := xcontext.DB(ctx).Model(&entity.Area{}).
		Where("id=? AND tickets_in_series >= max_tickets_per_series", id).
		Updates(map[string]any{
			"current_series":    newSeries,
			"tickets_in_series": 1,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
