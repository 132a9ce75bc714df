package repository

import (
	"context"
	"errors"

	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AreaConfigRepository interface {
	Upsert(ctx context.Context, config *entity.AreaConfig) error

	// Get returns the override for (area, game), or nil when no override
	// exists.
	Get(ctx context.Context, areaID, gameID string) (*entity.AreaConfig, error)
}

type areaConfigRepository struct{}

func NewAreaConfigRepository() *areaConfigRepository {
	return &areaConfigRepository{}
}

func (r *areaConfigRepository) Upsert(ctx context.Context, config *entity.AreaConfig) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "area_id"}, {Name: "game_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"commission_rate", "multiplier", "liability_ceiling",
		}),
	}).Create(config).Error
}

func (r *areaConfigRepository) Get(ctx context.Context, areaID, gameID string) (*entity.AreaConfig, error) {
	var result entity.AreaConfig
	err := xcontext.DB(ctx).Take(&result, "area_id=? AND game_id=?", areaID, gameID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &result, nil
}
