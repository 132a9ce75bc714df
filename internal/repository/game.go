package repository

import (
	"context"

	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)

	// GetByIDForUpdate locks the game row for the rest of the current
	// transaction. It is the scope-wide mutex of games that enforce number
	// uniqueness across all series.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Game, error)

	GetList(ctx context.Context) ([]entity.Game, error)
	Disable(ctx context.Context, id string) error
}

type gameRepository struct{}

func NewGameRepository() *gameRepository {
	return &gameRepository{}
}

func (r *gameRepository) Create(ctx context.Context, game *entity.Game) error {
	return xcontext.DB(ctx).Create(game).Error
}

func (r *gameRepository) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	var result entity.Game
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *gameRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Game, error) {
	var result entity.Game
	err := lockForUpdate(xcontext.DB(ctx)).
		Take(&result, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *gameRepository) GetList(ctx context.Context) ([]entity.Game, error) {
	var result []entity.Game
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// Disable soft-disables the game. Games referenced by tickets are never
// deleted.
func (r *gameRepository) Disable(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Model(&entity.Game{}).
		Where("id=?", id).
		Update("is_active", false)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
