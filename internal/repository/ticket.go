package repository

import (
	"context"
	"time"

	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// ScopeFilter selects the (game, draw date, series-or-global) key space
// within which uniqueness and liability are enforced. A nil Series means the
// global scope.
type ScopeFilter struct {
	GameID   string
	DrawDate time.Time
	Series   *string
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	CreateEntries(ctx context.Context, entries []entity.TicketEntry) error
	GetByID(ctx context.Context, id string) (*entity.Ticket, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Ticket, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Ticket, error)

	// GetSoldNumbers returns the bet numbers of all non-cancelled tickets in
	// the scope.
	GetSoldNumbers(ctx context.Context, filter ScopeFilter) ([]string, error)

	// SumExposureByNumber returns the aggregate house liability already
	// carried by a single bet number for a draw, across all series.
	SumExposureByNumber(ctx context.Context, gameID string, drawDate time.Time, number string) (float64, error)

	// GetUsedTicketNumbers returns the sequence ticket numbers taken in the
	// scope, for capacity-limited games.
	GetUsedTicketNumbers(ctx context.Context, filter ScopeFilter) ([]int64, error)

	GetByDraw(ctx context.Context, gameID string, drawDate time.Time, areaID string) ([]entity.Ticket, error)

	// UpdateStatus transitions the ticket only when it still has the expected
	// current status.
	UpdateStatus(ctx context.Context, id string, from, to entity.TicketStatus) error

	Cancel(ctx context.Context, id string, status entity.TicketStatus, reason, requestedBy string, at time.Time) error

	SumStakeByUserSince(ctx context.Context, userID string, since time.Time) (float64, error)
}

type ticketRepository struct{}

func NewTicketRepository() *ticketRepository {
	return &ticketRepository{}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	return xcontext.DB(ctx).Create(ticket).Error
}

func (r *ticketRepository) CreateEntries(ctx context.Context, entries []entity.TicketEntry) error {
	if len(entries) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Create(entries).Error
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*entity.Ticket, error) {
	var result entity.Ticket
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *ticketRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Ticket, error) {
	var result entity.Ticket
	err := lockForUpdate(xcontext.DB(ctx)).
		Take(&result, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *ticketRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Ticket, error) {
	var result []entity.Ticket
	err := xcontext.DB(ctx).
		Order("created_at DESC").
		Find(&result, "user_id=?", userID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ticketRepository) scopeQuery(ctx context.Context, filter ScopeFilter) *gorm.DB {
	tx := xcontext.DB(ctx).Model(&entity.TicketEntry{}).
		Joins("JOIN tickets ON tickets.id = ticket_entries.ticket_id").
		Where("ticket_entries.game_id=?", filter.GameID).
		Where("ticket_entries.draw_date=?", filter.DrawDate).
		Where("tickets.status != ?", entity.TicketCancelled)

	if filter.Series != nil {
		tx = tx.Where("ticket_entries.series=?", *filter.Series)
	}

	return tx
}

func (r *ticketRepository) GetSoldNumbers(ctx context.Context, filter ScopeFilter) ([]string, error) {
	var result []string
	err := r.scopeQuery(ctx, filter).
		Pluck("ticket_entries.number", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ticketRepository) SumExposureByNumber(
	ctx context.Context, gameID string, drawDate time.Time, number string,
) (float64, error) {
	var result float64
	err := xcontext.DB(ctx).Model(&entity.TicketEntry{}).
		Joins("JOIN tickets ON tickets.id = ticket_entries.ticket_id").
		Where("ticket_entries.game_id=?", gameID).
		Where("ticket_entries.draw_date=?", drawDate).
		Where("ticket_entries.number=?", number).
		Where("tickets.status != ?", entity.TicketCancelled).
		Select("COALESCE(SUM(ticket_entries.exposure), 0)").
		Scan(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *ticketRepository) GetUsedTicketNumbers(ctx context.Context, filter ScopeFilter) ([]int64, error) {
	tx := xcontext.DB(ctx).Model(&entity.Ticket{}).
		Where("game_id=?", filter.GameID).
		Where("draw_date=?", filter.DrawDate).
		Where("status != ?", entity.TicketCancelled).
		Where("ticket_number IS NOT NULL")

	if filter.Series != nil {
		tx = tx.Where("series=?", *filter.Series)
	}

	var result []int64
	if err := tx.Pluck("ticket_number", &result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ticketRepository) GetByDraw(
	ctx context.Context, gameID string, drawDate time.Time, areaID string,
) ([]entity.Ticket, error) {
	tx := xcontext.DB(ctx).
		Where("game_id=?", gameID).
		Where("draw_date=?", drawDate).
		Where("status != ?", entity.TicketCancelled)

	if areaID != "" {
		tx = tx.Where("area_id=?", areaID)
	}

	var result []entity.Ticket
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ticketRepository) UpdateStatus(
	ctx context.Context, id string, from, to entity.TicketStatus,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Ticket{}).
		Where("id=? AND status=?", id, from).
		Update("status", to)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *ticketRepository) Cancel(
	ctx context.Context, id string, status entity.TicketStatus,
	reason, requestedBy string, at time.Time,
) error {
	updates := map[string]any{
		"status":              status,
		"cancel_reason":       reason,
		"cancel_requested_by": requestedBy,
	}
	if status == entity.TicketCancelled {
		updates["cancelled_at"] = at
	}

	tx := xcontext.DB(ctx).Model(&entity.Ticket{}).
		Where("id=? AND status IN ?", id,
			[]entity.TicketStatus{entity.TicketPending, entity.TicketCancelRequested}).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *ticketRepository) SumStakeByUserSince(
	ctx context.Context, userID string, since time.Time,
) (float64, error) {
	var result float64
	err := xcontext.DB(ctx).Model(&entity.Ticket{}).
		Where("user_id=?", userID).
		Where("created_at >= ?", since).
		Where("status != ?", entity.TicketCancelled).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
