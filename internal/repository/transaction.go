package repository

import (
	"context"

	"github.com/lotoplay/backend/internal/entity"
	"github.com/lotoplay/backend/pkg/xcontext"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Transaction, error)
	GetByTicketID(ctx context.Context, ticketID string) ([]entity.Transaction, error)

	// BalanceByUserID returns the net ledger balance (credits minus debits).
	BalanceByUserID(ctx context.Context, userID string) (float64, error)
}

type transactionRepository struct{}

func NewTransactionRepository() *transactionRepository {
	return &transactionRepository{}
}

func (r *transactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	return xcontext.DB(ctx).Create(tx).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var result entity.Transaction
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *transactionRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Transaction, error) {
	var result []entity.Transaction
	if err := xcontext.DB(ctx).Find(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *transactionRepository) GetByTicketID(ctx context.Context, ticketID string) ([]entity.Transaction, error) {
	var result []entity.Transaction
	if err := xcontext.DB(ctx).Find(&result, "ticket_id=?", ticketID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *transactionRepository) BalanceByUserID(ctx context.Context, userID string) (float64, error) {
	var result float64
	err := xcontext.DB(ctx).Model(&entity.Transaction{}).
		Where("user_id=?", userID).
		Select("COALESCE(SUM(CASE WHEN type=? THEN amount ELSE -amount END), 0)",
			entity.TransactionCredit).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}
