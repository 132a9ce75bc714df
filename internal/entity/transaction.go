package entity

import (
	"database/sql"

	"github.com/lotoplay/backend/pkg/enum"
)

type TransactionType string

var (
	TransactionCredit = enum.New(TransactionType("credit"))
	TransactionDebit  = enum.New(TransactionType("debit"))
)

// Transaction is an append-only ledger entry. Prize payouts, payout
// reversals, and manual cash movements all land here.
type Transaction struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	TicketID sql.NullString
	Ticket   Ticket `gorm:"foreignKey:TicketID"`

	Type   TransactionType
	Amount float64

	// Note contains the reason of this transaction in case of not coming
	// from a settlement.
	Note string
}
