package entity

import (
	"database/sql"

	"github.com/lotoplay/backend/pkg/enum"
)

type TicketStatus string

var (
	TicketPending         = enum.New(TicketStatus("pending"))
	TicketWon             = enum.New(TicketStatus("won"))
	TicketLost            = enum.New(TicketStatus("lost"))
	TicketPaid            = enum.New(TicketStatus("paid"))
	TicketExpired         = enum.New(TicketStatus("expired"))
	TicketCancelRequested = enum.New(TicketStatus("cancel_requested"))
	TicketCancelled       = enum.New(TicketStatus("cancelled"))
)

type Ticket struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	GameID string
	Game   Game `gorm:"foreignKey:GameID"`

	AreaID string
	Area   Area `gorm:"foreignKey:AreaID"`

	Numbers Array[string]
	Amount  float64

	// Financial breakdown fixed at creation time.
	CommissionValue float64
	NetValue        float64
	PossiblePrize   float64

	Series       sql.NullString
	TicketNumber sql.NullInt64
	DrawDate     sql.NullTime

	Status TicketStatus

	// Signature is the tamper-evident digest over (id, numbers, amount,
	// user id, draw date).
	Signature string

	CancelReason      string
	CancelRequestedBy string
	CancelledAt       sql.NullTime
}

// TicketEntry is the per-number projection of a ticket. It exists so that
// sold-number and liability queries can filter on a single bet number without
// unpacking the ticket's JSON array.
type TicketEntry struct {
	Base

	TicketID string
	Ticket   Ticket `gorm:"foreignKey:TicketID"`

	GameID   string
	Series   sql.NullString
	DrawDate sql.NullTime

	Number string

	// Exposure is the house liability carried by this number if it wins.
	Exposure float64
}
