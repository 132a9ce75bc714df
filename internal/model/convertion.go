package model

import (
	"github.com/lotoplay/backend/internal/entity"
)

func ConvertTicket(t *entity.Ticket) Ticket {
	result := Ticket{
		ID:              t.ID,
		UserID:          t.UserID,
		GameID:          t.GameID,
		AreaID:          t.AreaID,
		Numbers:         t.Numbers,
		Amount:          t.Amount,
		CommissionValue: t.CommissionValue,
		NetValue:        t.NetValue,
		PossiblePrize:   t.PossiblePrize,
		Status:          string(t.Status),
		Signature:       t.Signature,
		CancelReason:    t.CancelReason,
		CreatedAt:       t.CreatedAt,
	}

	if t.Series.Valid {
		result.Series = t.Series.String
	}

	if t.TicketNumber.Valid {
		result.TicketNumber = t.TicketNumber.Int64
	}

	if t.DrawDate.Valid {
		drawDate := t.DrawDate.Time
		result.DrawDate = &drawDate
	}

	return result
}

func ConvertDraw(d *entity.Draw) Draw {
	result := Draw{
		ID:       d.ID,
		GameID:   d.GameID,
		DrawDate: d.DrawDate,
		Numbers:  d.Numbers,
		Status:   string(d.Status),
	}

	if d.AreaID.Valid {
		result.AreaID = d.AreaID.String
	}

	for _, m := range d.Matches {
		result.Matches = append(result.Matches, string(m))
	}

	return result
}

func ConvertGame(g *entity.Game) Game {
	return Game{
		ID:               g.ID,
		Name:             g.Name,
		Kind:             string(g.Kind),
		ExtractionTimes:  g.ExtractionTimes,
		CommissionRate:   g.CommissionRate,
		Multiplier:       g.Multiplier,
		LiabilityCeiling: g.LiabilityCeiling,
		NumberingMode:    string(g.NumberingMode),
		PoolSize:         g.PoolSize,
		NumbersPerTicket: g.NumbersPerTicket,
		ModalityMax:      g.ModalityMax,
		GlobalUniqueness: g.GlobalUniqueness,
		RestrictedMode:   g.RestrictedMode,
		MaxTickets:       g.MaxTickets,
		IsActive:         g.IsActive,
	}
}
