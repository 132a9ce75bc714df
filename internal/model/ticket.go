package model

import "time"

type Ticket struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	GameID          string     `json:"game_id"`
	AreaID          string     `json:"area_id"`
	Numbers         []string   `json:"numbers"`
	Amount          float64    `json:"amount"`
	CommissionValue float64    `json:"commission_value"`
	NetValue        float64    `json:"net_value"`
	PossiblePrize   float64    `json:"possible_prize"`
	Series          string     `json:"series,omitempty"`
	TicketNumber    int64      `json:"ticket_number,omitempty"`
	DrawDate        *time.Time `json:"draw_date,omitempty"`
	Status          string     `json:"status"`
	Signature       string     `json:"signature"`
	CancelReason    string     `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type CreateTicketRequest struct {
	GameID  string   `json:"game_id"`
	AreaID  string   `json:"area_id"`
	Numbers []string `json:"numbers"`
	Amount  float64  `json:"amount"`
}

type CreateTicketResponse struct {
	Ticket Ticket `json:"ticket"`
}

type GetTicketRequest struct {
	TicketID string `json:"ticket_id" form:"ticket_id"`
}

type GetTicketResponse struct {
	Ticket Ticket `json:"ticket"`
}

type GetMyTicketsRequest struct{}

type GetMyTicketsResponse struct {
	Tickets []Ticket `json:"tickets"`
}

type GetAvailabilityRequest struct {
	GameID string `json:"game_id" form:"game_id"`
	AreaID string `json:"area_id" form:"area_id"`
}

type GetAvailabilityResponse struct {
	DrawDate    time.Time `json:"draw_date"`
	SoldNumbers []string  `json:"sold_numbers"`
}

type CancelTicketRequest struct {
	TicketID string `json:"ticket_id"`
	Reason   string `json:"reason"`
}

type CancelTicketResponse struct {
	Ticket Ticket `json:"ticket"`
}

type ApproveCancelRequest struct {
	TicketID string `json:"ticket_id"`
	Approve  bool   `json:"approve"`
}

type ApproveCancelResponse struct {
	Ticket Ticket `json:"ticket"`
}

type MarkPaidRequest struct {
	TicketID string `json:"ticket_id"`
}

type MarkPaidResponse struct {
	Ticket Ticket `json:"ticket"`
}
