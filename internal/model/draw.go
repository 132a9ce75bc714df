package model

import "time"

type Draw struct {
	ID       string    `json:"id"`
	GameID   string    `json:"game_id"`
	AreaID   string    `json:"area_id,omitempty"`
	DrawDate time.Time `json:"draw_date"`
	Numbers  []string  `json:"numbers,omitempty"`
	Matches  []string  `json:"matches,omitempty"`
	Status   string    `json:"status"`
}

type ScheduleDrawRequest struct {
	GameID   string    `json:"game_id"`
	AreaID   string    `json:"area_id"`
	DrawDate time.Time `json:"draw_date"`
}

type ScheduleDrawResponse struct {
	Draw Draw `json:"draw"`
}

type GetDrawRequest struct {
	DrawID string `json:"draw_id" form:"draw_id"`
}

type GetDrawResponse struct {
	Draw Draw `json:"draw"`
}

type SettleDrawRequest struct {
	DrawID string `json:"draw_id"`

	// Numbers results a match-any draw.
	Numbers []string `json:"numbers"`

	// Matches results a ranked-match draw, in fixture order.
	Matches []string `json:"matches"`
}

type SettleDrawResponse struct {
	WonCount  int `json:"won_count"`
	LostCount int `json:"lost_count"`
}
