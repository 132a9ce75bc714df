package model

type Game struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Kind             string   `json:"kind"`
	ExtractionTimes  []string `json:"extraction_times"`
	CommissionRate   float64  `json:"commission_rate"`
	Multiplier       float64  `json:"multiplier"`
	LiabilityCeiling float64  `json:"liability_ceiling"`
	NumberingMode    string   `json:"numbering_mode"`
	PoolSize         int      `json:"pool_size"`
	NumbersPerTicket int      `json:"numbers_per_ticket"`
	ModalityMax      int      `json:"modality_max"`
	GlobalUniqueness bool     `json:"global_uniqueness"`
	RestrictedMode   bool     `json:"restricted_mode"`
	MaxTickets       int      `json:"max_tickets"`
	IsActive         bool     `json:"is_active"`
}

type CreateGameRequest struct {
	Name             string   `json:"name"`
	Kind             string   `json:"kind"`
	ExtractionTimes  []string `json:"extraction_times"`
	CommissionRate   float64  `json:"commission_rate"`
	Multiplier       float64  `json:"multiplier"`
	LiabilityCeiling float64  `json:"liability_ceiling"`
	NumberingMode    string   `json:"numbering_mode"`
	PoolSize         int      `json:"pool_size"`
	NumbersPerTicket int      `json:"numbers_per_ticket"`
	ModalityMax      int      `json:"modality_max"`
	GlobalUniqueness bool     `json:"global_uniqueness"`
	RestrictedMode   bool     `json:"restricted_mode"`
	MaxTickets       int      `json:"max_tickets"`
}

type CreateGameResponse struct {
	Game Game `json:"game"`
}

type DisableGameRequest struct {
	GameID string `json:"game_id"`
}

type DisableGameResponse struct{}

type GetGamesRequest struct{}

type GetGamesResponse struct {
	Games []Game `json:"games"`
}

type CreateAreaRequest struct {
	Name                string  `json:"name"`
	MaxTicketsPerSeries int     `json:"max_tickets_per_series"`
	AutoCycleSeries     bool    `json:"auto_cycle_series"`
	WarningThreshold    float64 `json:"warning_threshold"`
	NotifyOnWarning     bool    `json:"notify_on_warning"`
}

type CreateAreaResponse struct {
	AreaID string `json:"area_id"`
}

type UpsertAreaConfigRequest struct {
	AreaID           string   `json:"area_id"`
	GameID           string   `json:"game_id"`
	CommissionRate   *float64 `json:"commission_rate"`
	Multiplier       *float64 `json:"multiplier"`
	LiabilityCeiling *float64 `json:"liability_ceiling"`
}

type UpsertAreaConfigResponse struct{}
