package entity

type User struct {
	Base

	Name     string
	IsActive bool

	// DailyStakeLimit bounds the user's accepted stake per civil day. Zero
	// means no limit.
	DailyStakeLimit float64
}
