package entity

type Area struct {
	Base

	Name string

	// CurrentSeries is a zero-padded 4-digit counter segmenting the area's
	// ticket numbering.
	CurrentSeries       string
	TicketsInSeries     int
	MaxTicketsPerSeries int

	IsActive        bool
	AutoCycleSeries bool

	// WarningThreshold is the series saturation ratio above which a warning
	// notification is emitted, in [0, 1].
	WarningThreshold float64
	NotifyOnWarning  bool
}
