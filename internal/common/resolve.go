package common

import "database/sql"

// ResolveFloat returns the first defined override, falling back to the given
// default. Callers list overrides in priority order (area config before
// game), so the fallback chain lives in exactly one place.
func ResolveFloat(fallback float64, overrides ...sql.NullFloat64) float64 {
	for _, o := range overrides {
		if o.Valid {
			return o.Float64
		}
	}

	return fallback
}

// FloatOverride lifts a plain config value into the override chain. Zero
// means unset.
func FloatOverride(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: v > 0}
}
