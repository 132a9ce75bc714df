package common

import (
	"fmt"
	"time"
)

// GlobalScope is the series segment of an availability key when sold numbers
// are aggregated across every series of the draw.
const GlobalScope = "global"

// RedisKeyAvailability maps a (game, draw timestamp, series-or-global) scope
// to the set of already-sold bet numbers.
func RedisKeyAvailability(gameID string, drawDate time.Time, scope string) string {
	return fmt.Sprintf("availability:%s:%d:%s", gameID, drawDate.Unix(), scope)
}
