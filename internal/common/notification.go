package common

import (
	"context"
	"encoding/json"

	"github.com/lotoplay/backend/pkg/pubsub"
	"github.com/lotoplay/backend/pkg/xcontext"
)

const (
	SeriesWarningTopic = "lottery.series-warning"
	TicketIssuedTopic  = "lottery.ticket-issued"
	DrawSettledTopic   = "lottery.draw-settled"
)

// Notify publishes an event without letting a delivery failure reach the
// caller. Notification dispatch is fire-and-forget.
func Notify(ctx context.Context, publisher pubsub.Publisher, topic string, key string, event any) {
	b, err := json.Marshal(event)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal %s event: %v", topic, err)
		return
	}

	if err := publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(key), Msg: b}); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish %s event: %v", topic, err)
	}
}

type SeriesWarningEvent struct {
	AreaID     string  `json:"area_id"`
	Series     string  `json:"series"`
	Saturation float64 `json:"saturation"`
}

type TicketIssuedEvent struct {
	TicketID string   `json:"ticket_id"`
	UserID   string   `json:"user_id"`
	GameID   string   `json:"game_id"`
	Numbers  []string `json:"numbers"`
	Amount   float64  `json:"amount"`
}

type DrawSettledEvent struct {
	DrawID    string `json:"draw_id"`
	GameID    string `json:"game_id"`
	WonCount  int    `json:"won_count"`
	LostCount int    `json:"lost_count"`
}
