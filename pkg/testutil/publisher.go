package testutil

import (
	"context"

	"github.com/lotoplay/backend/pkg/pubsub"
)

type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error

	// Packs records every published pack by topic when PublishFunc is unset.
	Packs map[string][]*pubsub.Pack
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	if m.Packs == nil {
		m.Packs = make(map[string][]*pubsub.Pack)
	}

	m.Packs[topic] = append(m.Packs[topic], pack)
	return nil
}

func (m *MockPublisher) Stop(ctx context.Context) error {
	return nil
}
