package runtime

import (
	"context"
	"testing"

	"world-sync/domain/event"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type Sink struct {
	name string
}

func (s Sink) Consume(ctx context.Context, e event.Event) error {
	return nil
}

func TestRegistry_Subscribe_One_Topic_One_Subscriber(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	subscriberID := uuid.NewString()
	sink := Sink{name: "console"}

	// Given nobody is subscribed
	req.Empty(registry.Sinks)
	req.Empty(registry.TopicMembers)

	// When a subscriber follows the trade topic
	registry.Subscribe(subscriberID, event.TopicTrade, sink)

	// Then
	req.Len(registry.Sinks, 1)
	req.Equal(sink, registry.Sinks[subscriberID])
	req.Contains(registry.TopicMembers[event.TopicTrade], subscriberID)
	req.Equal([]Sink{sink}, toSinks(registry, event.TopicTrade))
	req.Nil(registry.GetSinksForTopic(event.TopicMessenger))
}

func TestRegistry_Subscribe_One_Topic_Multiple_Subscribers(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sink1 := Sink{name: "one"}
	sink2 := Sink{name: "two"}

	registry.Subscribe("one", event.TopicMessenger, sink1)
	registry.Subscribe("two", event.TopicMessenger, sink2)

	req.Len(registry.Sinks, 2)
	req.ElementsMatch([]Sink{sink1, sink2}, toSinks(registry, event.TopicMessenger))
}

func TestRegistry_Unsubscribe(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sink := Sink{name: "console"}

	// Given a subscriber following two topics
	registry.Subscribe("console", event.TopicTrade, sink)
	registry.Subscribe("console", event.TopicFriends, sink)

	// When it leaves one topic, its sink stays
	registry.Unsubscribe("console", event.TopicTrade)
	req.NotContains(registry.TopicMembers, event.TopicTrade)
	req.Contains(registry.Sinks, "console")

	// When it leaves the last one, everything is cleaned up
	registry.Unsubscribe("console", event.TopicFriends)
	req.Empty(registry.TopicMembers)
	req.Empty(registry.Sinks)
}

func toSinks(registry *Registry, topic event.Topic) []Sink {
	var sinks []Sink
	for _, s := range registry.GetSinksForTopic(topic) {
		sinks = append(sinks, s.(Sink))
	}
	return sinks
}
