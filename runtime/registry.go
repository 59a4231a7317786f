package runtime

import (
	"sync"

	"world-sync/contract"
	"world-sync/domain/event"
)

type Set map[string]struct{}

// Registry keeps the sinks subscribed to each topic.
// A subscriber owns one sink, whatever the number of topics it follows.
type Registry struct {
	mu           sync.RWMutex
	Sinks        map[string]contract.EventSink
	TopicMembers map[event.Topic]Set
}

func NewRegistry() *Registry {
	return &Registry{
		Sinks:        make(map[string]contract.EventSink),
		TopicMembers: make(map[event.Topic]Set),
	}
}

// GetSinksForTopic returns nil when nobody follows the topic.
func (r *Registry) GetSinksForTopic(topic event.Topic) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.TopicMembers[topic]
	if !ok {
		return nil
	}
	var sinks []contract.EventSink
	for subscriberID := range members {
		if sink, exists := r.Sinks[subscriberID]; exists {
			sinks = append(sinks, sink)
		}
	}
	return sinks
}

// Subscribe replaces the subscriber's sink if it already had one.
func (r *Registry) Subscribe(subscriberID string, topic event.Topic, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Sinks[subscriberID] = sink
	if _, ok := r.TopicMembers[topic]; !ok {
		r.TopicMembers[topic] = make(Set)
	}
	r.TopicMembers[topic][subscriberID] = struct{}{}
}

// Unsubscribe removes the subscriber from one topic. Its sink is forgotten
// once it follows no topic anymore, and empty topics are dropped.
func (r *Registry) Unsubscribe(subscriberID string, topic event.Topic) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if members, ok := r.TopicMembers[topic]; ok {
		delete(members, subscriberID)
		if len(members) == 0 {
			delete(r.TopicMembers, topic)
		}
	}
	for _, members := range r.TopicMembers {
		if _, ok := members[subscriberID]; ok {
			return
		}
	}
	delete(r.Sinks, subscriberID)
}
