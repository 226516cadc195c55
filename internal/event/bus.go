package event

import (
	"errors"
	"sort"
	"sync"
)

// Errors returned by bus operations.
var (
	ErrNilHandler           = errors.New("handler must not be nil")
	ErrInvalidTopic         = errors.New("topic must not be empty")
	ErrInvalidSubscription  = errors.New("subscription must not be nil")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// Topic identifies an event stream.
type Topic string

// TopicProvider is implemented by events that know their topic.
type TopicProvider interface {
	EventTopic() Topic
}

// Handler receives published events.
type Handler func(evt any)

// Subscription is a live registration on the bus.
type Subscription struct {
	id    uint64
	topic Topic
}

// Topic returns the subscribed topic.
func (s *Subscription) Topic() Topic { return s.topic }

// Bus routes events from publishers to subscribers.
// Safe for concurrent use; handlers run on the publishing goroutine.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Topic]map[uint64]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic]map[uint64]Handler)}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic Topic, fn Handler) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	if topic == "" {
		return nil, ErrInvalidTopic
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[uint64]Handler)
	}
	b.subs[topic][b.nextID] = fn
	return &Subscription{id: b.nextID, topic: topic}, nil
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	handlers, ok := b.subs[sub.topic]
	if !ok {
		return ErrSubscriptionNotFound
	}
	if _, ok := handlers[sub.id]; !ok {
		return ErrSubscriptionNotFound
	}
	delete(handlers, sub.id)
	if len(handlers) == 0 {
		delete(b.subs, sub.topic)
	}
	return nil
}

// Publish delivers an event to every subscriber of its topic.
// Events without a topic are rejected.
func (b *Bus) Publish(evt TopicProvider) error {
	if evt == nil || evt.EventTopic() == "" {
		return ErrInvalidTopic
	}

	b.mu.RLock()
	handlers := b.subs[evt.EventTopic()]
	ids := make([]uint64, 0, len(handlers))
	for id := range handlers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	ordered := make([]Handler, len(ids))
	for i, id := range ids {
		ordered[i] = handlers[id]
	}
	b.mu.RUnlock()

	for _, fn := range ordered {
		fn(evt)
	}
	return nil
}

// SubscriberCount returns the number of handlers for a topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}
