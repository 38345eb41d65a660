package gateway

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/aryansoni13/F1-Prediction-model/internal/events"
)

// ErrSubscriberGone is returned by a subscriber whose connection can no
// longer accept messages.
var ErrSubscriberGone = errors.New("subscriber gone")

// Subscriber is one attached client. Send must not block: it either
// accepts the frame or returns an error, in which case the registry drops
// the subscriber.
type Subscriber interface {
	ID() string
	Send(data []byte) error
	Close()
}

// Registry tracks the attached subscribers and fans broadcast events out
// to all of them. Delivery is best effort: a failing subscriber is evicted
// within the same broadcast and never blocks the others.
type Registry struct {
	mu          sync.RWMutex
	subscribers map[Subscriber]bool
}

func NewRegistry() *Registry {
	return &Registry{subscribers: make(map[Subscriber]bool)}
}

func (r *Registry) Register(sub Subscriber) {
	r.mu.Lock()
	r.subscribers[sub] = true
	total := len(r.subscribers)
	r.mu.Unlock()

	log.Debug().Str("subscriber_id", sub.ID()).Int("total_subscribers", total).Msg("subscriber registered")
}

// Unregister removes a subscriber. Removing one that is already gone is a
// no-op.
func (r *Registry) Unregister(sub Subscriber) {
	r.mu.Lock()
	_, known := r.subscribers[sub]
	delete(r.subscribers, sub)
	total := len(r.subscribers)
	r.mu.Unlock()

	if known {
		log.Debug().Str("subscriber_id", sub.ID()).Int("total_subscribers", total).Msg("subscriber unregistered")
	}
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscribers)
}

// Broadcast encodes the envelope once and delivers it to every subscriber.
// Fan-out runs over a snapshot of the set; failed subscribers are collected
// during the pass and evicted afterwards, so eviction never races the
// iteration. Returns the number of successful deliveries.
func (r *Registry) Broadcast(env events.Envelope) int {
	data, err := env.Encode()
	if err != nil {
		log.Error().Err(err).Str("event_type", string(env.Type)).Msg("failed to encode broadcast event")
		return 0
	}

	r.mu.RLock()
	targets := make([]Subscriber, 0, len(r.subscribers))
	for sub := range r.subscribers {
		targets = append(targets, sub)
	}
	r.mu.RUnlock()

	var failed []Subscriber
	delivered := 0
	for _, sub := range targets {
		if err := sub.Send(data); err != nil {
			log.Warn().Err(err).Str("subscriber_id", sub.ID()).Msg("dropping subscriber after failed send")
			failed = append(failed, sub)
			continue
		}
		delivered++
	}

	for _, sub := range failed {
		r.Unregister(sub)
		sub.Close()
	}

	log.Debug().
		Str("event_type", string(env.Type)).
		Int("delivered", delivered).
		Int("dropped", len(failed)).
		Msg("event broadcast")

	return delivered
}
