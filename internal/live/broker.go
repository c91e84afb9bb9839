// Package live delivers row-level change notifications from Postgres to
// interested consumers, keyed by trip.
//
// Notifications carry only "something in this table of this trip changed" —
// no row payload. Consumers react by refetching the affected collection and
// recomputing derived state from the fresh snapshot, so dropped or coalesced
// notifications are harmless as long as a later one arrives.
package live

import (
	"sync"

	"github.com/google/uuid"
)

// Change identifies a row-level change in one of the trip-scoped tables.
type Change struct {
	TripID uuid.UUID `json:"trip_id"`
	Table  string    `json:"table"`
}

// subscriberBuffer bounds each subscriber's pending notifications. A full
// buffer drops the oldest pending value's successors rather than blocking
// the publisher; consumers refetch full state, so one surviving
// notification is as good as ten.
const subscriberBuffer = 8

// Broker fans out changes to per-trip subscribers. The zero value is not
// usable; construct with NewBroker.
type Broker struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[chan Change]struct{}
}

// NewBroker constructs an empty Broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[uuid.UUID]map[chan Change]struct{})}
}

// Subscribe registers interest in changes for one trip. The returned release
// func must be called when the consumer goes away — a standing subscription
// against a closed trip view is a leak. Release is idempotent and closes the
// channel.
func (b *Broker) Subscribe(tripID uuid.UUID) (<-chan Change, func()) {
	ch := make(chan Change, subscriberBuffer)

	b.mu.Lock()
	if b.subs[tripID] == nil {
		b.subs[tripID] = make(map[chan Change]struct{})
	}
	b.subs[tripID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[tripID], ch)
			if len(b.subs[tripID]) == 0 {
				delete(b.subs, tripID)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, release
}

// Publish delivers a change to every subscriber of its trip. Slow
// subscribers with a full buffer miss this notification instead of
// blocking delivery to the others.
func (b *Broker) Publish(c Change) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs[c.TripID] {
		select {
		case ch <- c:
		default:
		}
	}
}

// SubscriberCount reports the number of active subscriptions for a trip.
// Exposed for tests and observability.
func (b *Broker) SubscriberCount(tripID uuid.UUID) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[tripID])
}
