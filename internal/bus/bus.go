package bus

import (
	"sync"

	"airnow-hass/internal/sensors"
)

// Bus provides fan-out pub/sub semantics for sensors.Snapshot messages.
// Each Subscribe call gets its own channel that receives every future
// publication. Past snapshots are not replayed. The implementation is safe
// for concurrent publishers and subscribers.
type Bus struct {
	mu          sync.RWMutex
	subscribers []chan sensors.Snapshot
}

// New creates a ready-to-use Bus.
func New() *Bus { return &Bus{} }

// Subscribe returns a read-only channel that will receive all future
// snapshots.
func (b *Bus) Subscribe() <-chan sensors.Snapshot {
	ch := make(chan sensors.Snapshot, 1) // small buffer avoids blocking
	b.mu.Lock()
	b.subscribers = append(b.subscribers, ch)
	b.mu.Unlock()
	return ch
}

// Publish delivers the snapshot to all subscribers in a best-effort,
// non-blocking way. A subscriber whose buffer is full simply misses this
// snapshot and picks up the next one.
func (b *Bus) Publish(s sensors.Snapshot) {
	b.mu.RLock()
	subs := make([]chan sensors.Snapshot, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- s:
		default:
			continue
		}
	}
}

// Unsubscribe removes a channel previously returned by Subscribe and closes
// it. Unknown channels are ignored.
func (b *Bus) Unsubscribe(ch <-chan sensors.Snapshot) {
	b.mu.Lock()
	for i, sub := range b.subscribers {
		if sub == ch {
			// remove without preserving order
			b.subscribers[i] = b.subscribers[len(b.subscribers)-1]
			b.subscribers = b.subscribers[:len(b.subscribers)-1]
			close(sub)
			break
		}
	}
	b.mu.Unlock()
}
