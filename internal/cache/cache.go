package cache

import (
	"reflect"
	"sync"

	"airnow-hass/internal/sensors"
)

// Manager keeps a single previous snapshot and answers the question: "has
// anything changed since the last time I asked?". It is concurrency-safe for
// the read-then-write pattern used by the scheduler.
//
// Behaviour:
//   - The first call to Changed() always returns true and stores the snapshot.
//   - The stored snapshot is replaced only when a difference is detected.
//   - Reset() forgets the stored snapshot so the next call reports a change,
//     which the scheduler uses to force a retry after a failed transmit.
type Manager struct {
	mu   sync.Mutex
	prev sensors.Snapshot
}

// NewManager returns a ready-to-use cache manager.
func NewManager() *Manager {
	return &Manager{}
}

// Changed compares the supplied snapshot against the previously stored one.
// If a change is detected it updates the stored snapshot and returns true.
func (m *Manager) Changed(cur sensors.Snapshot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.prev == nil {
		m.prev = clone(cur)
		return true
	}

	if !reflect.DeepEqual(m.prev, cur) {
		m.prev = clone(cur)
		return true
	}
	return false
}

// Reset forgets the stored snapshot.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.prev = nil
	m.mu.Unlock()
}

// clone copies the snapshot map so later mutations by the producer cannot
// corrupt the comparison baseline.
func clone(src sensors.Snapshot) sensors.Snapshot {
	dst := make(sensors.Snapshot, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
