package bus

import (
	"testing"
	"time"

	"airnow-hass/internal/sensors"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := New()
	first := b.Subscribe()
	second := b.Subscribe()

	snap := sensors.Snapshot{"AQI": 42}
	b.Publish(snap)

	for i, sub := range []<-chan sensors.Snapshot{first, second} {
		select {
		case got := <-sub:
			if got["AQI"] != 42 {
				t.Errorf("subscriber %d received %v", i, got)
			}
		case <-time.After(time.Second):
			t.Errorf("subscriber %d did not receive the snapshot", i)
		}
	}
}

func TestPublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	b := New()
	b.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		b.Publish(sensors.Snapshot{"AQI": 1})
		b.Publish(sensors.Snapshot{"AQI": 2})
		b.Publish(sensors.Snapshot{"AQI": 3})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("Publish blocked on a full subscriber")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Unsubscribe(sub)

	select {
	case _, ok := <-sub:
		if ok {
			t.Error("expected closed channel after Unsubscribe")
		}
	case <-time.After(time.Second):
		t.Error("channel not closed after Unsubscribe")
	}

	// Publishing after unsubscribe must not panic on the closed channel.
	b.Publish(sensors.Snapshot{"AQI": 42})
}
