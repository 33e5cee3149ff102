package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"airnow-hass/internal/airnow"
	"airnow-hass/internal/bus"
	"airnow-hass/internal/sensors"

	"github.com/sirupsen/logrus"
)

// Coordinator owns the AirNow poll loop and the last fetched snapshot.
// Consumers read the snapshot through Data() and get change notifications
// through Subscribe(); they never trigger fetches themselves, so a single
// coordinator serves any number of sensors without overlapping requests.
type Coordinator struct {
	client    *airnow.Client
	latitude  float64
	longitude float64
	interval  time.Duration
	logger    *logrus.Logger
	bus       *bus.Bus

	mu          sync.RWMutex
	data        sensors.Snapshot
	lastRefresh time.Time
}

// New creates a coordinator for the given coordinates. Run must be called to
// start polling.
func New(client *airnow.Client, latitude, longitude float64, interval time.Duration, logger *logrus.Logger) *Coordinator {
	return &Coordinator{
		client:    client,
		latitude:  latitude,
		longitude: longitude,
		interval:  interval,
		logger:    logger,
		bus:       bus.New(),
	}
}

// Latitude returns the coordinate the coordinator polls for.
func (c *Coordinator) Latitude() float64 { return c.latitude }

// Longitude returns the coordinate the coordinator polls for.
func (c *Coordinator) Longitude() float64 { return c.longitude }

// Data returns the last fetched snapshot. It is nil until the first
// successful refresh; sensors render that as unknown.
func (c *Coordinator) Data() sensors.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data
}

// LastRefresh returns when the snapshot was last replaced.
func (c *Coordinator) LastRefresh() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRefresh
}

// Subscribe returns a channel receiving every future snapshot.
func (c *Coordinator) Subscribe() <-chan sensors.Snapshot {
	return c.bus.Subscribe()
}

// Refresh fetches current observations, replaces the stored snapshot and
// notifies subscribers. The previous snapshot stays in place when the fetch
// fails.
func (c *Coordinator) Refresh(ctx context.Context) error {
	observations, err := c.client.Observations(ctx, c.latitude, c.longitude)
	if err != nil {
		return fmt.Errorf("AirNow refresh failed: %w", err)
	}

	snap := sensors.FromObservations(observations)

	c.mu.Lock()
	c.data = snap
	c.lastRefresh = time.Now()
	c.mu.Unlock()

	c.logger.WithField("fields", len(snap)).Debug("Coordinator snapshot updated")
	c.bus.Publish(snap)
	return nil
}

// Run refreshes immediately and then on every interval tick until ctx is
// cancelled. Failed refreshes are logged and retried on the next tick.
func (c *Coordinator) Run(ctx context.Context) error {
	if err := c.Refresh(ctx); err != nil {
		c.logger.WithError(err).Warn("coordinator: initial refresh failed")
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				c.logger.WithError(err).Warn("coordinator: refresh failed")
			}
		}
	}
}
