package config

import "time"

// Central place for all application-wide timing constants and other defaults.
// Changing a value here immediately affects all components that import
// airnow-hass/internal/config.

const (
	// Polling / transmission intervals. AirNow publishes hourly
	// observations, so polling much faster than this only burns API quota.
	AirNowPollInterval   = 10 * time.Minute
	MQTTTransmitInterval = 60 * time.Second

	// Operation time-outs (to avoid blocking goroutines)
	AirNowTimeout = 10 * time.Second // AirNow API call
	MQTTTimeout   = 5 * time.Second  // MQTT publish

	// ParallelUpdates caps how many per-entity publishes may be in flight at
	// once. The AirNow API serves every entity from one shared snapshot, so
	// there is nothing to gain from concurrent updates.
	ParallelUpdates = 1
)
