package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all configuration options for the airnow-hass bridge.
type Config struct {
	// AirNow API
	APIKey    string  `json:"api_key"`   // AirNow API key (airnowapi.org)
	Latitude  float64 `json:"latitude"`  // Coordinates observations are requested for
	Longitude float64 `json:"longitude"` //
	Distance  int     `json:"distance"`  // Search radius in miles

	// MQTT
	MQTTUrl         string `json:"mqtt_url"`         // MQTT URL (supports both WebSocket and standard MQTT)
	DiscoveryPrefix string `json:"discovery_prefix"` // Home Assistant discovery prefix

	// HTTP
	ListenAddr string `json:"listen_addr"` // Address for the state + metrics endpoints

	// Application
	DeviceID string `json:"device_id"` // Unique device identifier
	Verbose  bool   `json:"verbose"`   // Enable verbose logging

	PollInterval time.Duration `json:"poll_interval"` // AirNow poll cadence
	MQTTInterval time.Duration `json:"mqtt_interval"` // Minimum gap between MQTT transmits
	APITimeout   int           `json:"api_timeout"`   // API request timeout in seconds (default: 10)
}

// GetDefaultConfig returns a configuration with sensible defaults.
func GetDefaultConfig() *Config {
	return &Config{
		Distance:        50,
		DiscoveryPrefix: "homeassistant",
		ListenAddr:      ":8080",
		DeviceID:        "airnow",
		Verbose:         false,
		PollInterval:    AirNowPollInterval,
		MQTTInterval:    MQTTTransmitInterval,
		APITimeout:      10,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("AirNow API key is required")
	}
	if c.DeviceID == "" {
		return fmt.Errorf("device ID is required")
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Longitude)
	}

	// MQTT validation - support both WebSocket and standard MQTT protocols
	if c.MQTTUrl != "" {
		if !strings.HasPrefix(c.MQTTUrl, "ws://") &&
			!strings.HasPrefix(c.MQTTUrl, "wss://") &&
			!strings.HasPrefix(c.MQTTUrl, "mqtt://") &&
			!strings.HasPrefix(c.MQTTUrl, "mqtts://") {
			return fmt.Errorf("MQTT URL must use supported protocol (ws://, wss://, mqtt://, or mqtts://)")
		}
	}

	// Set defaults for invalid values
	if c.APITimeout <= 0 {
		c.APITimeout = 10
	}
	if c.Distance <= 0 {
		c.Distance = 50
	}
	if c.PollInterval <= 0 {
		c.PollInterval = AirNowPollInterval
	}
	if c.MQTTInterval <= 0 {
		c.MQTTInterval = MQTTTransmitInterval
	}

	return nil
}

// HasMQTT returns true if MQTT is configured.
func (c *Config) HasMQTT() bool {
	return c.MQTTUrl != ""
}

// GetAPITimeout returns the API timeout as a duration.
func (c *Config) GetAPITimeout() time.Duration {
	return time.Duration(c.APITimeout) * time.Second
}
