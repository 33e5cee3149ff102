package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := GetDefaultConfig()
	cfg.APIKey = "test-key"
	cfg.Latitude = 40.0
	cfg.Longitude = -75.0
	return cfg
}

func TestValidateAcceptsDefaultsWithKey(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestValidateCoordinateRanges(t *testing.T) {
	cfg := validConfig()
	cfg.Latitude = 91
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for latitude out of range")
	}

	cfg = validConfig()
	cfg.Longitude = -200
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for longitude out of range")
	}
}

func TestValidateMQTTScheme(t *testing.T) {
	for _, url := range []string{"mqtt://broker:1883", "mqtts://broker:8883", "ws://broker/mqtt", "wss://broker/mqtt"} {
		cfg := validConfig()
		cfg.MQTTUrl = url
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate(%q): %v", url, err)
		}
	}

	cfg := validConfig()
	cfg.MQTTUrl = "http://broker"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unsupported MQTT scheme")
	}
}

func TestValidateRepairsBadDurations(t *testing.T) {
	cfg := validConfig()
	cfg.APITimeout = -1
	cfg.PollInterval = 0
	cfg.MQTTInterval = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.GetAPITimeout() != 10*time.Second {
		t.Errorf("APITimeout = %v, want 10s", cfg.GetAPITimeout())
	}
	if cfg.PollInterval != AirNowPollInterval {
		t.Errorf("PollInterval = %v, want %v", cfg.PollInterval, AirNowPollInterval)
	}
	if cfg.MQTTInterval != MQTTTransmitInterval {
		t.Errorf("MQTTInterval = %v, want %v", cfg.MQTTInterval, MQTTTransmitInterval)
	}
}

func TestHasMQTT(t *testing.T) {
	cfg := validConfig()
	if cfg.HasMQTT() {
		t.Error("HasMQTT should be false without a URL")
	}
	cfg.MQTTUrl = "mqtt://broker:1883"
	if !cfg.HasMQTT() {
		t.Error("HasMQTT should be true with a URL")
	}
}
