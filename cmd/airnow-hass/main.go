package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"airnow-hass/internal/airnow"
	"airnow-hass/internal/app"
	"airnow-hass/internal/config"
	"airnow-hass/internal/coordinator"
	"airnow-hass/internal/metrics"
	"airnow-hass/internal/mqtt"
	"airnow-hass/internal/sensors"
	"airnow-hass/internal/transmission"

	"github.com/sirupsen/logrus"
)

// version is injected at build time via ldflags
var version = "dev"

func main() {
	cfg, once := parseFlags()

	logger := setupLogger(cfg.Verbose)

	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	client := airnow.NewClient(cfg.APIKey, logger)
	client.SetTimeout(cfg.GetAPITimeout())
	client.SetDistance(cfg.Distance)

	coord := coordinator.New(client, cfg.Latitude, cfg.Longitude, cfg.PollInterval, logger)
	entities := sensors.Setup(coord)

	// One-shot path ---------------------------------------------------------
	if once {
		runOnce(coord, entities, logger)
		return
	}

	logger.WithFields(logrus.Fields{
		"version":   version,
		"device_id": cfg.DeviceID,
		"latitude":  cfg.Latitude,
		"longitude": cfg.Longitude,
		"poll":      cfg.PollInterval,
		"mqtt_int":  cfg.MQTTInterval,
	}).Info("Starting airnow-hass")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Info("Shutdown signal received")
		cancel()
	}()

	// Transmitter -----------------------------------------------------------
	var mqttTx *transmission.MQTTTransmitter
	if cfg.HasMQTT() {
		mqttClient, err := mqtt.NewClient(cfg.MQTTUrl, cfg.DeviceID, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create MQTT client")
		}
		defer mqttClient.Disconnect(250)
		mqttTx = transmission.NewMQTTTransmitter(mqttClient, entities, cfg.DeviceID, cfg.DiscoveryPrefix, logger)
		logger.Info("MQTT transmitter ready")
	} else {
		logger.Warn("No MQTT URL configured; data is only served over HTTP")
	}

	exporter := metrics.NewExporter()

	app.Run(ctx, cfg, coord, entities, mqttTx, exporter, logger)

	logger.Info("airnow-hass stopped")
}

// -----------------------------------------------------------------------------
// Helpers & Flags
// -----------------------------------------------------------------------------

func parseFlags() (*config.Config, bool) {
	cfg := config.GetDefaultConfig()

	showVersion := flag.Bool("version", false, "Show version and exit")
	once := flag.Bool("once", false, "Fetch a single snapshot, print it as JSON and exit")

	flag.StringVar(&cfg.APIKey, "api-key", getEnv("AIRNOW_HASS_API_KEY", cfg.APIKey), "AirNow API key")
	flag.Float64Var(&cfg.Latitude, "latitude", getEnvFloat("AIRNOW_HASS_LATITUDE", cfg.Latitude), "Latitude")
	flag.Float64Var(&cfg.Longitude, "longitude", getEnvFloat("AIRNOW_HASS_LONGITUDE", cfg.Longitude), "Longitude")
	flag.IntVar(&cfg.Distance, "distance", cfg.Distance, "Search radius in miles")
	flag.StringVar(&cfg.MQTTUrl, "mqtt-url", getEnv("AIRNOW_HASS_MQTT_URL", cfg.MQTTUrl), "MQTT URL")
	flag.StringVar(&cfg.DiscoveryPrefix, "discovery-prefix", getEnv("AIRNOW_HASS_DISCOVERY_PREFIX", cfg.DiscoveryPrefix), "HA discovery prefix")
	flag.StringVar(&cfg.DeviceID, "device-id", getEnv("AIRNOW_HASS_DEVICE_ID", cfg.DeviceID), "Device identifier")
	flag.StringVar(&cfg.ListenAddr, "listen-address", getEnv("AIRNOW_HASS_LISTEN_ADDR", cfg.ListenAddr), "Address for state and metrics endpoints")
	flag.BoolVar(&cfg.Verbose, "verbose", getEnv("AIRNOW_HASS_VERBOSE", "false") == "true", "Verbose logging")

	pollIntervalStr := flag.String("poll-interval", getEnv("AIRNOW_HASS_POLL_INTERVAL", ""), "AirNow poll interval (e.g. 10m)")
	mqttIntervalStr := flag.String("mqtt-interval", getEnv("AIRNOW_HASS_MQTT_INTERVAL", ""), "MQTT interval (e.g. 60s)")

	flag.Parse()

	if *showVersion {
		fmt.Printf("airnow-hass %s\n", version)
		os.Exit(0)
	}

	// Duration overrides
	if *pollIntervalStr != "" {
		if d, err := time.ParseDuration(*pollIntervalStr); err == nil && d > 0 {
			cfg.PollInterval = d
		}
	}
	if *mqttIntervalStr != "" {
		if d, err := time.ParseDuration(*mqttIntervalStr); err == nil && d > 0 {
			cfg.MQTTInterval = d
		}
	}

	return cfg, *once
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func setupLogger(verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}

// runOnce fetches one snapshot and prints every entity's state, for quick
// API-key and coordinate checks without a broker.
func runOnce(coord *coordinator.Coordinator, entities []*sensors.Sensor, logger *logrus.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := coord.Refresh(ctx); err != nil {
		logger.WithError(err).Fatal("Refresh failed")
	}

	out := make(map[string]any, len(entities))
	for _, entity := range entities {
		state := map[string]any{
			"unique_id": entity.UniqueID(),
			"value":     entity.NativeValue(),
		}
		if attrs := entity.ExtraStateAttributes(); attrs != nil {
			state["attributes"] = attrs
		}
		out[entity.Description().Key] = state
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		logger.WithError(err).Fatal("Failed to encode snapshot")
	}
	fmt.Println(string(encoded))
}
