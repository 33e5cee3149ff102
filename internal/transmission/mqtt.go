package transmission

import (
	"encoding/json"
	"fmt"
	"strings"

	"airnow-hass/internal/config"
	"airnow-hass/internal/mqtt"
	"airnow-hass/internal/sensors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// MQTTTransmitter exposes the sensor entities to Home Assistant: it
// publishes one MQTT discovery config per entity and then mirrors each
// entity's value and attributes on every transmit. It is the "host" side of
// the entity contract; all state comes from the entities' read accessors.
type MQTTTransmitter struct {
	client           *mqtt.Client
	entities         []*sensors.Sensor
	deviceID         string
	discoveryPrefix  string
	logger           *logrus.Logger
	publishedSensors map[string]bool // Tracks published discovery configs
}

// HADiscoveryConfig represents Home Assistant MQTT discovery configuration.
type HADiscoveryConfig struct {
	Name                string   `json:"name"`
	UniqueID            string   `json:"unique_id"`
	StateTopic          string   `json:"state_topic"`
	ValueTemplate       string   `json:"value_template,omitempty"`
	UnitOfMeasurement   string   `json:"unit_of_measurement,omitempty"`
	Icon                string   `json:"icon,omitempty"`
	StateClass          string   `json:"state_class,omitempty"`
	JSONAttributesTopic string   `json:"json_attributes_topic,omitempty"`
	AvailabilityTopic   string   `json:"availability_topic"`
	Device              HADevice `json:"device"`
}

// HADevice represents the device information for Home Assistant. Every
// entity carries the same device block so the host groups them under one
// logical device.
type HADevice struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Model        string   `json:"model"`
	Manufacturer string   `json:"manufacturer"`
	SWVersion    string   `json:"sw_version,omitempty"`
}

// NewMQTTTransmitter creates a new MQTT transmitter for the given entities.
func NewMQTTTransmitter(client *mqtt.Client, entities []*sensors.Sensor, deviceID, discoveryPrefix string, logger *logrus.Logger) *MQTTTransmitter {
	return &MQTTTransmitter{
		client:           client,
		entities:         entities,
		deviceID:         deviceID,
		discoveryPrefix:  discoveryPrefix,
		logger:           logger,
		publishedSensors: make(map[string]bool),
	}
}

// EntityID converts a descriptor key into an MQTT/Home-Assistant friendly
// object ID ("PM2.5" -> "pm2_5").
func EntityID(key string) string {
	id := strings.ToLower(key)
	id = strings.ReplaceAll(id, ".", "_")
	id = strings.ReplaceAll(id, " ", "_")
	return id
}

// device builds the shared HA device block. All entities are bound to the
// same coordinator, so the identity of the first one speaks for all.
func (t *MQTTTransmitter) device() HADevice {
	info := t.entities[0].Device()
	return HADevice{
		Identifiers:  info.Identifiers,
		Name:         info.Name,
		Manufacturer: info.Manufacturer,
		Model:        "Air quality service",
	}
}

// attributesTopic returns the per-entity attributes topic.
func (t *MQTTTransmitter) attributesTopic(entity *sensors.Sensor) string {
	return fmt.Sprintf("%s/attributes/%s", t.client.GetBaseTopic(), EntityID(entity.Description().Key))
}

// publishDiscoveryForSensor publishes the discovery config for a single
// entity, once per process lifetime.
func (t *MQTTTransmitter) publishDiscoveryForSensor(entity *sensors.Sensor, device HADevice) error {
	uniqueID := entity.UniqueID()
	if t.publishedSensors[uniqueID] {
		return nil
	}

	desc := entity.Description()
	entityID := EntityID(desc.Key)

	discovery := HADiscoveryConfig{
		Name:       desc.Key,
		UniqueID:   uniqueID,
		StateTopic: t.client.GetStateTopic(),
		// default('unknown') keeps the entity in an unknown state while the
		// field is absent from the snapshot.
		ValueTemplate:     fmt.Sprintf("{{ value_json.%s | default('unknown') }}", entityID),
		UnitOfMeasurement: desc.Unit,
		Icon:              desc.Icon,
		StateClass:        desc.StateClass,
		AvailabilityTopic: t.client.GetAvailabilityTopic(),
		Device:            device,
	}
	if desc.AttributesFn != nil {
		discovery.JSONAttributesTopic = t.attributesTopic(entity)
	}

	topic := fmt.Sprintf("%s/sensor/%s_%s/%s/config",
		t.discoveryPrefix, sensors.Domain, t.deviceID, entityID)

	if err := t.publishConfigRaw(topic, discovery); err != nil {
		return fmt.Errorf("failed to publish %s discovery config: %w", desc.Key, err)
	}

	t.logger.WithFields(logrus.Fields{
		"sensor_key": desc.Key,
		"entity_id":  entityID,
		"topic":      topic,
	}).Info("Published sensor discovery config")

	t.publishedSensors[uniqueID] = true
	return nil
}

// publishDiscoveryConfigs ensures all entities have their discovery configs
// published.
func (t *MQTTTransmitter) publishDiscoveryConfigs() error {
	device := t.device()
	for _, entity := range t.entities {
		if err := t.publishDiscoveryForSensor(entity, device); err != nil {
			t.logger.WithError(err).WithField("sensor", entity.Description().Key).Error("Failed to publish discovery config")
			// Continue to the next entity
		}
	}
	return nil
}

// publishConfigRaw publishes a raw configuration object.
func (t *MQTTTransmitter) publishConfigRaw(topic string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal discovery config: %w", err)
	}

	if err := t.client.Publish(topic, body, true); err != nil {
		return fmt.Errorf("failed to publish discovery config to %s: %w", topic, err)
	}

	return nil
}

// BuildStatePayload builds the JSON payload for the shared state topic from
// the entities' current values. Absent fields are omitted so their value
// templates fall back to unknown.
func BuildStatePayload(entities []*sensors.Sensor) ([]byte, error) {
	state := make(map[string]any, len(entities))
	for _, entity := range entities {
		if value := entity.NativeValue(); value != nil {
			state[EntityID(entity.Description().Key)] = value
		}
	}
	return json.Marshal(state)
}

// Transmit publishes discovery configs, the state payload, per-entity
// attributes and availability.
func (t *MQTTTransmitter) Transmit() error {
	if !t.client.IsConnected() {
		return fmt.Errorf("MQTT client not connected")
	}

	if err := t.publishDiscoveryConfigs(); err != nil {
		// Log error but don't block transmission
		t.logger.WithError(err).Error("Failed to publish Home Assistant discovery configs")
	}

	payload, err := BuildStatePayload(t.entities)
	if err != nil {
		return fmt.Errorf("failed to build state payload: %w", err)
	}
	if err := t.client.Publish(t.client.GetStateTopic(), payload, true); err != nil {
		return fmt.Errorf("failed to publish sensor data: %w", err)
	}

	if err := t.publishAttributes(); err != nil {
		return fmt.Errorf("failed to publish attributes: %w", err)
	}

	if err := t.client.PublishAvailability(true); err != nil {
		return fmt.Errorf("failed to publish availability: %w", err)
	}

	t.logger.WithField("topic", t.client.GetStateTopic()).Debug("Data transmitted successfully")
	return nil
}

// publishAttributes mirrors each entity's attribute mapping onto its own
// topic. Publishes are bounded by config.ParallelUpdates.
func (t *MQTTTransmitter) publishAttributes() error {
	var grp errgroup.Group
	grp.SetLimit(config.ParallelUpdates)

	for _, entity := range t.entities {
		attrs := entity.ExtraStateAttributes()
		if attrs == nil {
			continue
		}
		entity := entity
		body, err := json.Marshal(attrs)
		if err != nil {
			return fmt.Errorf("failed to marshal attributes for %s: %w", entity.Description().Key, err)
		}
		grp.Go(func() error {
			return t.client.Publish(t.attributesTopic(entity), body, true)
		})
	}

	return grp.Wait()
}

// IsConnected checks if the MQTT client is connected.
func (t *MQTTTransmitter) IsConnected() bool {
	return t.client.IsConnected()
}
