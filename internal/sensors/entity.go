package sensors

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Domain prefixes device identifiers so entities from this bridge never
	// collide with other integrations on the same broker.
	Domain = "airnow"

	// DefaultName is the manufacturer/name string all sensors are attributed to.
	DefaultName = "AirNow"
)

// DataSource is the coordinator surface the sensors read through: the latest
// snapshot plus the coordinates the data was requested for. Sensors hold a
// non-owning reference and never cache values themselves.
type DataSource interface {
	Data() Snapshot
	Latitude() float64
	Longitude() float64
}

// DeviceInfo groups all sensors built from one coordinator under a single
// logical device in the host.
type DeviceInfo struct {
	Identifiers  []string
	Manufacturer string
	Name         string
}

// Sensor binds one descriptor to one coordinator. All reads delegate to the
// descriptor's extraction functions against the coordinator's current data.
type Sensor struct {
	source   DataSource
	desc     Description
	uniqueID string
	device   DeviceInfo
}

// New creates a sensor for the given descriptor. The unique ID is derived
// from the coordinator coordinates and the lowercased descriptor key, so it
// stays stable across restarts.
func New(source DataSource, desc Description) *Sensor {
	lat := formatCoordinate(source.Latitude())
	lon := formatCoordinate(source.Longitude())

	return &Sensor{
		source:   source,
		desc:     desc,
		uniqueID: fmt.Sprintf("%s-%s-%s", lat, lon, strings.ToLower(desc.Key)),
		device: DeviceInfo{
			Identifiers:  []string{fmt.Sprintf("%s_%s-%s", Domain, lat, lon)},
			Manufacturer: DefaultName,
			Name:         DefaultName,
		},
	}
}

// Setup builds one sensor per descriptor in the table, all bound to the same
// data source.
func Setup(source DataSource) []*Sensor {
	entities := make([]*Sensor, 0, len(All))
	for _, desc := range All {
		entities = append(entities, New(source, desc))
	}
	return entities
}

// UniqueID returns the stable entity identifier.
func (s *Sensor) UniqueID() string { return s.uniqueID }

// Device returns the shared device identity for this sensor's coordinator.
func (s *Sensor) Device() DeviceInfo { return s.device }

// Description returns the descriptor this sensor was built from.
func (s *Sensor) Description() Description { return s.desc }

// NativeValue returns the current sensor value, or nil when the field is
// absent from the snapshot.
func (s *Sensor) NativeValue() any {
	return s.desc.ValueFn(s.source.Data())
}

// ExtraStateAttributes returns the sensor's attribute mapping, or nil when
// the descriptor defines none.
func (s *Sensor) ExtraStateAttributes() map[string]any {
	if s.desc.AttributesFn == nil {
		return nil
	}
	return s.desc.AttributesFn(s.source.Data())
}

// formatCoordinate renders a coordinate the way it appears in entity IDs:
// shortest decimal form, always with a fractional part (40.0, not 40).
func formatCoordinate(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
