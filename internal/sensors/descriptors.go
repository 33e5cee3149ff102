package sensors

// Attribute names published alongside the overall AQI sensor.
const (
	AttrDescription = "description"
	AttrLevel       = "level"
)

// Description fully defines one derived sensor: the snapshot key it reads,
// its Home Assistant presentation metadata and the pure functions that
// extract its value and (optionally) extra attributes from a snapshot.
//
// ValueFn returns nil when the key is absent from the snapshot; the sensor
// then reports an unknown state rather than an error. AttributesFn may be
// nil, in which case the sensor publishes no attributes at all.
type Description struct {
	Key            string
	TranslationKey string
	Icon           string
	Unit           string
	StateClass     string
	ValueFn        func(Snapshot) any
	AttributesFn   func(Snapshot) map[string]any
}

// All is the fixed, ordered descriptor table. Keys must be unique; the table
// is never mutated after load.
var All = []Description{
	{
		Key:            KeyAQI,
		TranslationKey: "aqi",
		Icon:           "mdi:blur",
		Unit:           "aqi",
		StateClass:     "measurement",
		ValueFn:        func(data Snapshot) any { return data[KeyAQI] },
		AttributesFn: func(data Snapshot) map[string]any {
			return map[string]any{
				AttrDescription: data[KeyAQIDescription],
				AttrLevel:       data[KeyAQILevel],
			}
		},
	},
	{
		Key:            KeyPM25,
		TranslationKey: "pm25",
		Icon:           "mdi:blur",
		Unit:           "µg/m³",
		StateClass:     "measurement",
		ValueFn:        func(data Snapshot) any { return data[KeyPM25] },
	},
	{
		Key:            KeyO3,
		TranslationKey: "o3",
		Icon:           "mdi:blur",
		Unit:           "ppm",
		StateClass:     "measurement",
		ValueFn:        func(data Snapshot) any { return data[KeyO3] },
	},
}
