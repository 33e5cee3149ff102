package transmission

import (
	"encoding/json"
	"reflect"
	"testing"

	"airnow-hass/internal/sensors"
)

type fakeSource struct {
	data sensors.Snapshot
}

func (f *fakeSource) Data() sensors.Snapshot { return f.data }
func (f *fakeSource) Latitude() float64      { return 40.0 }
func (f *fakeSource) Longitude() float64     { return -75.0 }

func TestEntityID(t *testing.T) {
	cases := map[string]string{
		"AQI":   "aqi",
		"PM2.5": "pm2_5",
		"O3":    "o3",
	}
	for key, want := range cases {
		if got := EntityID(key); got != want {
			t.Errorf("EntityID(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestBuildStatePayload(t *testing.T) {
	source := &fakeSource{data: sensors.Snapshot{
		sensors.KeyAQI:            62,
		sensors.KeyPM25:           62,
		sensors.KeyAQIDescription: "Moderate",
		sensors.KeyAQILevel:       2,
	}}
	entities := sensors.Setup(source)

	payload, err := BuildStatePayload(entities)
	if err != nil {
		t.Fatalf("BuildStatePayload: %v", err)
	}

	var state map[string]any
	if err := json.Unmarshal(payload, &state); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	want := map[string]any{
		"aqi":   float64(62),
		"pm2_5": float64(62),
	}
	if !reflect.DeepEqual(state, want) {
		t.Errorf("state payload = %v, want %v", state, want)
	}

	// O3 is absent from the snapshot, so it must be omitted entirely; its
	// value template renders the unknown fallback.
	if _, ok := state["o3"]; ok {
		t.Error("absent O3 field must not appear in the state payload")
	}
}

func TestBuildStatePayloadEmptySnapshot(t *testing.T) {
	entities := sensors.Setup(&fakeSource{data: sensors.Snapshot{}})

	payload, err := BuildStatePayload(entities)
	if err != nil {
		t.Fatalf("BuildStatePayload: %v", err)
	}
	if string(payload) != "{}" {
		t.Errorf("payload = %s, want {}", payload)
	}
}
