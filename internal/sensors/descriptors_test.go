package sensors

import (
	"reflect"
	"testing"
)

func TestDescriptorKeysUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, desc := range All {
		if seen[desc.Key] {
			t.Errorf("duplicate descriptor key %q", desc.Key)
		}
		seen[desc.Key] = true
	}
}

func TestValueFnMissingKeyYieldsNil(t *testing.T) {
	empty := Snapshot{}
	for _, desc := range All {
		if got := desc.ValueFn(empty); got != nil {
			t.Errorf("%s: ValueFn on empty snapshot = %v, want nil", desc.Key, got)
		}
	}
}

func TestValueFnNilValueEqualsMissing(t *testing.T) {
	// A key that is present but nil behaves exactly like an absent key.
	snap := Snapshot{KeyAQI: nil}
	for _, desc := range All {
		if got := desc.ValueFn(snap); got != nil {
			t.Errorf("%s: ValueFn = %v, want nil", desc.Key, got)
		}
	}
}

func TestAQIAttributes(t *testing.T) {
	snap := Snapshot{
		KeyAQIDescription: "Good",
		KeyAQILevel:       1,
	}

	aqi := descriptionByKey(t, KeyAQI)
	got := aqi.AttributesFn(snap)
	want := map[string]any{
		AttrDescription: "Good",
		AttrLevel:       1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AQI attributes = %v, want %v", got, want)
	}
}

func TestPM25AndO3HaveNoAttributes(t *testing.T) {
	for _, key := range []string{KeyPM25, KeyO3} {
		if desc := descriptionByKey(t, key); desc.AttributesFn != nil {
			t.Errorf("%s: AttributesFn should be absent", key)
		}
	}
}

func TestModerateScenario(t *testing.T) {
	snap := Snapshot{
		KeyAQI:            42,
		KeyAQIDescription: "Moderate",
		KeyAQILevel:       2,
	}

	aqi := descriptionByKey(t, KeyAQI)
	if got := aqi.ValueFn(snap); got != 42 {
		t.Errorf("AQI value = %v, want 42", got)
	}
	wantAttrs := map[string]any{AttrDescription: "Moderate", AttrLevel: 2}
	if got := aqi.AttributesFn(snap); !reflect.DeepEqual(got, wantAttrs) {
		t.Errorf("AQI attributes = %v, want %v", got, wantAttrs)
	}

	pm25 := descriptionByKey(t, KeyPM25)
	if got := pm25.ValueFn(snap); got != nil {
		t.Errorf("PM2.5 value = %v, want nil (key absent)", got)
	}
}

func descriptionByKey(t *testing.T, key string) Description {
	t.Helper()
	for _, desc := range All {
		if desc.Key == key {
			return desc
		}
	}
	t.Fatalf("no descriptor with key %q", key)
	return Description{}
}
