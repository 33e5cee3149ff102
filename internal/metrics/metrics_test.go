package metrics

import (
	"testing"

	"airnow-hass/internal/sensors"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestUpdateSetsGauges(t *testing.T) {
	e := NewExporter()

	e.Update(sensors.Snapshot{
		sensors.KeyReportingArea: "Philadelphia",
		sensors.KeyAQI:           62,
		sensors.KeyAQILevel:      2,
		sensors.KeyPM25:          62,
		sensors.KeyO3:            39,
	})

	if got := testutil.ToFloat64(e.gaugeAQI.WithLabelValues("Philadelphia")); got != 62 {
		t.Errorf("airnow_aqi = %v, want 62", got)
	}
	if got := testutil.ToFloat64(e.gaugeAQILevel.WithLabelValues("Philadelphia")); got != 2 {
		t.Errorf("airnow_aqi_level = %v, want 2", got)
	}
	if got := testutil.ToFloat64(e.gaugePM25.WithLabelValues("Philadelphia")); got != 62 {
		t.Errorf("airnow_pm25_aqi = %v, want 62", got)
	}
	if got := testutil.ToFloat64(e.gaugeO3.WithLabelValues("Philadelphia")); got != 39 {
		t.Errorf("airnow_o3_aqi = %v, want 39", got)
	}
}

func TestUpdateSkipsAbsentFields(t *testing.T) {
	e := NewExporter()

	e.Update(sensors.Snapshot{
		sensors.KeyReportingArea: "Philadelphia",
		sensors.KeyAQI:           62,
	})

	// Only the overall AQI gauge has a series; the others stay empty.
	if got := testutil.CollectAndCount(e.gaugeO3); got != 0 {
		t.Errorf("airnow_o3_aqi series = %d, want 0", got)
	}
	if got := testutil.CollectAndCount(e.gaugeAQI); got != 1 {
		t.Errorf("airnow_aqi series = %d, want 1", got)
	}
}
