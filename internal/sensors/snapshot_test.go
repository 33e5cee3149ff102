package sensors

import (
	"testing"

	"airnow-hass/internal/airnow"
)

func TestFromObservations(t *testing.T) {
	observations := []airnow.Observation{
		{
			ParameterName: "O3",
			AQI:           39,
			Category:      airnow.Category{Number: 1, Name: "Good"},
			ReportingArea: "Philadelphia",
			StateCode:     "PA",
			DateObserved:  "2026-08-25",
			HourObserved:  14,
		},
		{
			ParameterName: "PM2.5",
			AQI:           62,
			Category:      airnow.Category{Number: 2, Name: "Moderate"},
			ReportingArea: "Philadelphia",
			StateCode:     "PA",
			DateObserved:  "2026-08-25",
			HourObserved:  14,
		},
	}

	snap := FromObservations(observations)

	if got := snap[KeyO3]; got != 39 {
		t.Errorf("O3 = %v, want 39", got)
	}
	if got := snap[KeyPM25]; got != 62 {
		t.Errorf("PM2.5 = %v, want 62", got)
	}

	// Overall AQI follows the worst pollutant.
	if got := snap[KeyAQI]; got != 62 {
		t.Errorf("AQI = %v, want 62", got)
	}
	if got := snap[KeyAQIDescription]; got != "Moderate" {
		t.Errorf("AQI description = %v, want Moderate", got)
	}
	if got := snap[KeyAQILevel]; got != 2 {
		t.Errorf("AQI level = %v, want 2", got)
	}
	if got := snap[KeyPollutant]; got != "PM2.5" {
		t.Errorf("pollutant = %v, want PM2.5", got)
	}
	if got := snap[KeyReportingArea]; got != "Philadelphia" {
		t.Errorf("reporting area = %v, want Philadelphia", got)
	}
}

func TestFromObservationsEmpty(t *testing.T) {
	snap := FromObservations(nil)
	if len(snap) != 0 {
		t.Errorf("snapshot from no observations = %v, want empty", snap)
	}
	if got := snap[KeyAQI]; got != nil {
		t.Errorf("AQI = %v, want nil", got)
	}
}
