package sensors

import "airnow-hass/internal/airnow"

// Snapshot is the coordinator's most recently fetched payload: a read-only
// mapping from field key to raw value. A key that is absent and a key that
// holds nil are equivalent; both render as an unknown sensor state.
type Snapshot map[string]any

// Field keys present in a snapshot. KeyPM25 and KeyO3 match the
// ParameterName strings AirNow uses, so per-pollutant observations land
// under their own names without translation.
const (
	KeyAQI            = "AQI"
	KeyAQIDescription = "AQI_DESCRIPTION"
	KeyAQILevel       = "AQI_LEVEL"
	KeyPM25           = "PM2.5"
	KeyO3             = "O3"
	KeyPollutant      = "POLLUTANT"
	KeyReportingArea  = "REPORTING_AREA"
	KeyStateCode      = "STATE_CODE"
	KeyDateObserved   = "DATE_OBSERVED"
	KeyHourObserved   = "HOUR_OBSERVED"
)

// FromObservations flattens the per-pollutant observations into a single
// snapshot. Each pollutant's AQI is stored under its parameter name, and the
// pollutant with the highest AQI determines the overall AQI, its category
// description/level and the dominant-pollutant field.
func FromObservations(observations []airnow.Observation) Snapshot {
	snap := Snapshot{}

	maxAQI := -1
	var dominant airnow.Observation
	for _, obs := range observations {
		snap[obs.ParameterName] = obs.AQI
		if obs.AQI > maxAQI {
			maxAQI = obs.AQI
			dominant = obs
		}
	}

	if maxAQI < 0 {
		return snap
	}

	snap[KeyAQI] = dominant.AQI
	snap[KeyAQIDescription] = dominant.Category.Name
	snap[KeyAQILevel] = dominant.Category.Number
	snap[KeyPollutant] = dominant.ParameterName
	snap[KeyReportingArea] = dominant.ReportingArea
	snap[KeyStateCode] = dominant.StateCode
	snap[KeyDateObserved] = dominant.DateObserved
	snap[KeyHourObserved] = dominant.HourObserved

	return snap
}
