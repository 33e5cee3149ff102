package airnow

// Category is the EPA AQI category an observation falls into.
// Number runs from 1 (Good) to 6 (Hazardous).
type Category struct {
	Number int    `json:"Number"`
	Name   string `json:"Name"`
}

// Observation is a single pollutant reading as returned by the AirNow
// current-observations endpoint. AirNow reports one observation per
// pollutant (O3, PM2.5, PM10) for the reporting area nearest to the
// requested coordinates.
type Observation struct {
	DateObserved  string   `json:"DateObserved"`
	HourObserved  int      `json:"HourObserved"`
	LocalTimeZone string   `json:"LocalTimeZone"`
	ReportingArea string   `json:"ReportingArea"`
	StateCode     string   `json:"StateCode"`
	Latitude      float64  `json:"Latitude"`
	Longitude     float64  `json:"Longitude"`
	ParameterName string   `json:"ParameterName"`
	AQI           int      `json:"AQI"`
	Category      Category `json:"Category"`
}
