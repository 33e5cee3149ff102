package metrics

import (
	"net/http"

	"airnow-hass/internal/sensors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter publishes the latest snapshot as Prometheus gauges, labelled by
// the AirNow reporting area the observations came from.
type Exporter struct {
	registry *prometheus.Registry

	gaugeAQI      *prometheus.GaugeVec
	gaugeAQILevel *prometheus.GaugeVec
	gaugePM25     *prometheus.GaugeVec
	gaugeO3       *prometheus.GaugeVec
}

func newGauge(name string, help string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		[]string{"reporting_area"},
	)
}

// NewExporter creates an exporter with its own registry so tests can gather
// without touching global state.
func NewExporter() *Exporter {
	e := &Exporter{
		registry:      prometheus.NewRegistry(),
		gaugeAQI:      newGauge("airnow_aqi", "Overall Air Quality Index (max across pollutants)"),
		gaugeAQILevel: newGauge("airnow_aqi_level", "AQI category number (1=Good .. 6=Hazardous)"),
		gaugePM25:     newGauge("airnow_pm25_aqi", "AQI contribution of fine particulate matter (PM2.5)"),
		gaugeO3:       newGauge("airnow_o3_aqi", "AQI contribution of ground-level ozone (O3)"),
	}

	e.registry.MustRegister(e.gaugeAQI)
	e.registry.MustRegister(e.gaugeAQILevel)
	e.registry.MustRegister(e.gaugePM25)
	e.registry.MustRegister(e.gaugeO3)
	e.registry.MustRegister(prometheus.NewBuildInfoCollector())

	return e
}

// Update sets the gauges from the given snapshot. Absent fields leave their
// gauges untouched.
func (e *Exporter) Update(snap sensors.Snapshot) {
	area, _ := snap[sensors.KeyReportingArea].(string)

	setIfPresent(e.gaugeAQI, area, snap[sensors.KeyAQI])
	setIfPresent(e.gaugeAQILevel, area, snap[sensors.KeyAQILevel])
	setIfPresent(e.gaugePM25, area, snap[sensors.KeyPM25])
	setIfPresent(e.gaugeO3, area, snap[sensors.KeyO3])
}

// Handler exposes the registered metrics via HTTP.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

func setIfPresent(gauge *prometheus.GaugeVec, area string, value any) {
	if v, ok := toFloat(value); ok {
		gauge.WithLabelValues(area).Set(v)
	}
}

// toFloat accepts the numeric types a snapshot may carry: ints from the API
// models and float64s from decoded JSON.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
