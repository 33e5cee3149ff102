package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"airnow-hass/internal/coordinator"
	"airnow-hass/internal/sensors"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

type sensorState struct {
	UniqueID   string         `json:"unique_id"`
	Value      any            `json:"value"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

type stateResponse struct {
	ReportingArea any                    `json:"reporting_area"`
	LastRefreshed time.Time              `json:"last_refreshed"`
	Sensors       map[string]sensorState `json:"sensors"`
}

// State serves the current entity states as JSON. Values are read through
// the entity accessors on every request, so the response always reflects the
// coordinator's latest snapshot.
func State(coord *coordinator.Coordinator, entities []*sensors.Sensor, logger *logrus.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		resp := stateResponse{
			ReportingArea: coord.Data()[sensors.KeyReportingArea],
			LastRefreshed: coord.LastRefresh(),
			Sensors:       make(map[string]sensorState, len(entities)),
		}

		for _, entity := range entities {
			resp.Sensors[entity.Description().Key] = sensorState{
				UniqueID:   entity.UniqueID(),
				Value:      entity.NativeValue(),
				Attributes: entity.ExtraStateAttributes(),
			}
		}

		marshaled, err := json.Marshal(resp)
		if err != nil {
			logger.WithError(err).Error("Failed to marshal state response")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(marshaled)
	}
}
