package app

import (
	"context"
	"net/http"
	"time"

	"airnow-hass/internal/cache"
	"airnow-hass/internal/config"
	"airnow-hass/internal/coordinator"
	"airnow-hass/internal/metrics"
	"airnow-hass/internal/routes"
	"airnow-hass/internal/sensors"
	"airnow-hass/internal/transmission"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Run launches the coordinator poll loop, the HTTP endpoints and the MQTT
// scheduler, then blocks until ctx is cancelled.
func Run(
	parentCtx context.Context,
	cfg *config.Config,
	coord *coordinator.Coordinator,
	entities []*sensors.Sensor,
	mqttTx *transmission.MQTTTransmitter,
	exporter *metrics.Exporter,
	logger *logrus.Logger,
) {
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	grp, ctx := errgroup.WithContext(ctx)

	// Coordinator -----------------------------------------------------------
	grp.Go(func() error {
		return coord.Run(ctx)
	})

	// HTTP: state route + Prometheus metrics --------------------------------
	router := httprouter.New()
	router.GET("/state", routes.State(coord, entities, logger))
	router.Handler(http.MethodGet, "/metrics", exporter.Handler())

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: router}
	grp.Go(func() error {
		go func() {
			<-ctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			srv.Shutdown(shutdownCtx)
		}()
		logger.WithField("addr", cfg.ListenAddr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// Scheduler -------------------------------------------------------------
	//
	// Subscribes to coordinator updates, keeps the metrics exporter current
	// and transmits over MQTT when the snapshot changed and the configured
	// interval elapsed.
	sub := coord.Subscribe()
	changes := cache.NewManager()

	grp.Go(func() error {
		var latest sensors.Snapshot
		lastSent := time.Now().Add(-cfg.MQTTInterval)
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case snap, ok := <-sub:
				if !ok {
					return nil
				}
				latest = snap
				exporter.Update(snap)
			case <-ticker.C:
				if latest == nil || mqttTx == nil {
					continue
				}
				now := time.Now()
				if now.Sub(lastSent) < cfg.MQTTInterval {
					continue
				}
				if !changes.Changed(latest) {
					continue
				}
				if err := mqttTx.Transmit(); err != nil {
					logger.WithError(err).Warn("MQTT transmit failed")
					// Forget the stored snapshot so the next tick retries,
					// while still respecting the transmit interval.
					changes.Reset()
					lastSent = now
				} else {
					lastSent = now
				}
			}
		}
	})

	if err := grp.Wait(); err != nil && err != context.Canceled {
		logger.WithError(err).Warn("app: background group exited")
	}
}
