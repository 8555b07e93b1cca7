// ABOUTME: Prometheus metrics for audio output and input capture
// ABOUTME: Counters and gauges plus an optional /metrics endpoint
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Output stream counters.
	audioCallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "enginesound",
		Subsystem: "output",
		Name:      "callbacks_total",
		Help:      "Audio callbacks served by the output stream",
	})

	audioFrames = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "enginesound",
		Subsystem: "output",
		Name:      "frames_total",
		Help:      "Frames written to the output device",
	})

	producerPanics = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "enginesound",
		Subsystem: "output",
		Name:      "producer_panics_total",
		Help:      "Audio callbacks silenced because the producer panicked",
	})

	nullStreams = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "enginesound",
		Subsystem: "output",
		Name:      "null_streams_total",
		Help:      "Times the output degraded to a null stream, by reason",
	}, []string{"reason"})

	// Input capture.
	controlPolls = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "enginesound",
		Subsystem: "control",
		Name:      "polls_total",
		Help:      "Throttle values delivered to the engine",
	})

	throttleValue = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "enginesound",
		Subsystem: "control",
		Name:      "throttle",
		Help:      "Most recent throttle value in [0, 1]",
	})

	engineRPM = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "enginesound",
		Subsystem: "engine",
		Name:      "rpm",
		Help:      "Current engine speed",
	})
)

// OutputObserver records output stream events; it satisfies output.Observer
type OutputObserver struct{}

// Callback counts one audio callback
func (OutputObserver) Callback(frames int) {
	audioCallbacks.Inc()
	audioFrames.Add(float64(frames))
}

// ProducerPanic counts a silenced callback
func (OutputObserver) ProducerPanic() {
	producerPanics.Inc()
}

// NullStream counts a degradation to the null stream
func (OutputObserver) NullStream(reason string) {
	nullStreams.WithLabelValues(reason).Inc()
}

// ObserveThrottle records one poll
func ObserveThrottle(v float64) {
	controlPolls.Inc()
	throttleValue.Set(v)
}

// SetRPM records engine speed
func SetRPM(rpm float64) {
	engineRPM.Set(rpm)
}

// Serve exposes /metrics on addr until ctx is done
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("metrics endpoint listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
