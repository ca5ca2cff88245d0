// Package metrics defines the server's Prometheus metrics and renders them
// in text exposition format for the hand-rolled /metrics route.
package metrics

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

var (
	// RequestsTotal tracks handled requests by method and response status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total handled requests by method and status",
		},
		[]string{"method", "status"},
	)

	// RequestDuration tracks request handling latency in seconds.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request handling duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method"},
	)

	// SessionsCreated counts sessions minted by signup and login.
	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_created_total",
			Help: "Total sessions created",
		},
	)

	// SessionsDeleted counts explicit logouts that removed a session.
	SessionsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_deleted_total",
			Help: "Total sessions explicitly deleted",
		},
	)
)

// ObserveRequest records one handled request.
func ObserveRequest(method string, status int, duration time.Duration) {
	RequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// Render gathers the default registry into Prometheus text exposition format.
func Render() ([]byte, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return nil, fmt.Errorf("failed to encode metric family: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// ContentType is the exposition format's content type.
const ContentType = "text/plain; version=0.0.4; charset=utf-8"
