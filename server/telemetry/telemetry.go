// Logging, counters, and error reporting for fleetboard.
// Log output goes through zap; counters are exported to Prometheus
// and served by the gateway's /metrics endpoint.
package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var logger *zap.SugaredLogger

var (
	events = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fleetboard",
		Name:      "events_total",
		Help:      "Count of named internal events.",
	}, []string{"event"})

	reports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fleetboard",
		Name:      "reports_total",
		Help:      "Count of non-fatal error reports by context.",
	}, []string{"context"})
)

// init is called at program startup time to initialize the logger
func init() {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	l, err := cfg.Build(zap.WithCaller(false))
	if err != nil {
		panic(err)
	}
	logger = l.Sugar()
}

func Log(format string, args ...any) {
	logger.Infof(format, args...)
}

func Trace(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Error(err error, format string, args ...any) {
	logger.Errorw(fmt.Sprintf(format, args...), "error", err)
	Increment("errors", 1)
}

// Request logs essential information about an HTTP request
func Request(r *http.Request, format string, args ...any) {
	logger.Infow(fmt.Sprintf(format, args...), "method", r.Method, "url", r.URL.String())
}

// Increment increases a named counter, thread-safe
func Increment(name string, n int) {
	events.WithLabelValues(name).Add(float64(n))
}

// Handler serves the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
