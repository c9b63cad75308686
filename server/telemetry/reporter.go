package telemetry

import (
	"github.com/google/uuid"
)

// Reporter is the fire-and-forget error reporting collaborator.
// Callers hand over a triggering error, a short context string, and
// whatever metadata helps diagnose it; a Reporter never returns and
// must never panic out to its caller.
type Reporter interface {
	Report(err error, context string, metadata map[string]any)
}

type logReporter struct{}

// NewReporter returns a Reporter that logs through zap and counts
// reports in Prometheus.
func NewReporter() Reporter {
	return logReporter{}
}

func (logReporter) Report(err error, context string, metadata map[string]any) {
	defer func() {
		_ = recover()
	}()
	fields := []any{"report_id", uuid.NewString(), "error", err}
	for k, v := range metadata {
		fields = append(fields, k, v)
	}
	logger.Errorw(context, fields...)
	reports.WithLabelValues(context).Inc()
}
