// Package admin holds the typed portal services for the rental
// platform's admin API: user management, beta tester approval,
// fleet metrics, system health, and the merged activity feed.
// Each service is a thin wrapper mapping one REST endpoint to a
// typed request/response shape.
package admin

import (
	"time"

	"github.com/karlseguin/ccache/v3"
	"github.com/movaro/fleetboard/server/api"
	"github.com/movaro/fleetboard/server/rest"
	"github.com/movaro/fleetboard/server/telemetry"
)

const defaultCacheTTL = 15 * time.Second

type Portal struct {
	rc       *rest.Client
	reporter telemetry.Reporter

	// short-lived read caches for the expensive dashboard queries
	feed  *ccache.Cache[api.ActivityPage]
	stats *ccache.Cache[api.DashboardStats]
	ttl   time.Duration
}

// NewPortal wires a portal over the given client. The reporter
// receives non-fatal diagnostics; nil selects the default logging one.
func NewPortal(rc *rest.Client, reporter telemetry.Reporter, cacheTTL time.Duration) *Portal {
	if reporter == nil {
		reporter = telemetry.NewReporter()
	}
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &Portal{
		rc:       rc,
		reporter: reporter,
		feed:     ccache.New(ccache.Configure[api.ActivityPage]()),
		stats:    ccache.New(ccache.Configure[api.DashboardStats]()),
		ttl:      cacheTTL,
	}
}

// report forwards a diagnostic to the reporter. The reporter is
// fire-and-forget; a broken one must never take the caller down.
func (p *Portal) report(err error, context string, metadata map[string]any) {
	defer func() {
		_ = recover()
	}()
	p.reporter.Report(err, context, metadata)
}
