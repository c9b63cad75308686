package admin

import (
	"context"
	"net/url"
	"strconv"

	"github.com/movaro/fleetboard/server/api"
	"github.com/movaro/fleetboard/server/telemetry"
)

func pageQuery(skip, limit int) url.Values {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func (p *Portal) ListVehicles(ctx context.Context, skip, limit int) (api.VehiclePage, error) {
	var page api.VehiclePage
	if err := p.rc.Get(ctx, "/admin/vehicles", pageQuery(skip, limit), &page); err != nil {
		return api.VehiclePage{}, err
	}
	if page.Data == nil {
		page.Data = make([]api.Vehicle, 0)
	}
	return page, nil
}

func (p *Portal) ListReservations(ctx context.Context, skip, limit int) (api.ReservationPage, error) {
	var page api.ReservationPage
	if err := p.rc.Get(ctx, "/admin/reservations", pageQuery(skip, limit), &page); err != nil {
		return api.ReservationPage{}, err
	}
	if page.Data == nil {
		page.Data = make([]api.Reservation, 0)
	}
	return page, nil
}

// DashboardStats returns the aggregate business numbers. Results are
// cached briefly since every dashboard page load asks for them.
func (p *Portal) DashboardStats(ctx context.Context) (api.DashboardStats, error) {
	if item := p.stats.Get("stats"); item != nil && !item.Expired() {
		telemetry.Increment("stats_cache_hits", 1)
		return item.Value(), nil
	}
	var stats api.DashboardStats
	if err := p.rc.Get(ctx, "/admin/dashboard/stats", nil, &stats); err != nil {
		return api.DashboardStats{}, err
	}
	p.stats.Set("stats", stats, p.ttl)
	return stats, nil
}

// SystemHealth fetches the backend's health document.
func (p *Portal) SystemHealth(ctx context.Context) (api.SystemHealth, error) {
	var health api.SystemHealth
	if err := p.rc.Get(ctx, "/admin/system/health", nil, &health); err != nil {
		return api.SystemHealth{}, err
	}
	return health, nil
}
