package admin

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"sync"

	"github.com/movaro/fleetboard/server/api"
	"github.com/movaro/fleetboard/server/telemetry"
)

// UserActivities fetches one page of the user activity feed.
func (p *Portal) UserActivities(ctx context.Context, skip, limit int) (api.ActivityPage, error) {
	return p.activities(ctx, api.SourceUsers, skip, limit)
}

// VehicleActivities fetches one page of the vehicle activity feed.
func (p *Portal) VehicleActivities(ctx context.Context, skip, limit int) (api.ActivityPage, error) {
	return p.activities(ctx, api.SourceVehicles, skip, limit)
}

// ReservationActivities fetches one page of the reservation activity feed.
func (p *Portal) ReservationActivities(ctx context.Context, skip, limit int) (api.ActivityPage, error) {
	return p.activities(ctx, api.SourceReservations, skip, limit)
}

func (p *Portal) activities(ctx context.Context, source string, skip, limit int) (api.ActivityPage, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	var page api.ActivityPage
	if err := p.rc.Get(ctx, "/admin/activities/"+source, q, &page); err != nil {
		return api.ActivityPage{}, err
	}
	if page.Data == nil {
		page.Data = make([]api.ActivityRecord, 0)
	}
	return page, nil
}

// AllActivities produces a single reverse-chronological feed from the
// user, vehicle, and reservation feeds. All three fetches run
// concurrently and each receives skip and limit unchanged. A feed that
// fails degrades to an empty one and is reported as a diagnostic;
// AllActivities itself never fails, so when every feed is down the
// result is simply an empty page, indistinguishable from no activity.
//
// The merged list is truncated to limit entries after sorting, so a
// busy feed can crowd out older items from a quiet one. Total is the
// sum of the feeds' reported totals (zero for a failed feed), which is
// deliberately NOT the length of the returned list; callers paginating
// on it will overestimate what a merged page can show.
func (p *Portal) AllActivities(ctx context.Context, skip, limit int) api.ActivityPage {
	key := fmt.Sprintf("all/%d/%d", skip, limit)
	if item := p.feed.Get(key); item != nil && !item.Expired() {
		telemetry.Increment("activity_cache_hits", 1)
		return item.Value()
	}

	page := p.mergeActivities(ctx, skip, limit)
	p.feed.Set(key, page, p.ttl)
	return page
}

type sourceResult struct {
	name string
	page api.ActivityPage
	err  error
}

func (p *Portal) mergeActivities(ctx context.Context, skip, limit int) api.ActivityPage {
	sources := []struct {
		name  string
		fetch func(context.Context, int, int) (api.ActivityPage, error)
	}{
		{api.SourceUsers, p.UserActivities},
		{api.SourceVehicles, p.VehicleActivities},
		{api.SourceReservations, p.ReservationActivities},
	}

	// Fan out and wait for every fetch to settle. A slow or failing
	// feed must not abort the others.
	results := make([]sourceResult, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, name string, fetch func(context.Context, int, int) (api.ActivityPage, error)) {
			defer wg.Done()
			page, err := fetch(ctx, skip, limit)
			results[i] = sourceResult{name: name, page: page, err: err}
		}(i, src.name, src.fetch)
	}
	wg.Wait()

	merged := api.ActivityPage{Data: make([]api.ActivityRecord, 0)}
	for _, res := range results {
		if res.err != nil {
			telemetry.Increment("activity_source_failures", 1)
			p.report(res.err, "fetching "+res.name+" activity", map[string]any{
				"skip":  skip,
				"limit": limit,
			})
			continue
		}
		merged.Data = append(merged.Data, res.page.Data...)
		merged.Total += res.page.Total
	}

	// Newest first. The sort is stable so identical timestamps keep a
	// deterministic order across runs.
	sort.SliceStable(merged.Data, func(a, b int) bool {
		return merged.Data[a].Time().After(merged.Data[b].Time())
	})

	if limit > 0 && len(merged.Data) > limit {
		merged.Data = merged.Data[:limit]
	}
	return merged
}
