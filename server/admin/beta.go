package admin

import (
	"context"
	"net/url"
	"strconv"

	"github.com/movaro/fleetboard/server/api"
)

// ListBetaTesters returns one page of beta applications, optionally
// narrowed to a status (pending, approved, rejected).
func (p *Portal) ListBetaTesters(ctx context.Context, status string, skip, limit int) (api.BetaPage, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if status != "" {
		q.Set("status", status)
	}
	var page api.BetaPage
	if err := p.rc.Get(ctx, "/admin/beta-testers", q, &page); err != nil {
		return api.BetaPage{}, err
	}
	if page.Data == nil {
		page.Data = make([]api.BetaTester, 0)
	}
	return page, nil
}

func (p *Portal) ApproveBetaTester(ctx context.Context, id string) (*api.BetaTester, error) {
	var tester api.BetaTester
	if err := p.rc.Post(ctx, "/admin/beta-testers/"+id+"/approve", nil, &tester); err != nil {
		return nil, err
	}
	return &tester, nil
}

// RejectBetaTester declines an application. The reason lands in the
// tester's notes and in the rejection email.
func (p *Portal) RejectBetaTester(ctx context.Context, id, reason string) (*api.BetaTester, error) {
	body := struct {
		Reason string `json:"reason,omitempty"`
	}{Reason: reason}
	var tester api.BetaTester
	if err := p.rc.Post(ctx, "/admin/beta-testers/"+id+"/reject", body, &tester); err != nil {
		return nil, err
	}
	return &tester, nil
}

func (p *Portal) DeleteBetaTester(ctx context.Context, id string) error {
	return p.rc.Delete(ctx, "/admin/beta-testers/"+id, nil)
}
