package admin

import (
	"context"
	"net/url"
	"strconv"

	"github.com/movaro/fleetboard/server/api"
)

// UserQuery narrows a user listing. Zero values are omitted from the
// request so the backend applies its own defaults.
type UserQuery struct {
	Skip   int
	Limit  int
	Role   string
	Status string
	Search string
}

func (q UserQuery) values() url.Values {
	v := url.Values{}
	v.Set("skip", strconv.Itoa(q.Skip))
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Role != "" {
		v.Set("role", q.Role)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

func (p *Portal) ListUsers(ctx context.Context, q UserQuery) (api.UserPage, error) {
	var page api.UserPage
	if err := p.rc.Get(ctx, "/admin/users", q.values(), &page); err != nil {
		return api.UserPage{}, err
	}
	if page.Data == nil {
		page.Data = make([]api.User, 0)
	}
	return page, nil
}

func (p *Portal) GetUser(ctx context.Context, id string) (*api.User, error) {
	var user api.User
	if err := p.rc.Get(ctx, "/admin/users/"+id, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (p *Portal) CreateUser(ctx context.Context, req api.CreateUserRequest) (*api.User, error) {
	var user api.User
	if err := p.rc.Post(ctx, "/admin/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (p *Portal) UpdateUser(ctx context.Context, id string, req api.UpdateUserRequest) (*api.User, error) {
	var user api.User
	if err := p.rc.Put(ctx, "/admin/users/"+id, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (p *Portal) DeleteUser(ctx context.Context, id string) error {
	return p.rc.Delete(ctx, "/admin/users/"+id, nil)
}

// SetUserStatus activates or suspends an account.
func (p *Portal) SetUserStatus(ctx context.Context, id, status string) (*api.User, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	var user api.User
	if err := p.rc.Patch(ctx, "/admin/users/"+id+"/status", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
