package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movaro/fleetboard/server/api"
)

func TestListBetaTesters(t *testing.T) {
	portal := portalFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/beta-testers", r.URL.Path)
		assert.Equal(t, api.BetaPending, r.URL.Query().Get("status"))
		w.Write(jsonBytes(api.BetaPage{
			Data:  []api.BetaTester{{ID: "b1", Status: api.BetaPending}},
			Total: 7,
		}))
	}))

	page, err := portal.ListBetaTesters(context.Background(), api.BetaPending, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 7, page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, api.BetaPending, page.Data[0].Status)
}

func TestApproveBetaTester(t *testing.T) {
	portal := portalFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/admin/beta-testers/b1/approve", r.URL.Path)
		w.Write(jsonBytes(api.BetaTester{ID: "b1", Status: api.BetaApproved}))
	}))

	tester, err := portal.ApproveBetaTester(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, api.BetaApproved, tester.Status)
}

func TestRejectBetaTester(t *testing.T) {
	portal := portalFor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/admin/beta-testers/b1/reject", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "no capacity this round", body["reason"])
		w.Write(jsonBytes(api.BetaTester{ID: "b1", Status: api.BetaRejected, Notes: body["reason"]}))
	}))

	tester, err := portal.RejectBetaTester(context.Background(), "b1", "no capacity this round")
	require.NoError(t, err)
	assert.Equal(t, api.BetaRejected, tester.Status)
	assert.Equal(t, "no capacity this round", tester.Notes)
}
