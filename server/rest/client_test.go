package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) Token(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockTokens) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestClient_InjectsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sesame", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, StaticToken("sesame"), time.Second)
	require.NoError(t, err)
	assert.NoError(t, c.Get(context.Background(), "/admin/users", nil, nil))
}

func TestClient_AnonymousWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, StaticToken(""), time.Second)
	require.NoError(t, err)
	assert.NoError(t, c.Get(context.Background(), "/admin/users", nil, nil))
}

func TestClient_UnauthorizedClearsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := &mockTokens{}
	tokens.On("Token", mock.Anything).Return("stale", nil).Once()
	tokens.On("Clear", mock.Anything).Return(nil).Once()

	c, err := NewClient(srv.URL, tokens, time.Second)
	require.NoError(t, err)

	err = c.Get(context.Background(), "/admin/users", nil, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	tokens.AssertExpectations(t)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no such user"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, nil, time.Second)
	require.NoError(t, err)

	err = c.Get(context.Background(), "/admin/users/ghost", nil, nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "no such user", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "no such user")
}

func TestClient_APIErrorAltShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid role"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, nil, time.Second)
	require.NoError(t, err)

	err = c.Post(context.Background(), "/admin/users", map[string]string{"role": "pilot"}, nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "invalid role", apiErr.Message)
}

func TestClient_EncodesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "limit=7&skip=3", r.URL.RawQuery)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, nil, time.Second)
	require.NoError(t, err)

	q := url.Values{}
	q.Set("skip", "3")
	q.Set("limit", "7")
	assert.NoError(t, c.Get(context.Background(), "/admin/users", q, nil))
}

func TestClient_PostRoundTrip(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "cargo van", in.Name)
		w.Write([]byte(`{"name":"cargo van"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, nil, time.Second)
	require.NoError(t, err)

	var out payload
	require.NoError(t, c.Post(context.Background(), "/admin/vehicles", payload{Name: "cargo van"}, &out))
	assert.Equal(t, "cargo van", out.Name)
}

func TestClient_JoinsBasePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/admin/users", r.URL.Path)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/api/v1", nil, time.Second)
	require.NoError(t, err)
	assert.NoError(t, c.Get(context.Background(), "/admin/users", nil, nil))
}

func TestClient_BadBaseURL(t *testing.T) {
	_, err := NewClient("://not-a-url", nil, time.Second)
	assert.Error(t, err)
}
