package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/movaro/fleetboard/server/admin"
	"github.com/movaro/fleetboard/server/api"
	"github.com/movaro/fleetboard/server/rest"
	"github.com/movaro/fleetboard/server/status"
	"github.com/movaro/fleetboard/server/storage"
	"github.com/movaro/fleetboard/server/telemetry"
)

const (
	defaultSkip  = 0
	defaultLimit = 20
)

// DashboardService is the monitoring gateway: it re-exposes the merged
// activity feed, business stats, backend health, and status page
// incidents for dashboards that don't speak the admin API directly.
type DashboardService struct {
	Config Config
	Server http.Server
	router *mux.Router
	portal *admin.Portal
	recent *status.Recent
	store  storage.Database
}

// NewService wires a gateway from config. A credential store that
// fails to open degrades to an anonymous client rather than aborting;
// the backend will answer 401 and the logs will say why.
func NewService(cfg Config) (*DashboardService, error) {
	svc := &DashboardService{
		Config: cfg,
		router: mux.NewRouter(),
		recent: status.NewRecent(cfg.Status.Keep),
	}

	var tokens rest.TokenSource
	store := storage.NewDatabase(cfg.API.TokenDB)
	if err := store.Open(); err != nil {
		telemetry.Error(err, "opening credential store [%s]", cfg.API.TokenDB)
	} else {
		svc.store = store
		tokens = rest.StoredTokens{Store: store}
	}

	rc, err := rest.NewClient(cfg.API.BaseURL, tokens, cfg.API.Timeout())
	if err != nil {
		return nil, err
	}
	svc.portal = admin.NewPortal(rc, telemetry.NewReporter(), cfg.CacheTTL())

	svc.addHandlers()

	svc.Server = http.Server{
		Handler:      svc.router,
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}
	return svc, nil
}

func (s *DashboardService) addHandlers() {
	s.router.HandleFunc("/", homeHandler).Methods("GET")
	s.router.HandleFunc("/admin/activities", s.activitiesHandler).Methods("GET")
	s.router.HandleFunc("/admin/stats", s.statsHandler).Methods("GET")
	s.router.HandleFunc("/admin/health", s.healthHandler).Methods("GET")
	s.router.HandleFunc("/admin/status", s.statusHandler).Methods("GET")
	s.router.Handle("/metrics", telemetry.Handler()).Methods("GET")
}

// Start launches the status watcher and the http listener.
func (s *DashboardService) Start(ctx context.Context) {
	if s.Config.Status.FeedURL != "" {
		watcher := status.NewWatcher(s.Config.Status.FeedURL, s.recent)
		telemetry.Log("watching %s", s.Config.Status.FeedURL)
		go watcher.Watch(ctx, s.Config.Status.Period())
	}
	go func() {
		telemetry.Log("http listener starting on port %d", s.Config.Server.Port)
		if err := s.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			telemetry.Error(err, "http listener")
		}
	}()
}

// Stop shuts the listener down gracefully and closes the store.
func (s *DashboardService) Stop(ctx context.Context) {
	if err := s.Server.Shutdown(ctx); err != nil {
		telemetry.Error(err, "shutting down http listener")
	}
	if s.store != nil {
		s.store.Close()
	}
}

// pageParams reads skip and limit from the query string. Bad values
// fall back to defaults; the backend owns real validation.
func pageParams(r *http.Request) (skip, limit int) {
	skip, limit = defaultSkip, defaultLimit
	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return skip, limit
}

func (s *DashboardService) activitiesHandler(w http.ResponseWriter, r *http.Request) {
	telemetry.Request(r, "activitiesHandler")
	telemetry.Increment("activity_requests", 1)
	skip, limit := pageParams(r)
	page := s.portal.AllActivities(r.Context(), skip, limit)
	writeJSON(w, page)
}

func (s *DashboardService) statsHandler(w http.ResponseWriter, r *http.Request) {
	telemetry.Request(r, "statsHandler")
	telemetry.Increment("stats_requests", 1)
	stats, err := s.portal.DashboardStats(r.Context())
	if err != nil {
		telemetry.Error(err, "fetching dashboard stats")
		http.Error(w, "stats unavailable", http.StatusBadGateway)
		return
	}
	writeJSON(w, stats)
}

func (s *DashboardService) healthHandler(w http.ResponseWriter, r *http.Request) {
	telemetry.Request(r, "healthHandler")
	health, err := s.portal.SystemHealth(r.Context())
	if err != nil {
		// degrade, don't fail: the dashboard still wants a document
		telemetry.Error(err, "fetching system health")
		health = api.SystemHealth{Status: api.HealthUnreachable}
	}
	writeJSON(w, health)
}

func (s *DashboardService) statusHandler(w http.ResponseWriter, r *http.Request) {
	telemetry.Request(r, "statusHandler")
	body := struct {
		LastFetchCode int               `json:"last_fetch_code"`
		Incidents     []status.Incident `json:"incidents"`
	}{
		LastFetchCode: s.recent.LastStatus(),
		Incidents:     s.recent.Incidents(),
	}
	writeJSON(w, body)
}

func writeJSON(w http.ResponseWriter, v any) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		telemetry.Error(err, "marshaling response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonBytes)
}

func homeHandler(w http.ResponseWriter, r *http.Request) {
	telemetry.Request(r, "homeHandler")
	telemetry.Increment("home_requests", 1)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `<html><title>fleetboard</title>
<body>
<p>This is the fleetboard monitoring gateway.
Dashboards talk to /admin/activities, /admin/stats, /admin/health,
and /admin/status. There's nothing to see here.</p>
</body>
</html>`)
}
