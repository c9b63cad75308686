// Package status watches the rental platform's public status page
// feed (RSS, Atom, or JSON) so the dashboard can surface incidents
// without the admin opening another tab.
package status

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/movaro/fleetboard/server/telemetry"
)

// Incident is our internal, minimalist representation of one status
// page entry.
type Incident struct {
	ID        string
	Title     string
	Body      string
	URL       string
	Published time.Time
	Updated   time.Time
}

// IncidentHandler defines what to do when the feed yields something new
type IncidentHandler interface {
	StatusCode(code int)  // called after any fetch, normally 200 (OK) or 304 (NotModified)
	NewIncident(Incident) // a new status entry is discovered
}

// Watcher polls a status feed and reports fresh incidents to its handler
type Watcher struct {
	URL     string
	Client  http.Client
	Handler IncidentHandler

	parser       IncidentParser
	etag         string
	lastModified string
	known        map[string]time.Time // known ids, to separate new from seen
}

type IncidentParser interface {
	Parse(r io.Reader) ([]Incident, error)
}

type gofeedParser struct {
	parser *gofeed.Parser // handles rss, atom, and json feeds
}

func (p gofeedParser) Parse(reader io.Reader) ([]Incident, error) {
	feed, err := p.parser.Parse(reader)
	if err != nil {
		return nil, err
	}
	incidents := make([]Incident, 0)
	for _, item := range feed.Items {
		in := Incident{
			ID:    item.Link,
			Title: item.Title,
			Body:  item.Description,
			URL:   item.Link,
		}
		if item.GUID != "" {
			in.ID = item.GUID
		}
		if item.PublishedParsed != nil {
			in.Published = *item.PublishedParsed
		} else {
			// some status pages mangle their dates
			in.Published = time.Now().UTC()
		}
		if item.UpdatedParsed != nil {
			in.Updated = *item.UpdatedParsed
		} else {
			in.Updated = in.Published
		}
		incidents = append(incidents, in)
	}
	return incidents, nil
}

// Check fetches the remote feed once and hands new incidents to the handler
func (w *Watcher) Check(ctx context.Context) error {
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, w.URL, nil)
	if err != nil {
		return err
	}
	if w.lastModified != "" {
		r.Header.Set("If-Modified-Since", w.lastModified)
		r.Header.Set("If-None-Match", w.etag)
	}

	resp, err := w.Client.Do(r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	w.Handler.StatusCode(resp.StatusCode)
	if resp.StatusCode == http.StatusNotModified {
		// feed not modified, nothing to do
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("response code %d", resp.StatusCode)
	}

	fresh, err := w.parseIncidents(resp.Body)
	if err != nil {
		return err
	}
	for _, incident := range fresh {
		w.Handler.NewIncident(incident)
	}

	if resp.Header.Get("ETag") != "" {
		w.etag = resp.Header.Get("ETag")
		w.lastModified = resp.Header.Get("Last-Modified")
	}
	return nil
}

// AddKnown seeds the watcher so previously-seen incidents aren't re-announced
func (w *Watcher) AddKnown(incident Incident) {
	w.known[incident.ID] = incident.Updated
}

func (w *Watcher) parseIncidents(body io.Reader) ([]Incident, error) {
	all, err := w.parser.Parse(body)
	if err != nil {
		return nil, err
	}

	fresh := make([]Incident, 0)
	for _, incident := range all {
		if _, ok := w.known[incident.ID]; !ok {
			w.known[incident.ID] = incident.Updated
			fresh = append(fresh, incident)
		}
	}

	// oldest first, so handlers see them in the order they happened
	sort.Slice(fresh, func(i, j int) bool {
		return fresh[i].Published.Before(fresh[j].Published)
	})
	return fresh, nil
}

// Watch polls the feed until the context ends
func (w *Watcher) Watch(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	if err := w.Check(ctx); err != nil {
		telemetry.Error(err, "checking status feed [%s]", w.URL)
	}
	for {
		select {
		case <-ctx.Done():
			telemetry.Log("status watcher stopping: %v", ctx.Err())
			return
		case <-ticker.C:
			if err := w.Check(ctx); err != nil {
				// a broken status page is itself worth knowing about,
				// but never worth crashing over
				telemetry.Error(err, "checking status feed [%s]", w.URL)
			}
		}
	}
}

func NewWatcher(url string, handler IncidentHandler) *Watcher {
	return &Watcher{
		URL:     url,
		Client:  http.Client{},
		Handler: handler,
		parser: gofeedParser{
			parser: gofeed.NewParser(),
		},
		known: make(map[string]time.Time),
	}
}
