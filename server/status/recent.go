package status

import (
	"sync"

	"github.com/movaro/fleetboard/server/telemetry"
)

// Recent keeps a bounded, newest-first list of incidents for the
// gateway to serve. It is the IncidentHandler the service wires into
// its watcher.
type Recent struct {
	mu        sync.Mutex
	max       int
	incidents []Incident
	lastCode  int
}

func NewRecent(max int) *Recent {
	if max <= 0 {
		max = 20
	}
	return &Recent{
		max:       max,
		incidents: make([]Incident, 0),
	}
}

func (r *Recent) NewIncident(incident Incident) {
	telemetry.Increment("status_incidents", 1)
	r.mu.Lock()
	defer r.mu.Unlock()

	// insert keeping newest-first order
	pos := len(r.incidents)
	for i, existing := range r.incidents {
		if incident.Published.After(existing.Published) {
			pos = i
			break
		}
	}
	r.incidents = append(r.incidents, Incident{})
	copy(r.incidents[pos+1:], r.incidents[pos:])
	r.incidents[pos] = incident

	if len(r.incidents) > r.max {
		r.incidents = r.incidents[:r.max]
	}
}

func (r *Recent) StatusCode(code int) {
	telemetry.Increment("status_fetches", 1)
	r.mu.Lock()
	r.lastCode = code
	r.mu.Unlock()
}

// Incidents returns a copy of the retained incidents, newest first.
func (r *Recent) Incidents() []Incident {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Incident, len(r.incidents))
	copy(out, r.incidents)
	return out
}

// LastStatus is the HTTP status of the most recent feed fetch,
// zero if none has completed yet.
func (r *Recent) LastStatus() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastCode
}
