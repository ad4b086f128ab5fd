// Package registry tracks the live set of geolocation entities and computes
// lifecycle deltas between polls.
package registry

import (
	"maps"
	"sort"
	"sync"

	"github.com/kuchel77/vicemergency-feed/internal/domain"
)

// Delta lists the lifecycle transitions produced by one Apply call.
type Delta struct {
	Added   []domain.GeoLocationEvent
	Updated []domain.GeoLocationEvent
	Removed []domain.GeoLocationEvent
}

// Empty reports whether the delta carries no transitions.
func (d Delta) Empty() bool {
	return len(d.Added) == 0 && len(d.Updated) == 0 && len(d.Removed) == 0
}

// Registry holds the current entity set keyed by external id. Each poll
// replaces the set wholesale: entities absent from the new set are removed,
// whether the incident resolved or merely left the radius.
type Registry struct {
	mu       sync.RWMutex
	entities map[string]domain.GeoLocationEvent
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entities: make(map[string]domain.GeoLocationEvent)}
}

// Apply replaces the entity set with the given entities and returns the delta
// against the previous set. Unchanged surviving entities produce no event.
func (r *Registry) Apply(entities []domain.GeoLocationEvent) Delta {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make(map[string]domain.GeoLocationEvent, len(entities))
	var delta Delta

	for _, e := range entities {
		next[e.ExternalID] = e
		prev, existed := r.entities[e.ExternalID]
		switch {
		case !existed:
			delta.Added = append(delta.Added, e)
		case !equal(prev, e):
			delta.Updated = append(delta.Updated, e)
		}
	}

	for id, prev := range r.entities {
		if _, kept := next[id]; !kept {
			delta.Removed = append(delta.Removed, prev)
		}
	}
	sort.Slice(delta.Removed, func(i, j int) bool {
		return delta.Removed[i].ExternalID < delta.Removed[j].ExternalID
	})

	r.entities = next
	return delta
}

// Snapshot returns the current entities sorted by external id.
func (r *Registry) Snapshot() []domain.GeoLocationEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.GeoLocationEvent, 0, len(r.entities))
	for _, e := range r.entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out
}

// Len returns the number of tracked entities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}

// equal compares two entities field by field. GeoLocationEvent carries an
// attribute map, so it is not directly comparable.
func equal(a, b domain.GeoLocationEvent) bool {
	return a.ExternalID == b.ExternalID &&
		a.Name == b.Name &&
		a.Source == b.Source &&
		a.Latitude == b.Latitude &&
		a.Longitude == b.Longitude &&
		a.DistanceKm == b.DistanceKm &&
		a.Icon == b.Icon &&
		a.Attribution == b.Attribution &&
		maps.Equal(a.Attributes, b.Attributes)
}
