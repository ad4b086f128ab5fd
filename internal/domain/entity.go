package domain

import (
	"strconv"
	"time"
)

// Source identifies this integration on every entity it produces.
const Source = "vicemergency_feed"

// EntityEventType classifies a lifecycle transition of a geolocation entity.
type EntityEventType string

const (
	EntityAdded   EntityEventType = "add"
	EntityUpdated EntityEventType = "update"
	EntityRemoved EntityEventType = "remove"
)

// GeoLocationEvent is the geolocation entity projected from an incident:
// a named point with a distance from home, an icon, and the remaining
// incident fields as attributes.
type GeoLocationEvent struct {
	ExternalID  string            `json:"external_id"`
	Name        string            `json:"name"`
	Source      string            `json:"source"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	DistanceKm  float64           `json:"distance_km"`
	Icon        string            `json:"icon"`
	Attribution string            `json:"attribution"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// EntityEvent is one lifecycle notification: an entity appeared, changed, or
// disappeared from the filtered feed.
type EntityEvent struct {
	Type       EntityEventType  `json:"type"`
	Entity     GeoLocationEvent `json:"entity"`
	ObservedAt time.Time        `json:"observed_at"`
}

// NewGeoLocationEvent projects an incident into its entity form, with the
// distance from home precomputed by the caller.
func NewGeoLocationEvent(inc Incident, distanceKm float64) GeoLocationEvent {
	e := GeoLocationEvent{
		ExternalID:  inc.ID,
		Name:        entityName(inc),
		Source:      Source,
		DistanceKm:  distanceKm,
		Icon:        Icon(inc),
		Attribution: Attribution,
		Attributes:  entityAttributes(inc),
	}
	if inc.Coordinate != nil {
		e.Latitude = inc.Coordinate.Latitude
		e.Longitude = inc.Coordinate.Longitude
	}
	return e
}

// NewEntityEvent stamps a lifecycle event with the current clock time.
func NewEntityEvent(t EntityEventType, entity GeoLocationEvent) EntityEvent {
	return EntityEvent{Type: t, Entity: entity, ObservedAt: clock.Now().UTC()}
}

func entityName(inc Incident) string {
	switch {
	case inc.Category1 == "":
		return inc.Location
	case inc.Location == "":
		return inc.Category1
	}
	return inc.Category1 + " - " + inc.Location
}

// Icon picks the Material Design icon shown for an incident. Resolved and
// unknown statuses win over category so a contained fire stops looking urgent.
func Icon(inc Incident) string {
	switch inc.Status {
	case "Safe", "Complete":
		return "mdi:map-marker-check"
	case "Unknown":
		return "mdi:map-marker-question"
	}
	if inc.Category1 == "Rescue" && inc.Category2 == "Rescue Road Trap" {
		return "mdi:car-emergency"
	}
	switch inc.Category1 {
	case "Fire":
		if inc.Status == "Under Control" {
			return "mdi:fire"
		}
		return "mdi:fire-alert"
	case "Tree Down":
		return "mdi:tree"
	case "Flooding":
		return "mdi:house-flood"
	}
	if inc.Status == "Warning" {
		return "mdi:alert"
	}
	return "mdi:alarm-light"
}

func entityAttributes(inc Incident) map[string]string {
	attrs := map[string]string{
		"id":        inc.ID,
		"category1": inc.Category1,
		"category2": inc.Category2,
		"status":    inc.Status,
		"type":      inc.Type,
		"location":  inc.Location,
	}
	setIfNotEmpty := func(k, v string) {
		if v != "" {
			attrs[k] = v
		}
	}
	setIfNotEmpty("description", inc.Description)
	setIfNotEmpty("text", inc.Text)
	setIfNotEmpty("sourceOrg", inc.SourceOrg)
	setIfNotEmpty("sourceTitle", inc.SourceTitle)
	setIfNotEmpty("estaid", inc.EstaID)
	setIfNotEmpty("size", inc.Size)
	setIfNotEmpty("sizefmt", inc.SizeFmt)
	if inc.Resources > 0 {
		attrs["resources"] = strconv.Itoa(inc.Resources)
	}
	if inc.Statewide {
		attrs["statewide"] = "true"
	}
	if !inc.PublicationDate.IsZero() {
		attrs["publication_date"] = inc.PublicationDate.Format(time.RFC3339)
	}
	return attrs
}

