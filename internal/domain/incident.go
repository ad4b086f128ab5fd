package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Attribution credited on every entity produced from the feed.
const Attribution = "VICEmergency"

// ValidCategories are the classifications accepted by the include/exclude
// filters. These are the feed's warning-level classifications.
var ValidCategories = []string{
	"Advice",
	"Emergency Warning",
	"Not Applicable",
	"Watch and Act",
	"Burn Area",
}

// Coordinate is a WGS-84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Incident is the domain representation of one feed record.
type Incident struct {
	ID              string      `json:"id"`
	Category1       string      `json:"category1"`
	Category2       string      `json:"category2"`
	Status          string      `json:"status"`
	Type            string      `json:"type"`
	Location        string      `json:"location"`
	Description     string      `json:"description,omitempty"`
	Text            string      `json:"text,omitempty"`
	SourceOrg       string      `json:"source_org,omitempty"`
	SourceTitle     string      `json:"source_title,omitempty"`
	EstaID          string      `json:"esta_id,omitempty"`
	Resources       int         `json:"resources,omitempty"`
	Size            string      `json:"size,omitempty"`
	SizeFmt         string      `json:"size_fmt,omitempty"`
	Statewide       bool        `json:"statewide"`
	PublicationDate time.Time   `json:"publication_date"`
	Updated         time.Time   `json:"updated,omitempty"`
	Coordinate      *Coordinate `json:"coordinate,omitempty"`
}

// ParseFeed decodes a raw geojson feed document into incidents. Features
// without a usable id are dropped; features without a usable geometry are kept
// with a nil Coordinate (statewide advisories have no point).
func ParseFeed(data []byte) ([]Incident, error) {
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	incidents := make([]Incident, 0, len(fc.Features))
	for i := range fc.Features {
		inc, ok := incidentFromFeature(&fc.Features[i])
		if !ok {
			continue
		}
		incidents = append(incidents, inc)
	}
	return incidents, nil
}

func incidentFromFeature(f *Feature) (Incident, bool) {
	p := f.Properties

	id := string(p.ID)
	if id == "" {
		id = string(p.SourceID)
	}
	if id == "" {
		return Incident{}, false
	}

	inc := Incident{
		ID:              id,
		Category1:       p.Category1,
		Category2:       p.Category2,
		Status:          p.Status,
		Type:            p.EventType,
		Location:        locationOf(p),
		Description:     p.WebBody,
		Text:            p.Text,
		SourceOrg:       p.SourceOrg,
		SourceTitle:     p.SourceTitle,
		EstaID:          string(p.EstaID),
		Resources:       p.Resources,
		Size:            string(p.Size),
		SizeFmt:         string(p.SizeFmt),
		Statewide:       isStatewide(p.Statewide),
		PublicationDate: parseFeedTime(p.Created),
		Updated:         parseFeedTime(p.Updated),
	}
	if inc.Type == "" {
		inc.Type = p.FeedType
	}

	if lon, lat, ok := firstPoint(f.Geometry); ok {
		inc.Coordinate = &Coordinate{Latitude: lat, Longitude: lon}
	}
	return inc, true
}

// locationOf prefers the location property, falling back to the incident name
// so warning records without a location still produce a readable entity name.
func locationOf(p Properties) string {
	if p.Location != "" {
		return p.Location
	}
	return p.Name
}

// isStatewide interprets the feed's statewide marker, which is usually "Y"
// but has appeared as "true" and "yes".
func isStatewide(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "y", "yes", "true":
		return true
	}
	return false
}

// parseFeedTime parses the feed's RFC 3339 timestamps. Unparseable or empty
// values yield the zero time rather than an error; a missing publication date
// is not worth dropping an active incident over.
func parseFeedTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
