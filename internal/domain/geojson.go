package domain

import "encoding/json"

// FeatureCollection is the top-level structure of the VicEmergency feed.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single feed record: a geometry plus incident properties.
type Feature struct {
	Type       string     `json:"type"`
	Geometry   *Geometry  `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Geometry covers the shapes the feed actually emits: Point, Polygon, and
// GeometryCollection (planned burns publish both an ignition point and a
// burn-area polygon).
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates Coords     `json:"coordinates,omitempty"`
	Geometries  []Geometry `json:"geometries,omitempty"`
}

// Coords reduces any geojson coordinate array to a single [lon, lat] pair.
// For a Point this is the point itself; for Polygon and MultiPolygon shapes
// the first vertex stands in as the representative coordinate.
type Coords []float64

func (c *Coords) UnmarshalJSON(data []byte) error {
	var point []float64
	if err := json.Unmarshal(data, &point); err == nil {
		*c = point
		return nil
	}

	var poly [][][]float64
	if err := json.Unmarshal(data, &poly); err == nil {
		if len(poly) > 0 && len(poly[0]) > 0 && len(poly[0][0]) >= 2 {
			*c = poly[0][0]
			return nil
		}
	}

	var multi [][][][]float64
	if err := json.Unmarshal(data, &multi); err == nil {
		if len(multi) > 0 && len(multi[0]) > 0 && len(multi[0][0]) > 0 && len(multi[0][0][0]) >= 2 {
			*c = multi[0][0][0]
			return nil
		}
	}

	*c = nil
	return nil
}

// Properties holds the incident metadata attached to a feature. Several
// fields use FlexString because the source agencies disagree on whether they
// are strings or numbers.
type Properties struct {
	FeedType    string     `json:"feedType"`
	SourceOrg   string     `json:"sourceOrg"`
	SourceID    FlexString `json:"sourceId"`
	SourceTitle string     `json:"sourceTitle"`
	ID          FlexString `json:"id"`
	Category1   string     `json:"category1"`
	Category2   string     `json:"category2"`
	Status      string     `json:"status"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	Created     string     `json:"created"`
	Updated     string     `json:"updated"`
	Text        string     `json:"text"`
	WebBody     string     `json:"webBody"`
	URL         string     `json:"url"`
	Size        FlexString `json:"size"`
	SizeFmt     FlexString `json:"sizeFmt"`
	EstaID      FlexString `json:"estaid"`
	Resources   int        `json:"resources"`
	Statewide   string     `json:"statewide"`
	EventType   string     `json:"eventType"`
}

// FlexString accepts a JSON string, number, or anything else the feed throws
// at it, normalizing to a string. Arrays and objects collapse to "".
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	*f = ""
	return nil
}

// firstPoint walks a geometry to its representative [lon, lat] coordinate.
// Returns false when the geometry has no usable point.
func firstPoint(g *Geometry) (lon, lat float64, ok bool) {
	if g == nil {
		return 0, 0, false
	}
	if len(g.Coordinates) >= 2 {
		return g.Coordinates[0], g.Coordinates[1], true
	}
	for i := range g.Geometries {
		if lon, lat, ok = firstPoint(&g.Geometries[i]); ok {
			return lon, lat, true
		}
	}
	return 0, 0, false
}
