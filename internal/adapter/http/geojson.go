package http

import "github.com/kuchel77/vicemergency-feed/internal/domain"

// featureCollection is the geojson projection of the entity snapshot, so
// consumers can drop the endpoint output straight onto a map.
type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string         `json:"type"`
	Geometry   geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func toFeatureCollection(entities []domain.GeoLocationEvent) featureCollection {
	features := make([]feature, 0, len(entities))
	for _, e := range entities {
		props := map[string]any{
			"id":          e.ExternalID,
			"name":        e.Name,
			"source":      e.Source,
			"distance_km": e.DistanceKm,
			"icon":        e.Icon,
			"attribution": e.Attribution,
		}
		for k, v := range e.Attributes {
			if _, taken := props[k]; !taken {
				props[k] = v
			}
		}
		features = append(features, feature{
			Type: "Feature",
			Geometry: geometry{
				Type:        "Point",
				Coordinates: []float64{e.Longitude, e.Latitude},
			},
			Properties: props,
		})
	}
	return featureCollection{Type: "FeatureCollection", Features: features}
}
