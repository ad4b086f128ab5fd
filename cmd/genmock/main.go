// Command genmock writes a synthetic VicEmergency feed document: a handful of
// incidents scattered around a centre point plus one statewide advisory. The
// output can be served by any static file server and pointed at via FEED_URL
// for local development.
//
// Usage:
//
//	go run ./cmd/genmock -lat -37.8136 -lon 144.9631 -count 10 -out feed.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/kuchel77/vicemergency-feed/internal/domain"
)

var mockCategories = []struct {
	category1 string
	category2 string
	status    string
}{
	{"Fire", "Grass Fire", "Going"},
	{"Fire", "Bush Fire", "Under Control"},
	{"Flooding", "Flash Flooding", "Warning"},
	{"Tree Down", "Tree Down / Traffic Hazard", "Complete"},
	{"Rescue", "Rescue Road Trap", "Going"},
}

var mockLocations = []string{
	"Bunyip", "Seymour", "Warragul", "Healesville", "Gisborne",
	"Bacchus Marsh", "Whittlesea", "Yarra Glen", "Kinglake", "Emerald",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	lat := flag.Float64("lat", -37.8136, "centre latitude")
	lon := flag.Float64("lon", 144.9631, "centre longitude")
	count := flag.Int("count", 10, "number of point incidents")
	spreadKm := flag.Float64("spread", 30, "max distance of incidents from centre in km")
	seed := flag.Int64("seed", 1, "random seed, for reproducible fixtures")
	out := flag.String("out", "", "output path (stdout if empty)")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	now := time.Now().UTC().Truncate(time.Minute)

	features := make([]domain.Feature, 0, *count+1)
	for i := 0; i < *count; i++ {
		features = append(features, mockIncident(rng, i, *lat, *lon, *spreadKm, now))
	}
	features = append(features, domain.Feature{
		Type: "Feature",
		Properties: domain.Properties{
			ID:        "mock-statewide-1",
			SourceOrg: "EMV",
			Category1: "Advice",
			Status:    "Warning",
			Name:      "Total Fire Ban",
			Statewide: "Y",
			Created:   now.Format(time.RFC3339),
		},
	})

	fc := domain.FeatureCollection{Type: "FeatureCollection", Features: features}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal feed: %w", err)
	}
	data = append(data, '\n')

	if *out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	log.Printf("wrote %d features to %s", len(features), *out)
	return nil
}

// mockIncident places an incident at a random bearing and distance from the
// centre, using the small-angle approximation (fine at fixture scale).
func mockIncident(rng *rand.Rand, i int, lat, lon, spreadKm float64, now time.Time) domain.Feature {
	bearing := rng.Float64() * 2 * math.Pi
	distKm := rng.Float64() * spreadKm
	dLat := distKm / 111.0 * math.Cos(bearing)
	dLon := distKm / (111.0 * math.Cos(lat*math.Pi/180)) * math.Sin(bearing)

	kind := mockCategories[rng.Intn(len(mockCategories))]
	location := mockLocations[rng.Intn(len(mockLocations))]

	return domain.Feature{
		Type: "Feature",
		Geometry: &domain.Geometry{
			Type:        "Point",
			Coordinates: domain.Coords{lon + dLon, lat + dLat},
		},
		Properties: domain.Properties{
			ID:          domain.FlexString(fmt.Sprintf("mock-%03d", i+1)),
			SourceOrg:   "CFA",
			SourceTitle: fmt.Sprintf("%s %s", kind.category2, location),
			Category1:   kind.category1,
			Category2:   kind.category2,
			Status:      kind.status,
			EventType:   "incident",
			Location:    location,
			Created:     now.Add(-time.Duration(rng.Intn(180)) * time.Minute).Format(time.RFC3339),
			Resources:   rng.Intn(20),
		},
	}
}
