// Command validate fetches the VicEmergency feed once, applies the same
// filtering the service would, and prints the matching incidents. Useful for
// checking a home location and category configuration against the live feed.
//
// Usage:
//
//	go run ./cmd/validate -lat -37.8136 -lon 144.9631 -radius 50
//	go run ./cmd/validate -file testdata/feed.json -lat -37.81 -lon 144.96 -statewide
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/kuchel77/vicemergency-feed/internal/domain"
	"github.com/kuchel77/vicemergency-feed/internal/feed"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	url := flag.String("url", feed.DefaultURL, "feed URL to fetch")
	file := flag.String("file", "", "read the feed from a local file instead of fetching")
	lat := flag.Float64("lat", 0, "home latitude")
	lon := flag.Float64("lon", 0, "home longitude")
	radius := flag.Float64("radius", 20, "radius in km")
	statewide := flag.Bool("statewide", false, "include statewide incidents")
	include := flag.String("include", "", "comma-separated categories to include")
	exclude := flag.String("exclude", "", "comma-separated categories to exclude")
	timeout := flag.Duration("timeout", 10*time.Second, "fetch timeout")
	flag.Parse()

	if *lat == 0 && *lon == 0 {
		flag.Usage()
		return fmt.Errorf("missing required flags: -lat, -lon")
	}

	incidents, err := loadIncidents(*url, *file, *timeout)
	if err != nil {
		return err
	}

	includeCats := splitList(*include)
	excludeCats := splitList(*exclude)
	for _, cat := range append(append([]string{}, includeCats...), excludeCats...) {
		if !knownCategory(cat) {
			return fmt.Errorf("unknown category %q (valid: %s)", cat, strings.Join(domain.ValidCategories, ", "))
		}
	}

	filter := domain.Filter{
		Home:              domain.Coordinate{Latitude: *lat, Longitude: *lon},
		RadiusKm:          *radius,
		IncludeCategories: includeCats,
		ExcludeCategories: excludeCats,
		Statewide:         *statewide,
	}
	matched := filter.Apply(incidents)

	fmt.Printf("%d incidents in feed, %d match\n\n", len(incidents), len(matched))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tDISTANCE")
	for _, inc := range matched {
		entity := domain.NewGeoLocationEvent(inc, filter.DistanceFromHome(inc))
		distance := "statewide"
		if inc.Coordinate != nil {
			distance = fmt.Sprintf("%.1f km", entity.DistanceKm)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", inc.ID, entity.Name, inc.Status, distance)
	}
	return w.Flush()
}

func loadIncidents(url, file string, timeout time.Duration) ([]domain.Incident, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read feed file: %w", err)
		}
		return domain.ParseFeed(data)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client := feed.NewClient(url, timeout, slog.Default())
	return client.Fetch(ctx)
}

func knownCategory(cat string) bool {
	for _, v := range domain.ValidCategories {
		if v == cat {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
