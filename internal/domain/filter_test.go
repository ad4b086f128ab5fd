package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// melbourne is the reference home location used across filter tests.
var melbourne = Coordinate{Latitude: -37.8136, Longitude: 144.9631}

func pointIncident(id, category string, lat, lon float64) Incident {
	return Incident{
		ID:         id,
		Category1:  category,
		Coordinate: &Coordinate{Latitude: lat, Longitude: lon},
	}
}

func TestDistanceKm(t *testing.T) {
	sydney := Coordinate{Latitude: -33.8688, Longitude: 151.2093}
	d := DistanceKm(melbourne, sydney)
	// Melbourne-Sydney great-circle distance is ~713 km.
	assert.InDelta(t, 713, d, 5)

	assert.Zero(t, DistanceKm(melbourne, melbourne))
}

func TestFilter_RadiusKm(t *testing.T) {
	f := Filter{Home: melbourne, RadiusKm: 20}

	near := pointIncident("near", "Fire", -37.82, 144.98) // ~1.6 km
	far := pointIncident("far", "Fire", -36.76, 144.28)   // Bendigo, ~130 km

	matched := f.Apply([]Incident{near, far})
	assert.Len(t, matched, 1)
	assert.Equal(t, "near", matched[0].ID)
}

func TestFilter_Categories(t *testing.T) {
	tests := []struct {
		name    string
		filter  Filter
		cat     string
		matches bool
	}{
		{"no lists matches all", Filter{}, "Fire", true},
		{"include hit", Filter{IncludeCategories: []string{"Emergency Warning"}}, "Emergency Warning", true},
		{"include miss", Filter{IncludeCategories: []string{"Emergency Warning"}}, "Advice", false},
		{"exclude hit", Filter{ExcludeCategories: []string{"Burn Area"}}, "Burn Area", false},
		{"exclude miss", Filter{ExcludeCategories: []string{"Burn Area"}}, "Fire", true},
		{"unknown category vs include list", Filter{IncludeCategories: []string{"Advice"}}, "Something Else", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.filter
			f.Home = melbourne
			f.RadiusKm = 50
			inc := pointIncident("x", tt.cat, -37.82, 144.98)
			assert.Equal(t, tt.matches, f.Matches(inc))
		})
	}
}

func TestFilter_Statewide(t *testing.T) {
	statewide := Incident{ID: "tfb", Category1: "Advice", Statewide: true}

	off := Filter{Home: melbourne, RadiusKm: 20}
	assert.False(t, off.Matches(statewide), "statewide excluded by default")

	on := off
	on.Statewide = true
	assert.True(t, on.Matches(statewide), "statewide bypasses the radius check when enabled")

	// A statewide incident still has to clear the category filters.
	on.ExcludeCategories = []string{"Advice"}
	assert.False(t, on.Matches(statewide))
}

func TestFilter_NoCoordinate(t *testing.T) {
	f := Filter{Home: melbourne, RadiusKm: 20}
	inc := Incident{ID: "x", Category1: "Fire"}
	assert.False(t, f.Matches(inc), "non-statewide incident without a point cannot match")
	assert.Zero(t, f.DistanceFromHome(inc))
}
