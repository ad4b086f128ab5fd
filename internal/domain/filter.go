package domain

// Filter selects the incidents worth surfacing: those within the configured
// radius of home, matching the category include/exclude lists, plus statewide
// advisories when enabled.
type Filter struct {
	Home              Coordinate
	RadiusKm          float64
	IncludeCategories []string
	ExcludeCategories []string
	Statewide         bool
}

// Apply returns the incidents passing the filter, preserving feed order.
func (f Filter) Apply(incidents []Incident) []Incident {
	matched := make([]Incident, 0, len(incidents))
	for _, inc := range incidents {
		if f.Matches(inc) {
			matched = append(matched, inc)
		}
	}
	return matched
}

// Matches reports whether a single incident passes the filter.
// Statewide incidents have no meaningful point, so they bypass the radius
// check entirely and are gated only by the statewide switch and categories.
func (f Filter) Matches(inc Incident) bool {
	if !f.matchesCategories(inc.Category1) {
		return false
	}

	if inc.Statewide {
		return f.Statewide
	}

	if inc.Coordinate == nil {
		return false
	}
	return DistanceKm(f.Home, *inc.Coordinate) <= f.RadiusKm
}

// DistanceFromHome returns the incident's distance from the home coordinate
// in kilometres, or 0 for incidents without a point.
func (f Filter) DistanceFromHome(inc Incident) float64 {
	if inc.Coordinate == nil {
		return 0
	}
	return DistanceKm(f.Home, *inc.Coordinate)
}

func (f Filter) matchesCategories(category string) bool {
	if len(f.IncludeCategories) > 0 && !contains(f.IncludeCategories, category) {
		return false
	}
	return !contains(f.ExcludeCategories, category)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
