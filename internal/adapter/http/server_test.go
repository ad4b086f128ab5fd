package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/kuchel77/vicemergency-feed/internal/adapter/http"
	"github.com/kuchel77/vicemergency-feed/internal/domain"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockSnapshot struct {
	entities []domain.GeoLocationEvent
}

func (m *mockSnapshot) Snapshot() []domain.GeoLocationEvent { return m.entities }

func newServer(ready error, entities []domain.GeoLocationEvent) *httpadapter.Server {
	return httpadapter.NewServer(":0", &mockReadiness{err: ready},
		&mockSnapshot{entities: entities}, slog.Default())
}

func get(t *testing.T, srv *httpadapter.Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestServer_Healthz(t *testing.T) {
	rec := get(t, newServer(nil, nil), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestServer_Readyz(t *testing.T) {
	rec := get(t, newServer(nil, nil), "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, newServer(errors.New("no successful feed poll yet"), nil), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "no successful feed poll yet")
}

func TestServer_Metrics(t *testing.T) {
	rec := get(t, newServer(nil, nil), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_Incidents(t *testing.T) {
	entities := []domain.GeoLocationEvent{
		{
			ExternalID:  "558112",
			Name:        "Fire - Bunyip",
			Source:      domain.Source,
			Latitude:    -37.8,
			Longitude:   145.2,
			DistanceKm:  12.5,
			Icon:        "mdi:fire-alert",
			Attribution: domain.Attribution,
			Attributes:  map[string]string{"status": "Going"},
		},
	}

	rec := get(t, newServer(nil, entities), "/incidents")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count     int                        `json:"count"`
		Incidents []domain.GeoLocationEvent `json:"incidents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Incidents, 1)
	assert.Equal(t, "Fire - Bunyip", resp.Incidents[0].Name)
}

func TestServer_IncidentsGeoJSON(t *testing.T) {
	entities := []domain.GeoLocationEvent{
		{
			ExternalID: "558112",
			Name:       "Fire - Bunyip",
			Latitude:   -37.8,
			Longitude:  145.2,
			Attributes: map[string]string{"status": "Going"},
		},
	}

	rec := get(t, newServer(nil, entities), "/incidents.geojson")
	require.Equal(t, http.StatusOK, rec.Code)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)
	// geojson is [lon, lat] order
	assert.Equal(t, []float64{145.2, -37.8}, fc.Features[0].Geometry.Coordinates)
	assert.Equal(t, "Going", fc.Features[0].Properties["status"])
}

func TestServer_UnknownRouteIs404(t *testing.T) {
	rec := get(t, newServer(nil, nil), "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
