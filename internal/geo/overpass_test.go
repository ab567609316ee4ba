package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const overpassPayload = `{
  "elements": [
    {
      "type": "way", "id": 11,
      "tags": {"highway": "residential", "name": "Depot Street"},
      "geometry": [{"lat": 37.50, "lon": 127.10}, {"lat": 37.51, "lon": 127.11}]
    },
    {
      "type": "way", "id": 22,
      "tags": {"building": "yes"},
      "geometry": [
        {"lat": 37.50, "lon": 127.10}, {"lat": 37.50, "lon": 127.11},
        {"lat": 37.51, "lon": 127.11}, {"lat": 37.50, "lon": 127.10}
      ]
    },
    {"type": "node", "id": 33},
    {
      "type": "way", "id": 44,
      "tags": {"landuse": "grass"},
      "geometry": [{"lat": 1, "lon": 2}, {"lat": 3, "lon": 4}]
    }
  ]
}`

func TestFeaturesInBBoxSplitsRoadsAndBuildings(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		query = r.PostFormValue("data")
		w.Write([]byte(overpassPayload))
	}))
	defer srv.Close()

	c := NewOverpass(srv.URL)
	roads, buildings, err := c.FeaturesInBBox(context.Background(), 127.10, 37.50, 127.11, 37.51)
	require.NoError(t, err)

	// Overpass wants (south,west,north,east).
	assert.Contains(t, query, `way["highway"](37.500000,127.100000,37.510000,127.110000)`)
	assert.Contains(t, query, `way["building"]`)

	require.Len(t, roads, 1)
	assert.Equal(t, int64(11), roads[0].ID)
	assert.Equal(t, "Depot Street", roads[0].Name)
	var lineGeom struct {
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(roads[0].Geometry, &lineGeom))
	assert.Equal(t, "LineString", lineGeom.Type)

	require.Len(t, buildings, 1)
	var polyGeom struct {
		Type        string        `json:"type"`
		Coordinates [][][]float64 `json:"coordinates"`
	}
	require.NoError(t, json.Unmarshal(buildings[0].Geometry, &polyGeom))
	assert.Equal(t, "Polygon", polyGeom.Type)
	require.Len(t, polyGeom.Coordinates, 1)
	assert.Equal(t, []float64{127.10, 37.50}, polyGeom.Coordinates[0][0])
}

func TestFeaturesInBBoxOpenBuildingDegradesToLine(t *testing.T) {
	payload := `{"elements":[{"type":"way","id":5,"tags":{"building":"yes"},
	  "geometry":[{"lat":1,"lon":2},{"lat":3,"lon":4},{"lat":5,"lon":6}]}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	c := NewOverpass(srv.URL)
	roads, buildings, err := c.FeaturesInBBox(context.Background(), 0, 0, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, roads)
	require.Len(t, buildings, 1)
	var g struct {
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(buildings[0].Geometry, &g))
	assert.Equal(t, "LineString", g.Type)
}

func TestFeaturesInBBoxErrorMapping(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not even json`))
	}))
	defer bad.Close()
	c := NewOverpass(bad.URL)
	_, _, err := c.FeaturesInBBox(context.Background(), 0, 0, 1, 1)
	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, 500, ge.Status)

	down := httptest.NewServer(nil)
	down.Close()
	c = NewOverpass(down.URL)
	_, _, err = c.FeaturesInBBox(context.Background(), 0, 0, 1, 1)
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, 502, ge.Status)
}
