package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
)

const defaultOverpassURL = "https://overpass-api.de/api/interpreter"

// OverpassClient queries the OpenStreetMap Overpass API for road and
// building ways inside a bounding box.
type OverpassClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewOverpass(endpoint string) *OverpassClient {
	if endpoint == "" {
		endpoint = defaultOverpassURL
	}
	return &OverpassClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Feature is one reshaped OSM way: line geometry for roads, polygon
// geometry for buildings, both serialized as GeoJSON.
type Feature struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name,omitempty"`
	Tags     map[string]string `json:"tags,omitempty"`
	Geometry json.RawMessage   `json:"geometry"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Tags     map[string]string `json:"tags"`
	Geometry []overpassPoint   `json:"geometry"`
}

type overpassPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// FeaturesInBBox fetches highway and building ways in the box and splits
// them into line and polygon feature lists.
func (c *OverpassClient) FeaturesInBBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) (roads, buildings []Feature, err error) {
	// Overpass bbox order is (south,west,north,east).
	bbox := fmt.Sprintf("%f,%f,%f,%f", minLat, minLng, maxLat, maxLng)
	query := fmt.Sprintf(`[out:json][timeout:10];(way["highway"](%s);way["building"](%s););out geom;`, bbox, bbox)

	form := url.Values{}
	form.Set("data", query)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, nil, transportErr(err.Error())
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, transportErr("overpass request failed: " + err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, transportErr(fmt.Sprintf("overpass returned HTTP %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, transportErr("overpass read failed: " + err.Error())
	}
	var parsed overpassResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, nil, payloadErr("overpass returned unparseable payload")
	}

	roads = []Feature{}
	buildings = []Feature{}
	for _, el := range parsed.Elements {
		if el.Type != "way" || len(el.Geometry) < 2 {
			continue
		}
		f, isBuilding, ok := reshapeWay(el)
		if !ok {
			continue
		}
		if isBuilding {
			buildings = append(buildings, f)
		} else {
			roads = append(roads, f)
		}
	}
	return roads, buildings, nil
}

// reshapeWay turns an Overpass way into a Feature. Building ways with a
// closed ring become polygons, everything tagged highway becomes a line.
func reshapeWay(el overpassElement) (Feature, bool, bool) {
	coords := make([]geom.Coord, 0, len(el.Geometry))
	for _, p := range el.Geometry {
		coords = append(coords, geom.Coord{p.Lon, p.Lat})
	}

	_, isBuilding := el.Tags["building"]
	var g geom.T
	if isBuilding && closedRing(coords) {
		poly := geom.NewPolygon(geom.XY)
		if _, err := poly.SetCoords([][]geom.Coord{coords}); err != nil {
			return Feature{}, false, false
		}
		g = poly
	} else if isBuilding {
		// Open building outline, degrade to a line feature.
		line := geom.NewLineString(geom.XY)
		if _, err := line.SetCoords(coords); err != nil {
			return Feature{}, false, false
		}
		g = line
	} else if _, ok := el.Tags["highway"]; ok {
		line := geom.NewLineString(geom.XY)
		if _, err := line.SetCoords(coords); err != nil {
			return Feature{}, false, false
		}
		g = line
	} else {
		return Feature{}, false, false
	}

	encoded, err := gjson.Marshal(g)
	if err != nil {
		return Feature{}, false, false
	}
	return Feature{
		ID:       el.ID,
		Name:     el.Tags["name"],
		Tags:     el.Tags,
		Geometry: encoded,
	}, isBuilding, true
}

func closedRing(coords []geom.Coord) bool {
	if len(coords) < 4 {
		return false
	}
	first, last := coords[0], coords[len(coords)-1]
	return first[0] == last[0] && first[1] == last[1]
}
