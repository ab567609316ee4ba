package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
)

// BoundaryClient queries the government postal-boundary service for the
// polygon belonging to a zipcode.
type BoundaryClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewBoundary(endpoint string) *BoundaryClient {
	return &BoundaryClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Boundary is the reshaped, caller-friendly form of a postal boundary.
type Boundary struct {
	Zipcode  string         `json:"zipcode"`
	SRID     int            `json:"srid"`
	Center   []float64      `json:"center"`
	Polygon  [][]float64    `json:"polygon"`
	Metadata map[string]any `json:"metadata"`
}

type boundaryResponse struct {
	Features []struct {
		Properties map[string]any  `json:"properties"`
		Geometry   json.RawMessage `json:"geometry"`
	} `json:"features"`
}

// Lookup fetches and reshapes the boundary for one zipcode.
func (c *BoundaryClient) Lookup(ctx context.Context, zipcode string) (*Boundary, error) {
	if c.endpoint == "" {
		return nil, transportErr("boundary service is not configured")
	}

	params := url.Values{}
	params.Set("zipcode", zipcode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, transportErr(err.Error())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportErr("boundary request failed: " + err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, transportErr(fmt.Sprintf("boundary service returned HTTP %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportErr("boundary read failed: " + err.Error())
	}
	var parsed boundaryResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, payloadErr("boundary service returned unparseable payload")
	}
	if len(parsed.Features) == 0 {
		return nil, notFoundErr("no boundary found for zipcode " + zipcode)
	}

	feature := parsed.Features[0]
	var g geom.T
	if err := gjson.Unmarshal(feature.Geometry, &g); err != nil {
		return nil, payloadErr("boundary geometry did not parse")
	}

	ring := outerRing(g.FlatCoords(), g.Stride())
	if len(ring) == 0 {
		return nil, payloadErr("boundary geometry had no coordinates")
	}

	bounds := g.Bounds()
	center := []float64{
		(bounds.Min(0) + bounds.Max(0)) / 2,
		(bounds.Min(1) + bounds.Max(1)) / 2,
	}

	return &Boundary{
		Zipcode:  zipcode,
		SRID:     4326,
		Center:   center,
		Polygon:  ring,
		Metadata: feature.Properties,
	}, nil
}

// outerRing flattens the geometry's coordinates into [lng,lat] pairs.
// For polygons the flat coords walk the outer ring first, which is all
// the map frontend draws.
func outerRing(flat []float64, stride int) [][]float64 {
	if stride < 2 {
		return nil
	}
	ring := make([][]float64, 0, len(flat)/stride)
	for i := 0; i+1 < len(flat); i += stride {
		ring = append(ring, []float64{flat[i], flat[i+1]})
	}
	return ring
}
