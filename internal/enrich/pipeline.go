package enrich

import (
	"context"
	"sync"

	"routemap_api/internal/models"
	"routemap_api/internal/store"
)

// Pipeline turns raw route rows into their enriched API shape: derived
// color, parsed geometry, and vendor/camp display fields joined in.
// Output always has the same length and order as the input; enrichment
// failures never drop a row.
type Pipeline struct {
	Resolver *Resolver
}

func NewPipeline(s *store.Client) *Pipeline {
	return &Pipeline{Resolver: &Resolver{Store: s}}
}

// Enrich runs the full pipeline over a batch of rows.
func (p *Pipeline) Enrich(ctx context.Context, rows []models.Route) []models.RouteView {
	views := make([]models.RouteView, len(rows))
	for i, row := range rows {
		views[i] = baseView(row)
	}

	// The two auxiliary lookups are independent, so they run together.
	var wg sync.WaitGroup
	var vendorNames map[string]string
	var campIndex map[string]map[string]models.Camp
	wg.Add(2)
	go func() {
		defer wg.Done()
		vendorNames = p.Resolver.VendorNames(ctx, rows)
	}()
	go func() {
		defer wg.Done()
		campIndex = p.Resolver.CampLocations(ctx, rows)
	}()
	wg.Wait()

	for i, row := range rows {
		joinVendor(&views[i], vendorNames)
		joinCamp(&views[i], row, campIndex)
	}
	return views
}

// EnrichOne is the single-row convenience used by mutation handlers.
func (p *Pipeline) EnrichOne(ctx context.Context, row models.Route) models.RouteView {
	return p.Enrich(ctx, []models.Route{row})[0]
}

func baseView(row models.Route) models.RouteView {
	v := models.RouteView{
		ID:       row.ID,
		Camp:     row.Camp,
		Code:     row.Code,
		FullCode: row.FullCode,
		Color:    row.Color,
		Polygon:  ParsePolygon(row.PolygonWGS84),
		Center:   ParsePoint(row.CenterWGS84),
		Lat:      row.Lat,
		Lng:      row.Lng,
	}
	if v.Code == "" {
		v.Code = row.FullCode
	}
	if row.VendorBusinessNumber1W != nil {
		v.VendorBusinessNumber1W = *row.VendorBusinessNumber1W
	}
	if row.VendorBusinessNumber2W != nil {
		v.VendorBusinessNumber2W = *row.VendorBusinessNumber2W
	}
	if row.DeliveryLocationName != nil {
		v.DeliveryLocationName = *row.DeliveryLocationName
	}
	if row.Address != nil {
		v.Address = *row.Address
	}
	if v.Color == "" && row.FullCode != "" {
		v.Color = ColorFor(row.Camp + ":" + row.FullCode)
	}
	if v.Color == "" {
		v.Color = ColorFor(row.Camp + ":" + row.Code)
	}
	return v
}

func joinVendor(v *models.RouteView, names map[string]string) {
	v.VendorName1W = LookupVendorName(names, v.VendorBusinessNumber1W)
	v.VendorName2W = LookupVendorName(names, v.VendorBusinessNumber2W)
}

// joinCamp overwrites delivery address/coordinates from the matching camp
// row. Camp data wins over whatever the route row still carries.
func joinCamp(v *models.RouteView, row models.Route, campIndex map[string]map[string]models.Camp) {
	if v.DeliveryLocationName == "" {
		return
	}
	index, ok := campIndex[row.Camp]
	if !ok {
		return
	}
	cr, ok := index[NormalizeKey(v.DeliveryLocationName)]
	if !ok {
		return
	}
	if cr.Address != "" {
		v.Address = cr.Address
	}
	if cr.Latitude != nil {
		v.Lat = cr.Latitude
	}
	if cr.Longitude != nil {
		v.Lng = cr.Longitude
	}
}
