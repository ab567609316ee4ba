package models

import (
	"encoding/json"
)

// Route represents a delivery sub-route row as stored upstream.
// A camp groups many routes; (camp, full_code) is the natural key, the
// numeric id is the storage key. Polygon and center columns may hold a
// native JSON value or a JSON-encoded string, so they stay raw here and
// are parsed during enrichment.
type Route struct {
	ID       int64  `json:"id,omitempty"`
	Camp     string `json:"camp"`
	Code     string `json:"code,omitempty"` // legacy alias of full_code
	FullCode string `json:"full_code"`

	PolygonWGS84 json.RawMessage `json:"polygon_wgs84,omitempty"`
	CenterWGS84  json.RawMessage `json:"center_wgs84,omitempty"`

	Color string `json:"color,omitempty"`

	VendorBusinessNumber1W *string `json:"vendor_business_number_1w,omitempty"`
	VendorBusinessNumber2W *string `json:"vendor_business_number_2w,omitempty"`

	DeliveryLocationName *string  `json:"delivery_location_name,omitempty"`
	Address              *string  `json:"address,omitempty"`
	Lat                  *float64 `json:"lat,omitempty"`
	Lng                  *float64 `json:"lng,omitempty"`
}

// RouteView is the enriched API shape of a Route.
// Polygon/center are parsed structures, color is always filled, and the
// vendor/camp joins contribute the display fields.
type RouteView struct {
	ID       int64  `json:"id"`
	Camp     string `json:"camp"`
	Code     string `json:"code"`
	FullCode string `json:"full_code"`

	Polygon [][]float64 `json:"polygon"`
	Center  []float64   `json:"center"`

	Color string `json:"color"`

	VendorBusinessNumber1W string `json:"vendor_business_number_1w,omitempty"`
	VendorBusinessNumber2W string `json:"vendor_business_number_2w,omitempty"`
	VendorName1W           string `json:"vendor_name_1w,omitempty"`
	VendorName2W           string `json:"vendor_name_2w,omitempty"`

	DeliveryLocationName string   `json:"delivery_location_name,omitempty"`
	Address              string   `json:"address,omitempty"`
	Lat                  *float64 `json:"lat,omitempty"`
	Lng                  *float64 `json:"lng,omitempty"`
}
