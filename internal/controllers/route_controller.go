package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"routemap_api/internal/config"
	"routemap_api/internal/enrich"
	"routemap_api/internal/models"
	"routemap_api/internal/store"
)

func pipeline() *enrich.Pipeline {
	return enrich.NewPipeline(config.Store)
}

// ListRoutes returns the enriched routes of one camp, optionally narrowed
// to a code with exact or prefix matching (prefix is the default and is a
// plain string prefix: code=126 matches 126, 126A and 1260 alike).
func ListRoutes(c *gin.Context) {
	camp := strings.TrimSpace(c.Query("camp"))
	if camp == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "camp is required"})
		return
	}
	code := strings.TrimSpace(c.Query("code"))
	mode := strings.TrimSpace(c.Query("mode"))
	if mode == "" {
		mode = "prefix"
	}
	if mode != "exact" && mode != "prefix" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be exact or prefix"})
		return
	}

	params := url.Values{}
	params.Set("select", "*")
	params.Set("camp", "eq."+camp)
	if code != "" {
		if mode == "exact" {
			params.Set("full_code", "eq."+code)
		} else {
			params.Set("full_code", "like."+code+"*")
		}
	}
	params.Set("order", "full_code.asc")

	raw, err := config.Store.Select(c.Request.Context(), store.TableRoutes, params)
	if err != nil {
		logrus.WithError(err).Error("ListRoutes: store query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	rows, err := store.DecodeRows[models.Route](raw)
	if err != nil {
		logrus.WithError(err).Error("ListRoutes: bad rows from store")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": pipeline().Enrich(c.Request.Context(), rows)})
}

// routeInput carries the partial-patch body of a route upsert. Optional
// fields stay raw so that "absent", "explicitly null" and "has a value"
// remain distinguishable.
type routeInput struct {
	ID   *int64 `json:"id"`
	Camp string `json:"camp"`
	Code string `json:"code"`

	PolygonWGS84           json.RawMessage `json:"polygon_wgs84"`
	CenterWGS84            json.RawMessage `json:"center_wgs84"`
	Color                  json.RawMessage `json:"color"`
	VendorBusinessNumber1W json.RawMessage `json:"vendor_business_number_1w"`
	VendorBusinessNumber2W json.RawMessage `json:"vendor_business_number_2w"`
	DeliveryLocationName   json.RawMessage `json:"delivery_location_name"`
	Address                json.RawMessage `json:"address"`
	Lat                    json.RawMessage `json:"lat"`
	Lng                    json.RawMessage `json:"lng"`
}

// addPatch records a field into the patch body only when it was present
// in the request; an explicit null clears the stored value.
func addPatch(patch map[string]any, key string, raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		patch[key] = nil
		return
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	patch[key] = v
}

func (in *routeInput) patchBody() map[string]any {
	patch := map[string]any{}
	addPatch(patch, "polygon_wgs84", in.PolygonWGS84)
	addPatch(patch, "center_wgs84", in.CenterWGS84)
	addPatch(patch, "color", in.Color)
	addPatch(patch, "vendor_business_number_1w", in.VendorBusinessNumber1W)
	addPatch(patch, "vendor_business_number_2w", in.VendorBusinessNumber2W)
	addPatch(patch, "delivery_location_name", in.DeliveryLocationName)
	addPatch(patch, "address", in.Address)
	addPatch(patch, "lat", in.Lat)
	addPatch(patch, "lng", in.Lng)
	return patch
}

// UpsertRoute creates or updates the route for (camp, code). When an id
// is supplied the record is patched directly; otherwise an existing
// (camp, full_code) row is patched, or a new row inserted.
func UpsertRoute(c *gin.Context) {
	var input routeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpsertRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	input.Camp = strings.TrimSpace(input.Camp)
	input.Code = strings.TrimSpace(input.Code)
	if input.Camp == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "camp is required"})
		return
	}
	if input.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	ctx := c.Request.Context()
	patch := input.patchBody()

	var raw []json.RawMessage
	var err error
	switch {
	case input.ID != nil:
		params := url.Values{}
		params.Set("id", "eq."+strconv.FormatInt(*input.ID, 10))
		raw, err = config.Store.Update(ctx, store.TableRoutes, params, patch)
	default:
		lookup := url.Values{}
		lookup.Set("select", "id")
		lookup.Set("camp", "eq."+input.Camp)
		lookup.Set("full_code", "eq."+input.Code)
		var existing []json.RawMessage
		existing, err = config.Store.Select(ctx, store.TableRoutes, lookup)
		if err != nil {
			break
		}
		if len(existing) > 0 {
			var row models.Route
			if err = json.Unmarshal(existing[0], &row); err != nil {
				break
			}
			params := url.Values{}
			params.Set("id", "eq."+strconv.FormatInt(row.ID, 10))
			raw, err = config.Store.Update(ctx, store.TableRoutes, params, patch)
		} else {
			patch["camp"] = input.Camp
			patch["full_code"] = input.Code
			patch["code"] = input.Code
			raw, err = config.Store.Insert(ctx, store.TableRoutes, patch)
		}
	}
	if err != nil {
		logrus.WithError(err).Error("UpsertRoute: store mutation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	respondSingleRoute(c, raw)
}

// DeleteRoute soft-deletes a route: the drawn polygon is cleared but the
// record and its metadata stay.
func DeleteRoute(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	camp := strings.TrimSpace(c.Query("camp"))
	code := strings.TrimSpace(c.Query("code"))

	params := url.Values{}
	switch {
	case id != "":
		params.Set("id", "eq."+id)
	case camp != "" && code != "":
		params.Set("camp", "eq."+camp)
		params.Set("full_code", "eq."+code)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "id or camp and code are required"})
		return
	}

	raw, err := config.Store.Update(c.Request.Context(), store.TableRoutes, params, map[string]any{"polygon_wgs84": nil})
	if err != nil {
		logrus.WithError(err).Error("DeleteRoute: store mutation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(raw) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return
	}

	respondSingleRoute(c, raw)
}

// respondSingleRoute enriches the first mutated row and answers with it,
// keeping the response shape aligned with the GET path.
func respondSingleRoute(c *gin.Context, raw []json.RawMessage) {
	rows, err := store.DecodeRows[models.Route](raw)
	if err != nil || len(rows) == 0 {
		logrus.WithError(err).Error("route mutation returned no usable row")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store returned no row"})
		return
	}
	view := pipeline().EnrichOne(c.Request.Context(), rows[0])
	c.JSON(http.StatusOK, gin.H{"row": view})
}
