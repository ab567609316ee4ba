package controllers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"routemap_api/internal/config"
	"routemap_api/internal/models"
	"routemap_api/internal/store"
)

// ListCamps returns camp location rows, filtered by camp/mb_camp when
// given, or searched free-text with q across camp, mb_camp and address.
func ListCamps(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	camp := strings.TrimSpace(c.Query("camp"))
	mbCamp := strings.TrimSpace(c.Query("mb_camp"))
	limit := parseLimit(c.Query("limit"))

	params := url.Values{}
	params.Set("select", "*")
	if camp != "" {
		params.Set("camp", "eq."+camp)
	}
	if mbCamp != "" {
		params.Set("mb_camp", "eq."+mbCamp)
	}
	if q != "" {
		params.Set("or", "(camp.ilike.*"+q+"*,mb_camp.ilike.*"+q+"*,address.ilike.*"+q+"*)")
	} else {
		params.Set("order", "camp.asc,mb_camp.asc")
	}

	raw, err := config.Store.Select(c.Request.Context(), store.TableCamps, params)
	if err != nil {
		logrus.WithError(err).Error("ListCamps: store query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	camps, err := store.DecodeRows[models.Camp](raw)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if q == "" {
		if len(camps) > limit {
			camps = camps[:limit]
		}
		c.JSON(http.StatusOK, gin.H{"rows": camps})
		return
	}

	seen := map[string]bool{}
	var items []scored[models.Camp]
	for i, cr := range camps {
		key := strconv.FormatInt(cr.ID, 10)
		if cr.ID == 0 {
			key = cr.Camp + "|" + cr.MBCamp
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		s := matchScore(q, cr.Camp, cr.MBCamp, cr.Address)
		if s == 0 {
			continue
		}
		items = append(items, scored[models.Camp]{row: cr, score: s, order: i})
	}

	c.JSON(http.StatusOK, gin.H{"rows": rankAndLimit(items, limit)})
}

// UpsertCamp creates or updates a delivery-location row keyed by the
// (camp, mb_camp) pair.
func UpsertCamp(c *gin.Context) {
	var input struct {
		Camp      string   `json:"camp"`
		MBCamp    string   `json:"mb_camp"`
		Address   string   `json:"address"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	input.Camp = strings.TrimSpace(input.Camp)
	input.MBCamp = strings.TrimSpace(input.MBCamp)
	input.Address = strings.TrimSpace(input.Address)
	if input.Camp == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "camp is required"})
		return
	}
	if input.MBCamp == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mb_camp is required"})
		return
	}
	if input.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}

	ctx := c.Request.Context()

	lookup := url.Values{}
	lookup.Set("select", "*")
	lookup.Set("camp", "eq."+input.Camp)
	lookup.Set("mb_camp", "eq."+input.MBCamp)
	existing, err := config.Store.Select(ctx, store.TableCamps, lookup)
	if err != nil {
		logrus.WithError(err).Error("UpsertCamp: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	body := map[string]any{
		"camp":    input.Camp,
		"mb_camp": input.MBCamp,
		"address": input.Address,
	}
	if input.Latitude != nil {
		body["latitude"] = *input.Latitude
	}
	if input.Longitude != nil {
		body["longitude"] = *input.Longitude
	}

	var raw []json.RawMessage
	if len(existing) > 0 {
		rows, derr := store.DecodeRows[models.Camp](existing)
		if derr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": derr.Error()})
			return
		}
		params := url.Values{}
		params.Set("id", "eq."+strconv.FormatInt(rows[0].ID, 10))
		raw, err = config.Store.Update(ctx, store.TableCamps, params, body)
	} else {
		raw, err = config.Store.Insert(ctx, store.TableCamps, body)
	}
	if err != nil {
		logrus.WithError(err).Error("UpsertCamp: store mutation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rows, err := store.DecodeRows[models.Camp](raw)
	if err != nil || len(rows) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store returned no row"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"row": rows[0]})
}
