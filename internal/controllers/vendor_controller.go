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
	"routemap_api/internal/enrich"
	"routemap_api/internal/models"
	"routemap_api/internal/store"
)

// SearchVendors runs a free-text vendor search across name, business
// number and vendor code, ranked exact > prefix > substring.
func SearchVendors(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	limit := parseLimit(c.Query("limit"))

	params := url.Values{}
	params.Set("select", "*")
	params.Set("or", "(name.ilike.*"+q+"*,business_number.ilike.*"+q+"*,vendor_code.ilike.*"+q+"*)")

	raw, err := config.Store.Select(c.Request.Context(), store.TableVendors, params)
	if err != nil {
		logrus.WithError(err).Error("SearchVendors: store query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	vendors, err := store.DecodeRows[models.Vendor](raw)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	seen := map[string]bool{}
	var items []scored[models.Vendor]
	for i, v := range vendors {
		key := strconv.FormatInt(v.ID, 10)
		if v.ID == 0 {
			key = v.BusinessNumber + "|" + v.Name
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		s := matchScore(q, v.Name, v.BusinessNumber, v.VendorCode)
		if s == 0 {
			continue
		}
		items = append(items, scored[models.Vendor]{row: v, score: s, order: i})
	}

	c.JSON(http.StatusOK, gin.H{"rows": rankAndLimit(items, limit)})
}

// UpsertVendor creates or updates a vendor keyed by business number. New
// vendors get a derived vendor_code of bn_<digits>; when that code is
// already taken a numeric suffix is appended.
func UpsertVendor(c *gin.Context) {
	var input struct {
		Name           string `json:"name"`
		BusinessNumber string `json:"business_number"`
		Address        string `json:"address"`
		Phone          string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	input.BusinessNumber = strings.TrimSpace(input.BusinessNumber)
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if input.BusinessNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "business_number is required"})
		return
	}

	ctx := c.Request.Context()

	lookup := url.Values{}
	lookup.Set("select", "*")
	lookup.Set("business_number", "eq."+input.BusinessNumber)
	existing, err := config.Store.Select(ctx, store.TableVendors, lookup)
	if err != nil {
		logrus.WithError(err).Error("UpsertVendor: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(existing) > 0 {
		rows, err := store.DecodeRows[models.Vendor](existing)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		patch := map[string]any{"name": input.Name}
		if input.Address != "" {
			patch["address"] = input.Address
		}
		if input.Phone != "" {
			patch["phone"] = input.Phone
		}
		params := url.Values{}
		params.Set("id", "eq."+strconv.FormatInt(rows[0].ID, 10))
		updated, err := config.Store.Update(ctx, store.TableVendors, params, patch)
		if err != nil {
			logrus.WithError(err).Error("UpsertVendor: update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		respondSingleVendor(c, updated)
		return
	}

	code, err := availableVendorCode(c, input.BusinessNumber)
	if err != nil {
		logrus.WithError(err).Error("UpsertVendor: vendor_code lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	body := map[string]any{
		"name":            input.Name,
		"business_number": input.BusinessNumber,
		"vendor_code":     code,
	}
	if input.Address != "" {
		body["address"] = input.Address
	}
	if input.Phone != "" {
		body["phone"] = input.Phone
	}
	created, err := config.Store.Insert(ctx, store.TableVendors, body)
	if err != nil {
		logrus.WithError(err).Error("UpsertVendor: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respondSingleVendor(c, created)
}

// availableVendorCode derives bn_<digits> and walks _2, _3… suffixes past
// any colliding codes already stored.
func availableVendorCode(c *gin.Context, businessNumber string) (string, error) {
	base := "bn_" + enrich.DigitsOnly(businessNumber)

	params := url.Values{}
	params.Set("select", "vendor_code")
	params.Set("vendor_code", "like."+base+"*")
	raw, err := config.Store.Select(c.Request.Context(), store.TableVendors, params)
	if err != nil {
		return "", err
	}
	rows, err := store.DecodeRows[models.Vendor](raw)
	if err != nil {
		return "", err
	}

	taken := map[string]bool{}
	for _, v := range rows {
		taken[v.VendorCode] = true
	}
	if !taken[base] {
		return base, nil
	}
	for i := 2; ; i++ {
		candidate := base + "_" + strconv.Itoa(i)
		if !taken[candidate] {
			return candidate, nil
		}
	}
}

func respondSingleVendor(c *gin.Context, raw []json.RawMessage) {
	rows, err := store.DecodeRows[models.Vendor](raw)
	if err != nil || len(rows) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store returned no row"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"row": rows[0]})
}
