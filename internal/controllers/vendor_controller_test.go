package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routemap_api/internal/models"
	"routemap_api/internal/store"
)

type vendorListResponse struct {
	Rows  []models.Vendor `json:"rows"`
	Error string          `json:"error"`
}

type vendorRowResponse struct {
	Row   models.Vendor `json:"row"`
	Error string        `json:"error"`
}

func TestSearchVendorsRequiresQuery(t *testing.T) {
	_, r := setup(t)
	w := do(t, r, http.MethodGet, "/vendors", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchVendorsRanksExactAbovePrefix(t *testing.T) {
	f, r := setup(t)
	f.Seed(store.TableVendors,
		map[string]any{"name": "Acme Corp", "business_number": "111"},
		map[string]any{"name": "Acme", "business_number": "222"},
		map[string]any{"name": "Big Acme Ltd", "business_number": "333"},
		map[string]any{"name": "Unrelated", "business_number": "444"},
	)

	w := do(t, r, http.MethodGet, "/vendors?q=Acme", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp vendorListResponse
	decodeBody(t, w, &resp)

	require.Len(t, resp.Rows, 3)
	assert.Equal(t, "Acme", resp.Rows[0].Name)
	assert.Equal(t, "Acme Corp", resp.Rows[1].Name)
	assert.Equal(t, "Big Acme Ltd", resp.Rows[2].Name)
}

func TestSearchVendorsHonorsLimit(t *testing.T) {
	f, r := setup(t)
	for i := 0; i < 5; i++ {
		f.Seed(store.TableVendors, map[string]any{"name": "Acme", "business_number": string(rune('a' + i))})
	}

	w := do(t, r, http.MethodGet, "/vendors?q=Acme&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp vendorListResponse
	decodeBody(t, w, &resp)
	assert.Len(t, resp.Rows, 2)

	// Out-of-range limits fall back to the bounds.
	w = do(t, r, http.MethodGet, "/vendors?q=Acme&limit=-3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = vendorListResponse{}
	decodeBody(t, w, &resp)
	assert.Len(t, resp.Rows, 5)
}

func TestUpsertVendorValidation(t *testing.T) {
	_, r := setup(t)

	w := do(t, r, http.MethodPost, "/vendors", map[string]any{"name": "Acme"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/vendors", map[string]any{"business_number": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpsertVendorCreatesWithDerivedCode(t *testing.T) {
	_, r := setup(t)

	w := do(t, r, http.MethodPost, "/vendors", map[string]any{
		"name": "Acme", "business_number": "123-45-67890",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp vendorRowResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "bn_1234567890", resp.Row.VendorCode)
}

func TestUpsertVendorUpdatesByBusinessNumber(t *testing.T) {
	f, r := setup(t)
	f.Seed(store.TableVendors, map[string]any{
		"name": "Old Name", "business_number": "123", "vendor_code": "bn_123",
	})

	w := do(t, r, http.MethodPost, "/vendors", map[string]any{
		"name": "New Name", "business_number": "123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp vendorRowResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "New Name", resp.Row.Name)
	assert.Equal(t, "bn_123", resp.Row.VendorCode)
	assert.Len(t, f.Rows(store.TableVendors), 1)
}

func TestUpsertVendorResolvesCodeCollision(t *testing.T) {
	f, r := setup(t)
	// A different business number already claimed the derived code.
	f.Seed(store.TableVendors, map[string]any{
		"name": "Squatter", "business_number": "other", "vendor_code": "bn_123",
	})

	w := do(t, r, http.MethodPost, "/vendors", map[string]any{
		"name": "Acme", "business_number": "1-2-3",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp vendorRowResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "bn_123_2", resp.Row.VendorCode)
}
