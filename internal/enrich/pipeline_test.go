package enrich

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routemap_api/internal/models"
	"routemap_api/internal/store"
	"routemap_api/internal/testutil"
)

func strPtr(s string) *string { return &s }

func testRows() []models.Route {
	return []models.Route{
		{
			ID:                     1,
			Camp:                   "west",
			FullCode:               "101",
			PolygonWGS84:           json.RawMessage(`"[[1,2],[3,4]]"`),
			VendorBusinessNumber1W: strPtr("123-45-67890"),
			DeliveryLocationName:   strPtr(" West Depot "),
		},
		{
			ID:       2,
			Camp:     "west",
			FullCode: "102",
		},
		{
			ID:                     3,
			Camp:                   "east",
			FullCode:               "201",
			VendorBusinessNumber2W: strPtr("9876543210"),
		},
	}
}

func seedAux(f *testutil.FakeStore) {
	f.Seed(store.TableVendors,
		map[string]any{"business_number": "1234567890", "name": "Acme Logistics"},
		map[string]any{"business_number": "987-65-43210", "name": "Globex"},
	)
	lat, lng := 37.5, 127.1
	f.Seed(store.TableCamps,
		map[string]any{"camp": "west", "mb_camp": "west depot", "address": "1 Depot Rd", "latitude": lat, "longitude": lng},
	)
}

func TestEnrichJoinsVendorsAndCamps(t *testing.T) {
	f := testutil.NewFakeStore()
	defer f.Close()
	seedAux(f)

	p := NewPipeline(store.New(f.URL(), "test-key"))
	views := p.Enrich(context.Background(), testRows())

	require.Len(t, views, 3)
	// Order preserved.
	assert.Equal(t, int64(1), views[0].ID)
	assert.Equal(t, int64(2), views[1].ID)
	assert.Equal(t, int64(3), views[2].ID)

	// Vendor names joined across loose business-number forms.
	assert.Equal(t, "Acme Logistics", views[0].VendorName1W)
	assert.Equal(t, "Globex", views[2].VendorName2W)

	// Camp data overwrites delivery address/coordinates.
	assert.Equal(t, "1 Depot Rd", views[0].Address)
	require.NotNil(t, views[0].Lat)
	assert.Equal(t, 37.5, *views[0].Lat)

	// Stored string-encoded polygon parsed.
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, views[0].Polygon)
	// No polygon remains nil, not an error.
	assert.Nil(t, views[1].Polygon)
}

func TestEnrichColorsAreStable(t *testing.T) {
	f := testutil.NewFakeStore()
	defer f.Close()

	p := NewPipeline(store.New(f.URL(), "test-key"))
	first := p.Enrich(context.Background(), testRows())
	second := p.Enrich(context.Background(), testRows())

	for i := range first {
		assert.NotEmpty(t, first[i].Color)
		assert.Equal(t, first[i].Color, second[i].Color)
	}
	// Row with a stored color keeps it.
	views := p.Enrich(context.Background(), []models.Route{{Camp: "west", FullCode: "101", Color: "#123456"}})
	assert.Equal(t, "#123456", views[0].Color)
}

func TestEnrichSurvivesAuxiliaryFailures(t *testing.T) {
	f := testutil.NewFakeStore()
	defer f.Close()
	f.Fail(store.TableVendors)
	f.Fail(store.TableCamps)

	p := NewPipeline(store.New(f.URL(), "test-key"))
	views := p.Enrich(context.Background(), testRows())

	require.Len(t, views, 3)
	assert.Empty(t, views[0].VendorName1W)
	assert.Empty(t, views[0].Address)
	// Primary fields still intact.
	assert.Equal(t, "101", views[0].FullCode)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, views[0].Polygon)
}

func TestBusinessNumberVariants(t *testing.T) {
	vars := businessNumberVariants(" 123-45-67890 ")
	assert.Contains(t, vars, "123-45-67890")
	assert.Contains(t, vars, "1234567890")

	vars = businessNumberVariants("1234567890")
	assert.Contains(t, vars, "1234567890")
	assert.Contains(t, vars, "123-45-67890")

	assert.Nil(t, businessNumberVariants("  "))
}
