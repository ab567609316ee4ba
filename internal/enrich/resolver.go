package enrich

import (
	"context"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"routemap_api/internal/models"
	"routemap_api/internal/store"
)

// Resolver batch-fetches the auxiliary vendor and camp tables so that a
// whole page of routes costs one lookup per table instead of one per row.
type Resolver struct {
	Store *store.Client
}

// businessNumberVariants lists the stored forms a business number might
// appear under: as given, digits-only, and hyphenated.
func businessNumberVariants(bn string) []string {
	bn = strings.TrimSpace(bn)
	if bn == "" {
		return nil
	}
	digits := DigitsOnly(bn)
	seen := map[string]bool{}
	var out []string
	for _, v := range []string{bn, digits, HyphenateBusinessNumber(digits)} {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// VendorNames resolves display names for every business number present in
// the batch with a single IN query. The returned map is keyed by the
// digits-only canonical form. A failed lookup degrades to an empty map.
func (r *Resolver) VendorNames(ctx context.Context, rows []models.Route) map[string]string {
	variantSet := map[string]bool{}
	for _, row := range rows {
		for _, bn := range []*string{row.VendorBusinessNumber1W, row.VendorBusinessNumber2W} {
			if bn == nil {
				continue
			}
			for _, v := range businessNumberVariants(*bn) {
				variantSet[v] = true
			}
		}
	}
	if len(variantSet) == 0 {
		return nil
	}

	quoted := make([]string, 0, len(variantSet))
	for v := range variantSet {
		quoted = append(quoted, `"`+v+`"`)
	}
	params := url.Values{}
	params.Set("select", "business_number,name")
	params.Set("business_number", "in.("+strings.Join(quoted, ",")+")")

	raw, err := r.Store.Select(ctx, store.TableVendors, params)
	if err != nil {
		logrus.WithError(err).Warn("vendor lookup failed, leaving vendor names unset")
		return nil
	}
	vendors, err := store.DecodeRows[models.Vendor](raw)
	if err != nil {
		logrus.WithError(err).Warn("vendor lookup returned bad rows, leaving vendor names unset")
		return nil
	}

	names := map[string]string{}
	for _, v := range vendors {
		if v.Name == "" {
			continue
		}
		if d := DigitsOnly(v.BusinessNumber); d != "" {
			names[d] = v.Name
		}
	}
	return names
}

// CampLocations fetches every distinct camp's location list once and
// indexes it by normalized mb_camp. A failed fetch skips that camp only.
func (r *Resolver) CampLocations(ctx context.Context, rows []models.Route) map[string]map[string]models.Camp {
	campSet := map[string]bool{}
	for _, row := range rows {
		if row.Camp != "" {
			campSet[row.Camp] = true
		}
	}
	if len(campSet) == 0 {
		return nil
	}

	out := map[string]map[string]models.Camp{}
	for camp := range campSet {
		params := url.Values{}
		params.Set("select", "*")
		params.Set("camp", "eq."+camp)

		raw, err := r.Store.Select(ctx, store.TableCamps, params)
		if err != nil {
			logrus.WithError(err).WithField("camp", camp).Warn("camp lookup failed, leaving delivery fields unset")
			continue
		}
		camps, err := store.DecodeRows[models.Camp](raw)
		if err != nil {
			logrus.WithError(err).WithField("camp", camp).Warn("camp lookup returned bad rows")
			continue
		}

		index := map[string]models.Camp{}
		for _, cr := range camps {
			if key := NormalizeKey(cr.MBCamp); key != "" {
				index[key] = cr
			}
		}
		out[camp] = index
	}
	return out
}

// LookupVendorName finds a name for a loosely-formed business number.
func LookupVendorName(names map[string]string, bn string) string {
	if bn == "" || len(names) == 0 {
		return ""
	}
	return names[DigitsOnly(bn)]
}
