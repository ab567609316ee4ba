package enrich

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// unwrapJSONString peels one layer of string encoding off a raw column
// value: the store holds geometry either as native JSON or as a
// JSON-encoded string, depending on how old the row is.
func unwrapJSONString(raw json.RawMessage) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil
		}
		trimmed = bytes.TrimSpace([]byte(inner))
		if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			return nil
		}
	}
	return trimmed
}

// ParsePolygon interprets a polygon column value as a list of [lng,lat]
// points. Anything unparseable comes back nil rather than failing the
// request.
func ParsePolygon(raw json.RawMessage) [][]float64 {
	data := unwrapJSONString(raw)
	if data == nil {
		return nil
	}
	var points [][]float64
	if err := json.Unmarshal(data, &points); err != nil {
		return nil
	}
	for _, p := range points {
		if len(p) < 2 {
			return nil
		}
	}
	if len(points) == 0 {
		return nil
	}
	return points
}

// ParsePoint interprets a center column value as a single [lng,lat] point.
func ParsePoint(raw json.RawMessage) []float64 {
	data := unwrapJSONString(raw)
	if data == nil {
		return nil
	}
	var point []float64
	if err := json.Unmarshal(data, &point); err != nil || len(point) < 2 {
		return nil
	}
	return point[:2]
}

// NormalizeKey prepares a name for case/whitespace-insensitive joins.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DigitsOnly strips a business number down to its digits, the canonical
// form used for vendor matching.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HyphenateBusinessNumber renders a 10-digit business number in the
// conventional 3-2-5 form. Other lengths come back unchanged.
func HyphenateBusinessNumber(digits string) string {
	if len(digits) != 10 {
		return digits
	}
	return digits[:3] + "-" + digits[3:5] + "-" + digits[5:]
}

// ParseFloat coerces a scalar string to a float pointer; empty or invalid
// input yields nil, never NaN.
func ParseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
