package enrich

// palette holds the hand-picked display colors routes are bucketed into.
// Colors were chosen to stay distinguishable next to each other on a map.
var palette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#fabebe",
	"#008080", "#e6beff", "#9a6324", "#fffac8", "#800000",
	"#aaffc3", "#808000", "#ffd8b1", "#000075", "#808080",
}

// ColorFor maps a seed string onto the palette deterministically, so the
// same route always renders with the same color regardless of fetch order.
// An empty seed is valid and lands on a fixed palette entry.
func ColorFor(seed string) string {
	var h int32
	for _, r := range seed {
		h = h*31 + int32(r)
	}
	idx := int(h)
	if idx < 0 {
		idx = -idx
	}
	return palette[idx%len(palette)]
}
