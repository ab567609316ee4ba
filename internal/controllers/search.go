package controllers

import (
	"sort"
	"strconv"
	"strings"
)

const (
	scoreExact     = 3
	scorePrefix    = 2
	scoreSubstring = 1

	defaultSearchLimit = 50
	maxSearchLimit     = 200
)

// matchScore rates how well a query matches any of the given fields:
// exact beats prefix beats substring. Comparison is case-insensitive.
func matchScore(q string, fields ...string) int {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return 0
	}
	best := 0
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		var s int
		switch {
		case f == q:
			s = scoreExact
		case strings.HasPrefix(f, q):
			s = scorePrefix
		case strings.Contains(f, q):
			s = scoreSubstring
		}
		if s > best {
			best = s
		}
	}
	return best
}

type scored[T any] struct {
	row   T
	score int
	order int
}

// rankAndLimit sorts by score descending (stable on input order for ties)
// and truncates to the limit.
func rankAndLimit[T any](items []scored[T], limit int) []T {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].order < items[j].order
	})
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		out = append(out, it.row)
	}
	return out
}

// parseLimit bounds a caller-supplied limit to [1, maxSearchLimit].
func parseLimit(raw string) int {
	if raw == "" {
		return defaultSearchLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return defaultSearchLimit
	}
	if n > maxSearchLimit {
		return maxSearchLimit
	}
	return n
}
