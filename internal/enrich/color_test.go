package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorForDeterministic(t *testing.T) {
	seeds := []string{"camp-a:101", "camp-a:102", "camp-b:101", "x", ""}
	for _, seed := range seeds {
		first := ColorFor(seed)
		for i := 0; i < 10; i++ {
			require.Equal(t, first, ColorFor(seed), "seed %q must always map to the same color", seed)
		}
	}
}

func TestColorForAlwaysFromPalette(t *testing.T) {
	inPalette := func(c string) bool {
		for _, p := range palette {
			if p == c {
				return true
			}
		}
		return false
	}
	for _, seed := range []string{"", "a", "서울캠프:126A", "very long seed with spaces and 數字 123"} {
		assert.True(t, inPalette(ColorFor(seed)), "seed %q produced a color outside the palette", seed)
	}
}

func TestColorForSpreadsAcrossSeeds(t *testing.T) {
	distinct := map[string]bool{}
	for _, seed := range []string{"c:1", "c:2", "c:3", "c:4", "c:5", "c:6", "c:7", "c:8"} {
		distinct[ColorFor(seed)] = true
	}
	// Not a uniformity proof, just a guard against a constant function.
	assert.GreaterOrEqual(t, len(distinct), 3)
}
