package events

import (
	"math"
	"sort"
)

// NormalizeProbabilities converts raw 0-100 scaled prices into integer
// percentages that sum to exactly 100, using largest-remainder rounding
// (Hare-Niemeyer). Independently-rounded percentages from a live feed almost
// never total 100; naive rounding shows users 49+49+1=99. Empty or all-zero
// input yields all zeros.
//
// Each value's exact share of the total is floored, then the shortfall from
// 100 is handed out one unit at a time to the largest fractional remainders.
// Ties break on the lower original index so the result is deterministic.
func NormalizeProbabilities(values []float64) []int {
	out := make([]int, len(values))
	if len(values) == 0 {
		return out
	}

	var total float64
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	if total <= 0 {
		return out
	}

	type remainder struct {
		index    int
		fraction float64
	}

	remainders := make([]remainder, len(values))
	assigned := 0
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		share := v / total * 100
		floored := int(math.Floor(share))
		out[i] = floored
		assigned += floored
		remainders[i] = remainder{index: i, fraction: share - float64(floored)}
	}

	sort.SliceStable(remainders, func(a, b int) bool {
		if remainders[a].fraction != remainders[b].fraction {
			return remainders[a].fraction > remainders[b].fraction
		}
		return remainders[a].index < remainders[b].index
	})

	for i := 0; i < 100-assigned && i < len(remainders); i++ {
		out[remainders[i].index]++
	}
	return out
}
