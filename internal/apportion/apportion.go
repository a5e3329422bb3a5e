// Package apportion rounds fractional shares to integer percentages that
// sum to exactly 100, using the largest remainder method.
package apportion

import (
	"math"
	"sort"
)

// Apportion converts proportions (each in [0,1]) to integers summing to 100.
// Ties on fractional remainder are broken by input order, and the sort is
// stable, so the output is deterministic across platforms. An empty vector,
// or one whose entries are all zero, yields an all-zero vector of the same
// length.
//
// When floating-point drift makes the floored sum exceed 100, the same
// remainder ranking is reused to subtract. That mirrors the historical
// behavior and is kept as-is; see DESIGN.md.
func Apportion(proportions []float64) []int {
	out := make([]int, len(proportions))
	if len(proportions) == 0 {
		return out
	}
	total := 0.0
	for _, p := range proportions {
		total += p
	}
	if total == 0 {
		return out
	}

	remainders := make([]float64, len(proportions))
	sum := 0
	for i, p := range proportions {
		scaled := p * 100
		floor := int(math.Floor(scaled))
		out[i] = floor
		remainders[i] = scaled - float64(floor)
		sum += floor
	}

	needed := 100 - sum
	if needed == 0 {
		return out
	}

	order := make([]int, len(proportions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})

	step := 1
	if needed < 0 {
		step = -1
		needed = -needed
	}
	for i := 0; i < needed && i < len(order); i++ {
		out[order[i]] += step
	}
	return out
}
