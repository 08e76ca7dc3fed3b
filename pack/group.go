// Package pack - spec grouping and the pre-flight workload gate.
//
// Grouping partitions can indices by spec key, orders groups by first
// appearance in the input, and sorts each group's indices by descending
// fuel (original index as tiebreak). Every ordering rule exists for
// determinism: identical input must always walk an identical search
// tree and return a bit-identical plan.
//
// The workload gate estimates worst-case search cost BEFORE the search
// starts: the keep-set search visits at most Π(groupSize+1) leaves and
// each leaf costs O(n) or more, so the estimate is n·Π(groupSize+1).
// Rejecting over-ceiling inputs up front bounds worst-case latency
// deterministically; there is no mid-computation abort.

package pack

import (
	"sort"

	"github.com/NathanHowell/fuel-can-packer/canister"
)

// specGroup is one spec class with its member can indices.
type specGroup struct {
	spec    canister.Spec
	indices []int // sorted by descending fuel, ties by original index
}

// groupBySpec partitions can indices by spec key. Cans built from specs
// outside the default set still group correctly under their own key.
//
// Complexity: O(n log n).
func groupBySpec(cans []canister.Can) []specGroup {
	var (
		byKey  = make(map[string]int)
		groups []specGroup
	)
	// Group order is fixed by first appearance of each spec in the input.
	for i := range cans {
		key := cans[i].Spec.Key
		gi, ok := byKey[key]
		if !ok {
			gi = len(groups)
			byKey[key] = gi
			groups = append(groups, specGroup{spec: cans[i].Spec})
		}
		groups[gi].indices = append(groups[gi].indices, i)
	}

	// Descending fuel within each group; stable sort preserves original
	// index order among equal fuel amounts.
	for g := range groups {
		idx := groups[g].indices
		sort.SliceStable(idx, func(a, b int) bool {
			return cans[idx[a]].FuelGrams > cans[idx[b]].FuelGrams
		})
	}

	return groups
}

// workloadEstimate computes n·Π(groupSize+1), saturating at ceiling+1
// to avoid overflow on pathological group counts. A return value above
// ceiling means the input must be rejected.
//
// Complexity: O(len(groups)).
func workloadEstimate(n int, groups []specGroup, ceiling int) int {
	est := n
	for g := range groups {
		est *= len(groups[g].indices) + 1
		if est > ceiling {
			return ceiling + 1
		}
	}

	return est
}
