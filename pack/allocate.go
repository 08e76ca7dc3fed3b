// Package pack - transfer allocator (greedy upper bound + iterative
// deepening with failure memoization).
//
// For a fixed keep mask the allocator decides which donor pours into
// which recipient. Terminology:
//   - baseline: fuel a kept can retains on its own, min(fuel, capacity).
//   - slack:    spare capacity of a kept can above its baseline.
//   - donor:    a discarded can's full fuel, or a kept-but-overfull
//     can's excess above capacity.
//
// Rationale (succinct):
//  1. Feasibility is cheap: total donor need must fit in total slack.
//  2. A greedy pass (pour each donor into the lowest-indexed recipient
//     with room) always succeeds when feasible and fixes a valid but
//     not edge-minimal upper bound on the edge count.
//  3. The true objective is edge-minimality. One edge per donor is an
//     obvious lower bound, so we run an iterative-deepening DFS over
//     edge budgets from that bound toward the greedy count. The first
//     budget that admits a complete assignment is edge-minimal by
//     construction.
//  4. Within one keep mask the grams moved always equal the total
//     donor need, so the gram objective never discriminates between
//     assignments here - only between keep masks.
//  5. Unsatisfiable subproblems repeat heavily across budgets and
//     branches; failures are memoized under a structural key
//     (donor index, edges left, descending capacity vector).
//
// Complexity:
//   - Greedy: O(D·R).
//   - Deepening search: exponential in D worst case, tightly cut by
//     the budget window [D, greedyPairs] and the failure memo.
//   - Memory: O(R) scratch + memo table, all owned by one call.

package pack

import (
	"encoding/binary"
	"sort"
)

// donor is a can's outgoing fuel obligation.
type donor struct {
	source int // can index
	amount int // grams that must leave; > 0
}

// recipient is a kept can's spare capacity above its own baseline.
type recipient struct {
	target int // can index
	slack  int // grams of room; > 0 at construction
}

// allocation is the allocator's result for one keep mask.
type allocation struct {
	edges     []TransferEdge // merged, deterministic order
	pairCount int            // number of distinct edges
	total     int            // grams moved == total donor need
}

// allocKey memoizes unsatisfiable subproblems. caps is the remaining
// recipient capacity vector, positive entries only, sorted descending
// and varint-encoded: structural, canonical, and a valid map key
// (a struct with a slice field cannot be one).
type allocKey struct {
	donor     int
	edgesLeft int
	caps      string
}

// allocEngine holds all allocator search state. A dedicated engine
// struct (instead of nested closures over shared slices) keeps every
// piece of mutable state an explicit parameter or field, which is both
// easier to test and immune to accidental sharing across calls.
type allocEngine struct {
	donors     []donor
	recipients []recipient
	caps       []int // remaining slack, indexed like recipients

	edges  []TransferEdge // assignment stack for the current branch
	memo   map[allocKey]struct{}
	keyBuf []byte // reused encoding scratch

	chosen []int // combination scratch, recipient positions
}

// deriveTransfers classifies cans under the keep mask into baselines,
// donors and recipients. Returned slices are ordered by can index,
// which fixes the deterministic donor processing order.
func deriveTransfers(keep []bool, capacity, fuel []int) (baseline []int, donors []donor, recipients []recipient) {
	n := len(fuel)
	baseline = make([]int, n)
	for i := 0; i < n; i++ {
		if !keep[i] {
			if fuel[i] > 0 {
				donors = append(donors, donor{source: i, amount: fuel[i]})
			}
			continue
		}
		baseline[i] = fuel[i]
		if baseline[i] > capacity[i] {
			baseline[i] = capacity[i]
			donors = append(donors, donor{source: i, amount: fuel[i] - capacity[i]})
		}
		if slack := capacity[i] - baseline[i]; slack > 0 {
			recipients = append(recipients, recipient{target: i, slack: slack})
		}
	}

	return baseline, donors, recipients
}

// greedyAssign pours each donor into the lowest-indexed recipient with
// spare room until exhausted. Returns the edge list and false when the
// fuel cannot all be placed (total need exceeds total slack).
func greedyAssign(donors []donor, recipients []recipient) ([]TransferEdge, bool) {
	caps := make([]int, len(recipients))
	for r := range recipients {
		caps[r] = recipients[r].slack
	}

	var edges []TransferEdge
	for _, d := range donors {
		left := d.amount
		for r := 0; r < len(caps) && left > 0; r++ {
			if caps[r] == 0 {
				continue
			}
			give := left
			if give > caps[r] {
				give = caps[r]
			}
			caps[r] -= give
			left -= give
			edges = append(edges, TransferEdge{From: d.source, To: recipients[r].target, AmountGrams: give})
		}
		if left > 0 {
			return nil, false
		}
	}

	return edges, true
}

// allocateTransfers computes the minimum-edge transfer assignment for a
// fixed keep mask. Returns ok=false when the mask is infeasible (donor
// need exceeds recipient slack). The greedy allocation is a safety-net
// fallback should the deepening search exhaust every budget; with
// consistent bounds that path is unreachable.
func allocateTransfers(keep []bool, capacity, fuel []int, greedyOnly bool) (allocation, []int, bool) {
	baseline, donors, recipients := deriveTransfers(keep, capacity, fuel)

	var totalNeed int
	for _, d := range donors {
		totalNeed += d.amount
	}
	if totalNeed == 0 {
		return allocation{}, baseline, true
	}

	var totalSlack int
	for _, r := range recipients {
		totalSlack += r.slack
	}
	if totalNeed > totalSlack {
		return allocation{}, nil, false
	}

	greedyEdges, ok := greedyAssign(donors, recipients)
	if !ok {
		return allocation{}, nil, false
	}
	greedyEdges = mergeEdges(greedyEdges)
	best := allocation{edges: greedyEdges, pairCount: len(greedyEdges), total: totalNeed}
	// Nothing to search when greedy already hit the one-edge-per-donor
	// lower bound (or the search is disabled by policy).
	if greedyOnly || best.pairCount == len(donors) {
		return best, baseline, true
	}

	e := &allocEngine{
		donors:     donors,
		recipients: recipients,
		caps:       make([]int, len(recipients)),
		memo:       make(map[allocKey]struct{}),
		chosen:     make([]int, 0, len(recipients)),
	}
	for budget := len(donors); budget < best.pairCount; budget++ {
		for r := range recipients {
			e.caps[r] = recipients[r].slack
		}
		e.edges = e.edges[:0]
		if e.assign(0, budget) {
			edges := mergeEdges(e.edges)

			return allocation{edges: edges, pairCount: len(edges), total: totalNeed}, baseline, true
		}
	}

	return best, baseline, true
}

// key builds the structural memo key for the current caps state.
func (e *allocEngine) key(donorIdx, edgesLeft int) allocKey {
	sorted := make([]int, 0, len(e.caps))
	for _, c := range e.caps {
		if c > 0 {
			sorted = append(sorted, c)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	e.keyBuf = e.keyBuf[:0]
	for _, c := range sorted {
		e.keyBuf = binary.AppendUvarint(e.keyBuf, uint64(c))
	}

	return allocKey{donor: donorIdx, edgesLeft: edgesLeft, caps: string(e.keyBuf)}
}

// assign tries to place donors[donorIdx:] using at most edgesLeft
// edges. Donors are processed in ascending index order; for each donor
// the piece count grows from the minimum admissible, and for each piece
// count every recipient combination (ascending positions) is tried.
// Amounts are assigned largest-remaining-capacity first so that any
// covering combination yields a valid split. First success wins.
func (e *allocEngine) assign(donorIdx, edgesLeft int) bool {
	if donorIdx == len(e.donors) {
		return true
	}
	key := e.key(donorIdx, edgesLeft)
	if _, failed := e.memo[key]; failed {
		return false
	}

	need := e.donors[donorIdx].amount
	rest := len(e.donors) - donorIdx - 1 // each later donor needs ≥1 edge

	// Picks of earlier donors stay on the stack across the recursion;
	// everything from base on belongs to THIS donor only.
	base := len(e.chosen)

	minPieces, feasible := e.minPiecesFor(need)
	if feasible {
		for p := minPieces; p <= edgesLeft-rest; p++ {
			if e.combo(donorIdx, p, need, edgesLeft, 0, base) {
				return true
			}
		}
	}

	e.memo[key] = struct{}{}

	return false
}

// minPiecesFor returns the smallest number of recipients whose combined
// remaining capacity covers need (using the largest capacities), and
// whether covering is possible at all.
func (e *allocEngine) minPiecesFor(need int) (int, bool) {
	sorted := make([]int, 0, len(e.caps))
	for _, c := range e.caps {
		if c > 0 {
			sorted = append(sorted, c)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	var sum int
	for p, c := range sorted {
		sum += c
		if sum >= need {
			return p + 1, true
		}
	}

	return 0, false
}

// combo enumerates combinations of exactly p recipients (positions ≥
// start, remaining capacity > 0) for the current donor and recurses on
// success. Chosen positions live in e.chosen from base on; entries
// below base belong to earlier donors and must not be touched.
func (e *allocEngine) combo(donorIdx, p, need, edgesLeft, start, base int) bool {
	if p == 0 {
		return e.pour(donorIdx, need, edgesLeft, base)
	}
	// Not enough positive-capacity recipients left to reach p picks.
	avail := 0
	for r := start; r < len(e.caps); r++ {
		if e.caps[r] > 0 {
			avail++
		}
	}
	if avail < p {
		return false
	}

	for r := start; r <= len(e.caps)-1; r++ {
		if e.caps[r] == 0 {
			continue
		}
		e.chosen = append(e.chosen, r)
		if e.combo(donorIdx, p-1, need, edgesLeft, r+1, base) {
			return true
		}
		e.chosen = e.chosen[:len(e.chosen)-1]
	}

	return false
}

// pour splits the current donor's need across its chosen recipients
// (e.chosen[base:] - ONLY this donor's picks, earlier donors' picks
// stay below base), largest remaining capacity first, then recurses on
// the next donor. Fails when the combination cannot cover the need or
// would leave a zero-amount edge (the same coverage is then reachable
// with fewer pieces).
func (e *allocEngine) pour(donorIdx, need, edgesLeft, base int) bool {
	chosen := e.chosen[base:]
	var total int
	for _, r := range chosen {
		total += e.caps[r]
	}
	if total < need {
		return false
	}

	// Order the picks by descending remaining capacity (position tiebreak)
	// without disturbing the shared scratch slice.
	order := make([]int, len(chosen))
	copy(order, chosen)
	sort.SliceStable(order, func(a, b int) bool {
		return e.caps[order[a]] > e.caps[order[b]]
	})

	d := e.donors[donorIdx]
	left := need
	given := make([]int, len(order))
	for i, r := range order {
		give := left
		if give > e.caps[r] {
			give = e.caps[r]
		}
		if give == 0 {
			// A piece with nothing to pour: this combination is wasteful.
			e.unpour(order, given)

			return false
		}
		e.caps[r] -= give
		given[i] = give
		left -= give
		e.edges = append(e.edges, TransferEdge{From: d.source, To: e.recipients[r].target, AmountGrams: give})
	}

	if e.assign(donorIdx+1, edgesLeft-len(order)) {
		return true
	}
	e.edges = e.edges[:len(e.edges)-len(order)]
	e.unpour(order, given)

	return false
}

// unpour restores capacities consumed by a rejected pour.
func (e *allocEngine) unpour(order, given []int) {
	for i, r := range order {
		e.caps[r] += given[i]
	}
}

// mergeEdges sums duplicate (from,to) pairs and returns the edge list
// in deterministic (from, to) order.
func mergeEdges(edges []TransferEdge) []TransferEdge {
	if len(edges) == 0 {
		return nil
	}
	merged := make(map[[2]int]int, len(edges))
	for _, e := range edges {
		merged[[2]int{e.From, e.To}] += e.AmountGrams
	}
	out := make([]TransferEdge, 0, len(merged))
	for k, amount := range merged {
		out = append(out, TransferEdge{From: k[0], To: k[1], AmountGrams: amount})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].From != out[b].From {
			return out[a].From < out[b].From
		}

		return out[a].To < out[b].To
	})

	return out
}
