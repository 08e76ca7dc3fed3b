// Package pack - keep-set search (branch-and-bound over group keep
// counts).
//
// The search assigns a "kept count" to each spec group, depth first,
// group by group. Branching over counts per GROUP rather than over
// individual cans is what keeps the search tractable: within a group
// every can has identical capacity and empty weight, so a count fixes
// the branch's capacity and empty weight exactly. A count is then
// materialized as the k FULLEST cans of the group (groups are
// pre-sorted by descending fuel): that choice moves the fewest grams
// for the count and keeps the search deterministic, but which k cans
// are kept does change the donor/recipient structure, so at equal
// empty weight a different member choice can occasionally admit fewer
// transfer edges. The count state machine deliberately does not
// enumerate member choices; the trade-off is recorded in DESIGN.md.
//
// Pruning rules, applied in order at every branch:
//  1. Suffix-capacity feasibility: if the capacity chosen so far plus
//     the maximum capacity of all remaining groups cannot reach the
//     total fuel, the branch is dead.
//  2. Weight bound: once a complete incumbent exists, a partial empty
//     weight strictly above the incumbent's cannot improve the score.
//     Strictness matters - an equal-weight completion may still win on
//     edge count. Counts are tried in increasing order, so weight only
//     grows along the count axis and the remaining counts of the same
//     group can be skipped together.
//
// At each leaf the allocator + validator produce a candidate plan; the
// incumbent keeps the lexicographically smallest Score. The only
// non-user error that can escape is ErrPlanInvariant from validation.

package pack

// searchEngine holds all keep-set search state for one solve call.
type searchEngine struct {
	n         int
	groups    []specGroup
	capacity  []int // per can
	empty     []int // per can
	fuel      []int // per can
	totalFuel int

	greedyOnly bool

	// maxCapSuffix[g] = Σ over groups ≥ g of groupSize·groupCapacity.
	maxCapSuffix []int

	keepCounts []int  // current count per group
	keep       []bool // scratch mask, rebuilt per leaf

	best      Plan
	bestScore Score
	found     bool
}

// newSearchEngine precomputes the capacity suffix and allocates scratch.
func newSearchEngine(groups []specGroup, capacity, empty, fuel []int, totalFuel int, greedyOnly bool) *searchEngine {
	e := &searchEngine{
		n:          len(fuel),
		groups:     groups,
		capacity:   capacity,
		empty:      empty,
		fuel:       fuel,
		totalFuel:  totalFuel,
		greedyOnly: greedyOnly,
		keepCounts: make([]int, len(groups)),
		keep:       make([]bool, len(fuel)),
	}
	e.maxCapSuffix = make([]int, len(groups)+1)
	for g := len(groups) - 1; g >= 0; g-- {
		e.maxCapSuffix[g] = e.maxCapSuffix[g+1] + len(groups[g].indices)*groups[g].spec.CapacityGrams
	}

	return e
}

// dfs explores keep counts for group g. capSoFar/weightSoFar accumulate
// the capacity and empty weight of the partial assignment. The only
// error is a defect signal from leaf validation.
func (e *searchEngine) dfs(g, capSoFar, weightSoFar int) error {
	if g == len(e.groups) {
		return e.leaf(weightSoFar)
	}

	var (
		grp    = &e.groups[g]
		size   = len(grp.indices)
		capPer = grp.spec.CapacityGrams
		wPer   = grp.spec.EmptyWeightGrams
	)
	for k := 0; k <= size; k++ {
		c := capSoFar + k*capPer
		w := weightSoFar + k*wPer

		// Prune 1: even the full capacity of all later groups cannot
		// close the gap to totalFuel. Larger k may still succeed.
		if c+e.maxCapSuffix[g+1] < e.totalFuel {
			continue
		}
		// Prune 2: weight grows with k, so the whole remainder of this
		// count axis is dominated once the incumbent weight is passed.
		if e.found && w > e.bestScore.EmptyWeight {
			break
		}

		e.keepCounts[g] = k
		if err := e.dfs(g+1, c, w); err != nil {
			return err
		}
	}
	e.keepCounts[g] = 0

	return nil
}

// leaf materializes the keep mask, runs the allocator, validates the
// candidate plan and updates the incumbent on improvement.
func (e *searchEngine) leaf(emptyWeight int) error {
	for i := range e.keep {
		e.keep[i] = false
	}
	for g := range e.groups {
		// The k fullest cans of the group (indices are fuel-descending).
		for _, idx := range e.groups[g].indices[:e.keepCounts[g]] {
			e.keep[idx] = true
		}
	}

	alloc, baseline, ok := allocateTransfers(e.keep, e.capacity, e.fuel, e.greedyOnly)
	if !ok {
		return nil // infeasible mask, not an error
	}

	score := Score{EmptyWeight: emptyWeight, EdgeCount: alloc.pairCount, GramsMoved: alloc.total}
	if e.found && !score.Less(e.bestScore) {
		return nil
	}

	plan := buildPlan(e.keep, baseline, alloc, e.n)
	plan.Score = score
	if err := validatePlan(&plan, e.capacity, e.fuel); err != nil {
		return err
	}

	e.best = plan
	e.bestScore = score
	e.found = true

	return nil
}

// buildPlan assembles the explicit Plan from a keep mask, per-can
// baselines and the transfer allocation.
func buildPlan(keep []bool, baseline []int, alloc allocation, n int) Plan {
	plan := Plan{
		Keep:      make([]bool, n),
		FinalFuel: make([]int, n),
		Transfers: make([][]int, n),
	}
	copy(plan.Keep, keep)
	for i := 0; i < n; i++ {
		plan.Transfers[i] = make([]int, n)
		if keep[i] {
			plan.FinalFuel[i] = baseline[i]
		}
	}
	for _, edge := range alloc.edges {
		plan.Transfers[edge.From][edge.To] += edge.AmountGrams
		plan.FinalFuel[edge.To] += edge.AmountGrams
	}

	return plan
}
