// Package pack - unified solver entry point.
//
// ComputePlan stages the solve strictly in order: normalize → trivial
// fast path → group → workload gate → keep-set search. Each stage
// either produces data for the next or fails with one of the package
// sentinels; no stage retries.
//
// Determinism contract: identical input (same can order, fuel, specs)
// always yields a bit-identical Plan. Every ordering in the pipeline
// (group order, in-group sort, count iteration, donor order, recipient
// combinations) is fixed precisely to uphold this.

package pack

import "github.com/NathanHowell/fuel-can-packer/canister"

// ComputePlan computes the optimal consolidation plan for cans using
// DefaultOptions. See ComputePlanWith.
func ComputePlan(cans []canister.Can) (*Plan, error) {
	return ComputePlanWith(cans, DefaultOptions())
}

// ComputePlanWith computes the optimal consolidation plan for cans.
//
// Contracts:
//   - cans is read-only throughout; all search state is per-call and
//     the function is safe to invoke from concurrent goroutines on
//     distinct or even shared inputs.
//   - The returned plan minimizes the lexicographic Score
//     (emptyWeight, edgeCount, gramsMoved).
//
// Errors:
//   - ErrNoCans for empty input.
//   - ErrWorkloadExceeded when the pre-flight cost estimate is over
//     the ceiling (no search is started).
//   - ErrNoFeasiblePlan when total fuel exceeds the combined capacity
//     of every can.
//   - ErrPlanInvariant (wrapped) on an internal allocator defect.
func ComputePlanWith(cans []canister.Can, opts Options) (*Plan, error) {
	n := len(cans)
	if n == 0 {
		return nil, ErrNoCans
	}

	// Normalize into index-aligned arrays.
	var (
		capacity  = make([]int, n)
		empty     = make([]int, n)
		fuel      = make([]int, n)
		totalFuel int
	)
	for i := range cans {
		capacity[i] = cans[i].Spec.CapacityGrams
		empty[i] = cans[i].Spec.EmptyWeightGrams
		fuel[i] = cans[i].FuelGrams
		totalFuel += fuel[i]
	}

	// Fast path: nothing to carry, keep nothing, no search.
	if totalFuel == 0 {
		plan := emptyPlan(n)

		return &plan, nil
	}

	groups := groupBySpec(cans)

	ceiling := opts.WorkloadCeiling
	if ceiling <= 0 {
		ceiling = DefaultWorkloadCeiling
	}
	if workloadEstimate(n, groups, ceiling) > ceiling {
		return nil, ErrWorkloadExceeded
	}

	e := newSearchEngine(groups, capacity, empty, fuel, totalFuel, opts.GreedyAllocator)
	if err := e.dfs(0, 0, 0); err != nil {
		return nil, err
	}
	if !e.found {
		// Only reachable when even keeping every can cannot hold totalFuel.
		return nil, ErrNoFeasiblePlan
	}

	return &e.best, nil
}

// emptyPlan is the trivial keep-nothing plan for n cans.
func emptyPlan(n int) Plan {
	plan := Plan{
		Keep:      make([]bool, n),
		FinalFuel: make([]int, n),
		Transfers: make([][]int, n),
	}
	for i := range plan.Transfers {
		plan.Transfers[i] = make([]int, n)
	}

	return plan
}
