// Package pack computes an optimal consolidation plan for partially
// filled fuel canisters: which cans to keep, how much fuel each keeps,
// and which gram-for-gram transfers move fuel from discarded (or
// overfull) cans into kept ones.
//
// The objective is the lexicographic Score
// (totalEmptyWeightOfKept, transferEdgeCount, totalGramsTransferred),
// smaller is better: carry the least dead weight, then pour as few
// times as possible, then move the fewest grams.
//
// Algorithm outline:
//  1. Normalize input into capacity / empty weight / fuel arrays.
//     Zero total fuel short-circuits to the keep-nothing plan.
//  2. Group cans by spec, each group sorted by descending fuel.
//  3. Pre-flight workload gate: n·Π(groupSize+1) must stay under the
//     ceiling, bounding worst-case latency before any search runs.
//  4. Branch-and-bound DFS over per-group keep counts (not individual
//     cans — that is what keeps the search tractable), pruned by
//     suffix capacity feasibility and the incumbent's empty weight.
//  5. At each leaf, the transfer allocator builds a minimum-edge
//     assignment of donors to recipients: a greedy pass fixes an upper
//     bound, then iterative-deepening DFS with failure memoization
//     finds the edge-minimal plan.
//  6. Every candidate is validated against conservation and capacity
//     invariants before it may become the incumbent.
//
// Complexity:
//   - Keep-set search: O(Π(groupSize+1)) leaves worst case, each leaf
//     invoking the allocator; bounded a priori by the workload gate.
//   - Allocator: exponential in donor count worst case; in practice
//     tightly bounded by the greedy upper bound and memoized failures.
//
// The solver is pure and re-entrant: all search state (keep masks,
// capacity scratch, memo tables) is owned by one ComputePlan call and
// discarded on return. There are no locks, no goroutines, and no
// internal cancellation points; total work is bounded entirely by the
// workload gate and pruning.
//
// Errors (strict sentinels, match with errors.Is):
//   - ErrNoCans            — zero cans supplied.
//   - ErrWorkloadExceeded  — estimated search cost over the ceiling.
//   - ErrNoFeasiblePlan    — total fuel exceeds total capacity even
//     when every can is kept.
//   - ErrPlanInvariant     — internal defect in the allocator; never a
//     property of the input.
package pack
