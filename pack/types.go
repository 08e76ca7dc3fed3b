// Package pack: sentinel error set, result types and solver options.
// All solver entry points return ONLY these sentinels for user-facing
// failures, and tests match them via errors.Is. ErrPlanInvariant is the
// single defect-class sentinel; it is wrapped with context at the point
// of detection (fmt.Errorf("...: %w", ErrPlanInvariant)) so errors.Is
// still matches.

package pack

import "errors"

var (
	// ErrNoCans is returned when zero cans are supplied.
	ErrNoCans = errors.New("pack: no cans provided")

	// ErrWorkloadExceeded is returned by the pre-flight workload gate
	// when the estimated search cost exceeds the ceiling. Reduce the
	// number of cans and retry; the solver never aborts mid-search.
	ErrWorkloadExceeded = errors.New("pack: estimated search cost exceeds ceiling; reduce the number of cans")

	// ErrNoFeasiblePlan is returned when the total fuel exceeds the
	// combined capacity of every can, so no keep-set can hold it.
	ErrNoFeasiblePlan = errors.New("pack: total fuel exceeds combined capacity of all cans")

	// ErrPlanInvariant marks an internal invariant violation detected
	// by the plan validator. This is a defect in the allocator, not an
	// unsolvable instance; callers should surface it, not handle it.
	ErrPlanInvariant = errors.New("pack: internal plan invariant violated")
)

// DefaultWorkloadCeiling bounds the pre-flight search cost estimate:
// n · Π(groupSize+1) across spec groups. Practically this admits up to
// roughly 300 mixed cans, more when one spec dominates.
const DefaultWorkloadCeiling = 5_000_000

// TransferEdge is one donor-to-recipient gram flow.
type TransferEdge struct {
	// From is the donor can index.
	From int `json:"from"`

	// To is the recipient can index.
	To int `json:"to"`

	// AmountGrams is the transferred amount; always > 0.
	AmountGrams int `json:"amountGrams"`
}

// Plan is a complete consolidation plan over the input cans.
//
// Invariants (enforced by the validator on every candidate):
//   - FinalFuel[i] == 0 whenever Keep[i] is false.
//   - 0 ≤ FinalFuel[i] ≤ capacity[i] whenever Keep[i] is true.
//   - Row-sum of Transfers[i] never exceeds can i's initial fuel.
//   - Sum of FinalFuel equals total initial fuel exactly.
type Plan struct {
	// Keep marks which cans are retained.
	Keep []bool `json:"keep"`

	// FinalFuel is the fuel per can after all transfers.
	FinalFuel []int `json:"finalFuel"`

	// Transfers is the donors×recipients gram matrix.
	Transfers [][]int `json:"transfers"`

	// Score is the plan's objective value.
	Score Score `json:"score"`
}

// Score is the lexicographic objective triple; smaller is better.
type Score struct {
	// EmptyWeight is the summed empty weight of kept cans.
	EmptyWeight int `json:"emptyWeight"`

	// EdgeCount is the number of distinct transfer edges.
	EdgeCount int `json:"edgeCount"`

	// GramsMoved is the total grams transferred.
	GramsMoved int `json:"gramsMoved"`
}

// Less reports whether s is strictly better than other.
func (s Score) Less(other Score) bool {
	if s.EmptyWeight != other.EmptyWeight {
		return s.EmptyWeight < other.EmptyWeight
	}
	if s.EdgeCount != other.EdgeCount {
		return s.EdgeCount < other.EdgeCount
	}

	return s.GramsMoved < other.GramsMoved
}

// Options configures the solver.
//
// Zero values select defaults via normalization in ComputePlanWith, so
// Options{} and DefaultOptions() behave identically.
type Options struct {
	// WorkloadCeiling overrides DefaultWorkloadCeiling when > 0.
	WorkloadCeiling int

	// GreedyAllocator skips the edge-minimizing search and accepts the
	// greedy allocation as-is (testing/benchmarking only; plans remain
	// valid but may use more transfer edges than necessary).
	GreedyAllocator bool
}

// DefaultOptions returns the production configuration.
func DefaultOptions() Options {
	return Options{WorkloadCeiling: DefaultWorkloadCeiling}
}
