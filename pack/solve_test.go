// Package pack_test validates the solver end to end.
// Focus:
//  1. Strict sentinels (ErrNoCans, ErrWorkloadExceeded, ErrNoFeasiblePlan).
//  2. Correctness on hand-checked scenarios, including overfull input.
//  3. Plan invariants (conservation, capacity, transfer consistency)
//     on every returned plan.
//  4. Lexicographic empty-weight optimality against subset brute force.
//  5. Determinism: identical input yields a bit-identical plan.
package pack_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NathanHowell/fuel-can-packer/canister"
	"github.com/NathanHowell/fuel-can-packer/pack"
)

// ---------------------------
// Local helpers (small only).
// ---------------------------

func mk(spec canister.Spec, fuel int) canister.Can {
	return canister.Can{Spec: spec, FuelGrams: fuel, GrossGrams: spec.EmptyWeightGrams + fuel}
}

// requireValidPlan asserts the four plan invariants plus per-can
// transfer consistency: final == initial − outflow + inflow.
func requireValidPlan(t *testing.T, cans []canister.Can, plan *pack.Plan) {
	t.Helper()
	n := len(cans)
	require.Len(t, plan.Keep, n)
	require.Len(t, plan.FinalFuel, n)
	require.Len(t, plan.Transfers, n)

	var totalInitial, totalFinal int
	for i := 0; i < n; i++ {
		totalInitial += cans[i].FuelGrams
		totalFinal += plan.FinalFuel[i]

		if plan.Keep[i] {
			require.GreaterOrEqual(t, plan.FinalFuel[i], 0, "can %d", i)
			require.LessOrEqual(t, plan.FinalFuel[i], cans[i].Spec.CapacityGrams, "can %d", i)
		} else {
			require.Zero(t, plan.FinalFuel[i], "discarded can %d", i)
		}

		var outflow, inflow int
		for j := 0; j < n; j++ {
			outflow += plan.Transfers[i][j]
			inflow += plan.Transfers[j][i]
		}
		require.LessOrEqual(t, outflow, cans[i].FuelGrams, "can %d outflow", i)
		require.Equal(t, cans[i].FuelGrams-outflow+inflow, plan.FinalFuel[i], "can %d consistency", i)
	}
	require.Equal(t, totalInitial, totalFinal, "conservation")
}

// bruteMinEmptyWeight enumerates every keep subset and returns the
// minimum empty weight whose capacity covers the total fuel.
func bruteMinEmptyWeight(cans []canister.Can) int {
	total := canister.TotalFuel(cans)
	best := -1
	for mask := 0; mask < 1<<len(cans); mask++ {
		var capacity, weight int
		for i := range cans {
			if mask&(1<<i) != 0 {
				capacity += cans[i].Spec.CapacityGrams
				weight += cans[i].Spec.EmptyWeightGrams
			}
		}
		if capacity < total {
			continue
		}
		if best < 0 || weight < best {
			best = weight
		}
	}

	return best
}

// ---------------------------
// Pinned scenarios.
// ---------------------------

func TestComputePlan_TwoCansMergeIntoFuller(t *testing.T) {
	cans := []canister.Can{mk(canister.MSR227, 180), mk(canister.MSR227, 30)}

	plan, err := pack.ComputePlan(cans)
	require.NoError(t, err)
	requireValidPlan(t, cans, plan)

	require.Equal(t, []bool{true, false}, plan.Keep)
	require.Equal(t, []int{210, 0}, plan.FinalFuel)
	require.Equal(t, 30, plan.Transfers[1][0])
	require.Equal(t, pack.Score{EmptyWeight: 147, EdgeCount: 1, GramsMoved: 30}, plan.Score)
}

func TestComputePlan_ThreeClassesConsolidateIntoLargest(t *testing.T) {
	cans := []canister.Can{
		mk(canister.MSR110, 90),
		mk(canister.MSR227, 200),
		mk(canister.MSR450, 100),
	}

	plan, err := pack.ComputePlan(cans)
	require.NoError(t, err)
	requireValidPlan(t, cans, plan)

	require.Equal(t, []bool{false, false, true}, plan.Keep)
	require.Equal(t, []int{0, 0, 390}, plan.FinalFuel)
	require.Equal(t, 90, plan.Transfers[0][2])
	require.Equal(t, 200, plan.Transfers[1][2])
	require.Equal(t, pack.Score{EmptyWeight: 216, EdgeCount: 2, GramsMoved: 290}, plan.Score)
}

func TestComputePlan_AllEmptyFastPath(t *testing.T) {
	cans := []canister.Can{mk(canister.MSR227, 0), mk(canister.MSR110, 0)}

	plan, err := pack.ComputePlan(cans)
	require.NoError(t, err)
	requireValidPlan(t, cans, plan)

	require.Equal(t, []bool{false, false}, plan.Keep)
	require.Equal(t, []int{0, 0}, plan.FinalFuel)
	for _, row := range plan.Transfers {
		for _, amt := range row {
			require.Zero(t, amt)
		}
	}
	require.Equal(t, pack.Score{}, plan.Score)
}

func TestComputePlan_NoCans(t *testing.T) {
	_, err := pack.ComputePlan(nil)
	require.True(t, errors.Is(err, pack.ErrNoCans))
}

func TestComputePlan_WorkloadExceeded(t *testing.T) {
	var cans []canister.Can
	for i := 0; i < 150; i++ {
		cans = append(cans, mk(canister.MSR227, 40+i%20))
		cans = append(cans, mk(canister.MSR110, 5+i%5))
	}

	_, err := pack.ComputePlan(cans)
	require.True(t, errors.Is(err, pack.ErrWorkloadExceeded))
}

func TestComputePlan_NoFeasiblePlan(t *testing.T) {
	// 250 g of fuel in a single 227 g can: nothing can hold it all.
	cans := []canister.Can{mk(canister.MSR227, 250)}

	_, err := pack.ComputePlan(cans)
	require.True(t, errors.Is(err, pack.ErrNoFeasiblePlan))
}

func TestComputePlan_OverfullKeptCanShedsExcess(t *testing.T) {
	// 250 g in a 227 can plus 30 g in another: both must stay
	// (280 g > any single capacity), the overfull one sheds 23 g.
	cans := []canister.Can{mk(canister.MSR227, 250), mk(canister.MSR227, 30)}

	plan, err := pack.ComputePlan(cans)
	require.NoError(t, err)
	requireValidPlan(t, cans, plan)

	require.Equal(t, []bool{true, true}, plan.Keep)
	require.Equal(t, []int{227, 53}, plan.FinalFuel)
	require.Equal(t, 23, plan.Transfers[0][1])
	require.Equal(t, pack.Score{EmptyWeight: 294, EdgeCount: 1, GramsMoved: 23}, plan.Score)
}

func TestComputePlan_MultiDonorEdgeMinimal(t *testing.T) {
	// Two kept cans absorb three separate donors. A one-edge-per-donor
	// assignment exists (3 edges) while greedy splitting lands at 4;
	// the plan must carry the 3-edge allocation.
	cans := []canister.Can{
		mk(canister.MSR450, 435),
		mk(canister.MSR110, 47),
		mk(canister.MSR227, 80),
		mk(canister.MSR110, 5),
		mk(canister.MSR450, 32),
	}

	plan, err := pack.ComputePlan(cans)
	require.NoError(t, err)
	requireValidPlan(t, cans, plan)

	require.Equal(t, []bool{true, false, true, false, false}, plan.Keep)
	require.Equal(t, []int{440, 0, 159, 0, 0}, plan.FinalFuel)
	require.Equal(t, pack.Score{EmptyWeight: 363, EdgeCount: 3, GramsMoved: 84}, plan.Score)
}

// ---------------------------
// Properties.
// ---------------------------

func propertyInstances() [][]canister.Can {
	return [][]canister.Can{
		{mk(canister.MSR227, 180), mk(canister.MSR227, 30)},
		{mk(canister.MSR110, 90), mk(canister.MSR227, 200), mk(canister.MSR450, 100)},
		{mk(canister.MSR110, 40), mk(canister.MSR110, 70), mk(canister.MSR110, 5), mk(canister.MSR110, 100)},
		{mk(canister.MSR450, 400), mk(canister.MSR227, 220), mk(canister.MSR227, 7), mk(canister.MSR110, 108)},
		{mk(canister.MSR227, 250), mk(canister.MSR227, 30), mk(canister.MSR110, 12)},
		{mk(canister.MSR450, 30), mk(canister.MSR450, 20), mk(canister.MSR110, 10), mk(canister.MSR227, 1)},
	}
}

func TestComputePlan_InvariantsAndOptimalWeight(t *testing.T) {
	for _, cans := range propertyInstances() {
		plan, err := pack.ComputePlan(cans)
		require.NoError(t, err)
		requireValidPlan(t, cans, plan)
		require.Equal(t, bruteMinEmptyWeight(cans), plan.Score.EmptyWeight)
	}
}

func TestComputePlan_Deterministic(t *testing.T) {
	for _, cans := range propertyInstances() {
		first, err := pack.ComputePlan(cans)
		require.NoError(t, err)
		second, err := pack.ComputePlan(cans)
		require.NoError(t, err)
		require.Equal(t, first, second)
	}
}

func TestComputePlanWith_GreedyAllocatorStaysValid(t *testing.T) {
	opts := pack.DefaultOptions()
	opts.GreedyAllocator = true
	for _, cans := range propertyInstances() {
		plan, err := pack.ComputePlanWith(cans, opts)
		require.NoError(t, err)
		requireValidPlan(t, cans, plan)
		require.Equal(t, bruteMinEmptyWeight(cans), plan.Score.EmptyWeight)
	}
}

func TestComputePlanWith_CeilingOverride(t *testing.T) {
	cans := []canister.Can{mk(canister.MSR227, 180), mk(canister.MSR227, 30)}
	opts := pack.DefaultOptions()
	opts.WorkloadCeiling = 1

	_, err := pack.ComputePlanWith(cans, opts)
	require.True(t, errors.Is(err, pack.ErrWorkloadExceeded))
}

func TestFormatPlan_Report(t *testing.T) {
	cans := []canister.Can{mk(canister.MSR227, 180), mk(canister.MSR227, 30)}
	canister.AssignIDs(cans)
	plan, err := pack.ComputePlan(cans)
	require.NoError(t, err)

	text := pack.FormatPlan(cans, plan)
	require.Contains(t, text, "Transfer plan:")
	require.Contains(t, text, "add 30 g -> target fuel 210 g")
	require.Contains(t, text, "from Can #2 (177g start) (MSR 227g): 30 g")
	require.Contains(t, text, "Carry 1 cans, total gross weight 357 g.")
	require.Contains(t, text, "(left behind)")
}
