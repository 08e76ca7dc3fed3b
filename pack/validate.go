// Package pack - plan invariant validation.
//
// Every candidate plan is checked before it may become the incumbent.
// A violation here is NOT an unsolvable instance: it is a defect in the
// allocator, surfaced distinctly as ErrPlanInvariant (wrapped with the
// offending detail) so callers can tell an algorithm bug apart from
// user-facing errors. Deterministic, side-effect free, O(n²) worst
// case over the transfer matrix.

package pack

import "fmt"

// validatePlan asserts the four plan invariants against the original
// capacities and initial fuel:
//  1. No discarded can ends with fuel.
//  2. Every kept can's final fuel lies in [0, capacity].
//  3. No can's total outgoing transfer exceeds its initial fuel.
//  4. Total final fuel equals total initial fuel exactly.
func validatePlan(plan *Plan, capacity, fuel []int) error {
	var totalInitial, totalFinal int
	for i := range plan.FinalFuel {
		totalInitial += fuel[i]
		totalFinal += plan.FinalFuel[i]

		if !plan.Keep[i] {
			if plan.FinalFuel[i] != 0 {
				return fmt.Errorf("discarded can %d holds %dg: %w", i, plan.FinalFuel[i], ErrPlanInvariant)
			}
		} else if plan.FinalFuel[i] < 0 || plan.FinalFuel[i] > capacity[i] {
			return fmt.Errorf("kept can %d final fuel %dg outside [0,%d]: %w",
				i, plan.FinalFuel[i], capacity[i], ErrPlanInvariant)
		}

		var outflow int
		for j := range plan.Transfers[i] {
			outflow += plan.Transfers[i][j]
		}
		if outflow > fuel[i] {
			return fmt.Errorf("can %d outflow %dg exceeds initial fuel %dg: %w",
				i, outflow, fuel[i], ErrPlanInvariant)
		}
	}
	if totalFinal != totalInitial {
		return fmt.Errorf("fuel not conserved: %dg final vs %dg initial: %w",
			totalFinal, totalInitial, ErrPlanInvariant)
	}

	return nil
}
