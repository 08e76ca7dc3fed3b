package canister

import (
	"errors"
	"fmt"
)

// ErrGrossBelowEmpty is returned by FromGross when a gross weight is
// lighter than the spec's empty can weight (negative fuel).
var ErrGrossBelowEmpty = errors.New("canister: gross weight below empty can weight")

// Spec is the immutable size class of a canister.
// CapacityGrams and EmptyWeightGrams are positive integers.
type Spec struct {
	// Key identifies the spec; cans are grouped by this value.
	Key string `json:"key"`

	// Name is the human-readable class name, e.g. "MSR 227g".
	Name string `json:"name"`

	// CapacityGrams is the nominal fuel capacity.
	CapacityGrams int `json:"capacityGrams"`

	// EmptyWeightGrams is the weight of the empty can.
	EmptyWeightGrams int `json:"emptyWeightGrams"`
}

// Built-in MSR isobutane size classes.
var (
	MSR110 = Spec{Key: "msr_110", Name: "MSR 110g", CapacityGrams: 110, EmptyWeightGrams: 101}
	MSR227 = Spec{Key: "msr_227", Name: "MSR 227g", CapacityGrams: 227, EmptyWeightGrams: 147}
	MSR450 = Spec{Key: "msr_450", Name: "MSR 450g", CapacityGrams: 450, EmptyWeightGrams: 216}
)

// DefaultSpecs returns the built-in size classes in canonical order.
// The slice is freshly allocated; callers may reorder or extend it.
func DefaultSpecs() []Spec {
	return []Spec{MSR110, MSR227, MSR450}
}

// Can is one physical canister instance.
type Can struct {
	// ID is a caller-supplied stable identifier (see AssignIDs).
	ID string `json:"id"`

	// Spec is the can's size class.
	Spec Spec `json:"spec"`

	// GrossGrams is the measured total weight (can + fuel).
	GrossGrams int `json:"grossGrams"`

	// FuelGrams is the fuel available before any transfer.
	// May exceed Spec.CapacityGrams (overfull input).
	FuelGrams int `json:"fuelGrams"`
}

// FromGross normalizes raw gross weights into cans of the given spec.
// Fuel is derived as gross − emptyWeight.
//
// Errors: ErrGrossBelowEmpty (wrapped with the offending weight) when
// any gross weight is below the spec's empty weight.
//
// Complexity: O(len(gross)).
func FromGross(spec Spec, gross []int) ([]Can, error) {
	var cans = make([]Can, 0, len(gross))
	for _, g := range gross {
		fuel := g - spec.EmptyWeightGrams
		if fuel < 0 {
			return nil, fmt.Errorf("gross weight %dg for %s is lighter than empty can weight %dg: %w",
				g, spec.Name, spec.EmptyWeightGrams, ErrGrossBelowEmpty)
		}
		cans = append(cans, Can{Spec: spec, GrossGrams: g, FuelGrams: fuel})
	}

	return cans, nil
}

// AssignIDs fills in a stable, human-readable ID per can, derived from
// the can's position and starting gross weight. Deterministic: the same
// input order always yields the same IDs.
func AssignIDs(cans []Can) {
	for i := range cans {
		cans[i].ID = fmt.Sprintf("Can #%d (%dg start)", i+1, cans[i].GrossGrams)
	}
}

// TotalFuel sums the initial fuel across all cans.
func TotalFuel(cans []Can) int {
	var total int
	for i := range cans {
		total += cans[i].FuelGrams
	}

	return total
}
