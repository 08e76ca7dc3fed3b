// Package canister defines the fundamental value types of the fuel-can
// packer: immutable size classes (Spec) and individual can instances
// (Can), plus the input normalizer that turns raw gross weights into
// cans with a derived fuel amount.
//
// Design notes:
//   - All quantities are non-negative integers of grams. There is no
//     fractional fuel anywhere in the model.
//   - A Can's fuel MAY exceed its Spec capacity at input time; such a
//     can is a legitimate donor candidate for the solver, not an error.
//   - A gross weight below the Spec's empty weight is a caller-side
//     input error and is rejected here with ErrGrossBelowEmpty.
//
// The three built-in MSR size classes (110 g / 227 g / 450 g) cover the
// common isobutane canisters; callers are free to supply their own
// Specs, and the solver groups cans by Spec key regardless of origin.
package canister
