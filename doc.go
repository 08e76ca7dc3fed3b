// Package fuelcanpacker consolidates partially-filled fuel canisters
// into the minimum carried weight: decide which cans to keep, how much
// fuel each keeps, and which gram-for-gram transfers move fuel from
// discarded or overfull cans into kept ones.
//
// Everything is organized under three subpackages plus one command:
//
//	canister/ — fundamental Spec & Can types, gross-weight normalizer
//	pack/     — the combinatorial core: keep-set branch-and-bound,
//	            minimum-edge transfer allocator, plan validation
//	envelope/ — request/response boundary for background-worker offload
//	cmd/fuelpack — interactive CLI front-end
//
// Quick example (two 227 g cans, 327 g and 177 g gross):
//
//	cans, _ := canister.FromGross(canister.MSR227, []int{327, 177})
//	plan, _ := pack.ComputePlan(cans)
//	// plan keeps the fuller can at 210 g fuel and pours 30 g into it.
//
// The solver is pure, deterministic and re-entrant; see pack's package
// documentation for the algorithm and the error contract.
package fuelcanpacker
