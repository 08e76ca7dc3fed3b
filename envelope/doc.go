// Package envelope is the thin request/response boundary around the
// solver, used when the host application offloads a solve to a
// background worker: an opaque correlation id and a monotonic sequence
// number in, a plan or an error string out. It is a pass-through - no
// algorithm logic lives here.
//
// Cancellation is cooperative at this boundary only: a request with a
// newer sequence number supersedes an older in-flight one, and the
// superseded result is discarded rather than interrupted mid-solve.
// The solver itself has no internal cancellation points; its work is
// bounded by the pack package's pre-flight workload gate.
package envelope
