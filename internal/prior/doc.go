// Package prior implements the prior-to-XML serialization engine.
//
// A Prior binds a named model parameter (origin time, reproductive number,
// sampling proportion, ...) to one or more probability distributions,
// numeric bounds, and an initial state. It renders the fragments the
// inference engine consumes: the prior declaration, the state node, the
// trace logger, and — for sliced (skyline) priors — the slice functions,
// rate-change times, and per-slice loggers.
//
// Domain rules live here and nowhere else:
//   - which roles may be sliced (the birth-death skyline whitelist)
//   - how slice count determines the number of generated fragments
//   - how rate-change-time tag names derive from the prior's identity
//
// Priors are immutable after construction; every renderer is a pure
// derivation, so the same instance always produces byte-identical output.
package prior
