// Package sphere approximates wrench polytopes by inscribed and bounding
// spheres, the scalar quality measures used for capacity analysis.
//
// All modes consume a built [polytope.Polytope] and return a fresh immutable
// [Sphere]:
//
//   - [Approximator.Capacity]: margin sphere at a fixed center, closed form
//   - [Approximator.Chebyshev]: largest inscribed sphere over all centers
//   - [Approximator.MaxContaining]: largest sphere keeping a reference
//     wrench enclosed within a buffer
//   - [Approximator.CoriolisAdjusted]: provisional direction-aware margin
//
// # Conventions
//
// A zero or negative radius is a valid result meaning no enclosed sphere
// exists at that center; +Inf margins are first-class values and are never
// clamped. An empty polytope is reported as [ErrEmptyPolytope] before any
// arithmetic runs. Optimizer-backed modes surface infeasibility and
// non-convergence as typed errors distinguishable from a zero radius.
package sphere
