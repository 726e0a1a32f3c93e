// Package polytope builds achievable-wrench polytopes from actuation models.
//
// Given a structure matrix, per-actuator force bounds and a wrench offset,
// the builder enumerates every bound-extreme force combination, maps the
// 2^m combinations into wrench space and reduces their convex hull to the
// half-space description A·w <= b:
//
//   - [Polytope]: immutable H-representation plus the generating cloud
//   - [Builder]: enumeration, hull reduction, facet orientation
//   - [MaxActuators]: tractability bound on the exponential enumeration
//
// # Degeneracy
//
// A cloud that collapses below the wrench dimension (coincident force
// bounds, singular structure matrix) bounds no region. Build reports this
// as a [DegenerateError] matching [ErrDegenerate]:
//
//	p, err := polytope.Builder{}.Build(ctx, act)
//	if errors.Is(err, polytope.ErrDegenerate) {
//	    // empty wrench set, skip this pose
//	}
//
// # Thread Safety
//
// Build is a pure function over its inputs; concurrent builds need no
// coordination. The enumeration spreads across goroutines internally and
// honors context cancellation.
package polytope
