// Package point provides [MaterialPoint], a point mass advanced in time by a
// fixed-step constant-acceleration update.
//
// Points compare with [MaterialPoint.Equal] and hash with [Hash] so they can
// key a [Set] or a [PairCache] of pairwise interaction values.
//
// # Example
//
//	p, err := point.New(1, 2, 3, 2.0)
//	if err != nil {
//	    return err
//	}
//	p.Evolute(mgl64.Vec3{0, 0, 4}, 1.0)
//	// p.Position() == (1, 2, 4), p.Velocity() == (0, 0, 2)
//
// # Hashing
//
// [Hash] looks only at the z component of position and velocity plus the
// mass. It is consistent with Equal but collides for points that differ in x
// or y only. [HashPair] is commutative; use [HashOrderedPair] when the order
// of a pair matters.
package point
