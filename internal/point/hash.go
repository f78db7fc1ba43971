package point

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Hash combines the last position component, the last velocity component and
// the mass. Equal points always hash identically, but points that differ only
// in their x or y components collide.
func Hash(p MaterialPoint) uint64 {
	return ((hashFloat(p.position[2]) ^ (hashFloat(p.velocity[2]) << 1)) >> 1) ^
		(hashFloat(p.mass) << 1)
}

// HashPair hashes a pair of points as Hash(a) ^ Hash(b). The combination is
// commutative, so HashPair(a, b) == HashPair(b, a), and HashPair(a, a) == 0.
func HashPair(a, b MaterialPoint) uint64 {
	return Hash(a) ^ Hash(b)
}

// HashOrderedPair hashes (a, b) so that swapping the operands changes the
// result for distinct hashes. Use it for directed interaction caches.
func HashOrderedPair(a, b MaterialPoint) uint64 {
	h := Hash(a)
	h ^= Hash(b) + 0x9e3779b97f4a7c15 + (h << 6) + (h >> 2)
	return h
}

// hashFloat hashes the IEEE bits of v. Both zeros hash to 0 since +0 == -0.
func hashFloat(v float64) uint64 {
	if v == 0 {
		return 0
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	return xxhash.Sum64(buf[:])
}
