package point

// Set holds distinct points under Equal, bucketed by Hash.
// A Set is not safe for concurrent use.
type Set struct {
	buckets map[uint64][]MaterialPoint
	n       int
}

func NewSet() *Set {
	return &Set{buckets: make(map[uint64][]MaterialPoint)}
}

// Add inserts p and reports whether it was absent.
func (s *Set) Add(p MaterialPoint) bool {
	h := Hash(p)
	for _, q := range s.buckets[h] {
		if q.Equal(p) {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], p)
	s.n++
	return true
}

func (s *Set) Contains(p MaterialPoint) bool {
	for _, q := range s.buckets[Hash(p)] {
		if q.Equal(p) {
			return true
		}
	}
	return false
}

// Remove deletes p and reports whether it was present.
func (s *Set) Remove(p MaterialPoint) bool {
	h := Hash(p)
	bucket := s.buckets[h]
	for i, q := range bucket {
		if !q.Equal(p) {
			continue
		}
		bucket = append(bucket[:i], bucket[i+1:]...)
		if len(bucket) == 0 {
			delete(s.buckets, h)
		} else {
			s.buckets[h] = bucket
		}
		s.n--
		return true
	}
	return false
}

func (s *Set) Len() int { return s.n }

// Points returns the members in no particular order.
func (s *Set) Points() []MaterialPoint {
	out := make([]MaterialPoint, 0, s.n)
	for _, bucket := range s.buckets {
		out = append(out, bucket...)
	}
	return out
}

type pairEntry[V any] struct {
	a, b  MaterialPoint
	value V
}

func (e pairEntry[V]) matches(a, b MaterialPoint) bool {
	return (e.a.Equal(a) && e.b.Equal(b)) || (e.a.Equal(b) && e.b.Equal(a))
}

// PairCache stores one value per unordered pair of points. Get(a, b) and
// Get(b, a) address the same entry, which suits symmetric quantities such as
// separation distance or interaction potential.
type PairCache[V any] struct {
	buckets map[uint64][]pairEntry[V]
	n       int
}

func NewPairCache[V any]() *PairCache[V] {
	return &PairCache[V]{buckets: make(map[uint64][]pairEntry[V])}
}

func (c *PairCache[V]) Get(a, b MaterialPoint) (V, bool) {
	for _, e := range c.buckets[HashPair(a, b)] {
		if e.matches(a, b) {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// Put stores v for the pair, replacing any previous value.
func (c *PairCache[V]) Put(a, b MaterialPoint, v V) {
	h := HashPair(a, b)
	bucket := c.buckets[h]
	for i := range bucket {
		if bucket[i].matches(a, b) {
			bucket[i].value = v
			return
		}
	}
	c.buckets[h] = append(bucket, pairEntry[V]{a: a, b: b, value: v})
	c.n++
}

// Delete removes the pair and reports whether it was present.
func (c *PairCache[V]) Delete(a, b MaterialPoint) bool {
	h := HashPair(a, b)
	bucket := c.buckets[h]
	for i := range bucket {
		if !bucket[i].matches(a, b) {
			continue
		}
		bucket = append(bucket[:i], bucket[i+1:]...)
		if len(bucket) == 0 {
			delete(c.buckets, h)
		} else {
			c.buckets[h] = bucket
		}
		c.n--
		return true
	}
	return false
}

func (c *PairCache[V]) Len() int { return c.n }
