package engine

// ---------------------------------------------------------------------------
// xorshift64* RNG
// ---------------------------------------------------------------------------

// Source is a seedable pseudo-random generator whose whole internal state is a
// single uint64, so it can be persisted next to a game and resumed later.
// The same seed and call sequence always yield the same values.
//
// A Source is not safe for concurrent use.
type Source struct {
	state uint64
}

// NewSource returns a Source seeded with seed.
func NewSource(seed uint64) *Source {
	s := &Source{}
	s.SetState(seed)
	return s
}

// State exports the internal state.
func (s *Source) State() uint64 { return s.state }

// SetState restores a state previously returned by State.
func (s *Source) SetState(state uint64) {
	if state == 0 {
		state = 1 // xorshift can't start at 0
	}
	s.state = state
}

// Uint64 returns the next raw 64-bit value.
func (s *Source) Uint64() uint64 {
	x := s.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	s.state = x
	return x * 2685821657736338717
}

// Float64 returns a value in [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.Uint64()>>11) / (1 << 53)
}

// IntN returns a value in [0, n). It panics if n <= 0.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		panic("engine: IntN called with non-positive bound")
	}
	return int(s.Uint64() % uint64(n))
}

// Fork returns an independent Source seeded from s. Forking advances s by one
// step, so forks taken in the same order are reproducible.
func (s *Source) Fork() *Source { return NewSource(s.Uint64()) }

// Shuffle returns a shuffled copy of xs (Fisher-Yates). xs is left untouched.
func Shuffle[T any](s *Source, xs []T) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	for i := len(out) - 1; i > 0; i-- {
		j := s.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Choice returns a uniformly chosen element of xs. It panics on an empty slice.
func Choice[T any](s *Source, xs []T) T {
	return xs[s.IntN(len(xs))]
}

// Weighted pairs an item with a non-negative weight.
type Weighted[T any] struct {
	Item   T
	Weight float64
}

// WeightedChoice picks an item with probability proportional to its weight.
// When every weight is zero the choice is uniform. It panics on an empty slice.
func WeightedChoice[T any](s *Source, items []Weighted[T]) T {
	var total float64
	for _, it := range items {
		if it.Weight > 0 {
			total += it.Weight
		}
	}
	if total == 0 {
		return items[s.IntN(len(items))].Item
	}
	r := s.Float64() * total
	for _, it := range items {
		if it.Weight <= 0 {
			continue
		}
		if r < it.Weight {
			return it.Item
		}
		r -= it.Weight
	}
	// Float rounding can leave r marginally above the last bucket.
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Weight > 0 {
			return items[i].Item
		}
	}
	return items[len(items)-1].Item
}
