package vmath

import "math"

// Source is the randomness capability injected into the simulations
// Seeded implementations make frame sequences reproducible
type Source interface {
	// Float64 returns a value in [0, 1)
	Float64() float64
}

// FastRand is a xorshift64 generator, not safe for concurrent use
type FastRand struct {
	state uint64
}

// NewFastRand creates a generator, zero seed is remapped since xorshift stalls on zero state
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 uses the top 53 bits for a uniform value in [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Read fills p with pseudo-random bytes, satisfies io.Reader for uuid generation
func (r *FastRand) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := r.Next()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}

// Range returns a value in [lo, hi)
func Range(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Signed returns a value in [-1, 1)
func Signed(src Source) float64 {
	return src.Float64()*2 - 1
}

// Angle returns a direction in [0, 2π)
func Angle(src Source) float64 {
	return src.Float64() * 2 * math.Pi
}
