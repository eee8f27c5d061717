package arena

// Rand is a tiny deterministic RNG (xorshift64*). Its single-word state is
// captured in snapshots so a restored match replays the exact same random
// sequence, orbit flips and spawn rolls included.
type Rand struct {
	s uint64
}

// NewRand seeds a Rand. A zero seed is remapped; xorshift state must be
// nonzero.
func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = 1
	}
	return &Rand{s: seed}
}

// State returns the current generator state for serialization.
func (r *Rand) State() uint64 { return r.s }

// SetState overwrites the generator state, e.g. from a snapshot.
func (r *Rand) SetState(s uint64) {
	if s == 0 {
		s = 1
	}
	r.s = s
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

// Intn returns a value in [0, n). n <= 0 returns 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.NextU64() % uint64(n))
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.NextU64()>>11) * (1.0 / (1 << 53))
}
