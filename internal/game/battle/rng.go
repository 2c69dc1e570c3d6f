package battle

// Rng is the battle's sole source of randomness: an xorshift64* generator
// whose entire state is one exported word, so it serializes with the rest of
// the battle and clones without aliasing. Replaying an action sequence from
// the same seed therefore reproduces every shuffle exactly.
type Rng struct {
	State uint64
}

// NewRng seeds a generator. A zero seed is remapped since xorshift has a
// zero fixed point.
func NewRng(seed uint64) Rng {
	if seed == 0 {
		seed = 0x9E3779B97F4A7C15
	}
	return Rng{State: seed}
}

// Next returns the next raw 64-bit value.
func (r *Rng) Next() uint64 {
	x := r.State
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.State = x
	return x * 0x2545F4914F6CDD1D
}

// Intn returns a value in [0, n). n must be positive.
func (r *Rng) Intn(n int) int {
	if n <= 0 {
		invariantf("Intn called with n=%d", n)
	}
	return int(r.Next() % uint64(n))
}

// Shuffle permutes indices [0, n) with a Fisher-Yates pass.
func (r *Rng) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}
