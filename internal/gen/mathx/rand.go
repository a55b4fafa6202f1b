package mathx

// Rand is a splitmix64 stream. It is a plain value: create one from Mix,
// pass it down by pointer, and let it go out of scope with the call.
type Rand struct {
	state uint64
}

func NewRand(seed uint64) Rand {
	return Rand{state: seed}
}

func (r *Rand) Uint64() uint64 {
	r.state += gamma
	return finalize(r.state)
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Intn returns a value in [0, n); n <= 0 yields 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Uint64() % uint64(n))
}

func (r *Rand) Bool() bool {
	return r.Uint64()&1 == 1
}
