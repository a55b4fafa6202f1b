package mathx

const (
	gamma  = 0x9e3779b97f4a7c15
	primeX = 0x9e3779b97f4a7c15
	primeY = 0xc2b2ae3d27d4eb4f
	primeZ = 0xbf58476d1ce4e5b9
	primeS = 0xd6e8feb86659fd93
)

func finalize(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func mix64(z uint64) uint64 {
	return finalize(z + gamma)
}

// Mix folds a seed, a column and a salt into a 64-bit stream seed.
// Neighbouring columns land far apart, so region and plot rolls show no lattice.
func Mix(seed int64, x, z int, salt int64) uint64 {
	v := uint64(seed) ^ (uint64(salt) * primeS)
	v ^= uint64(int64(x)) * primeX
	v ^= uint64(int64(z)) * primeZ
	return mix64(v)
}

func Hash2(seed int64, x, z int) uint64 {
	v := uint64(seed) ^ (uint64(int64(x)) * primeX) ^ (uint64(int64(z)) * primeZ)
	return mix64(v)
}

func Hash3(seed int64, x, y, z int) uint64 {
	v := uint64(seed) ^ (uint64(int64(x)) * primeX) ^ (uint64(int64(y)) * primeY) ^ (uint64(int64(z)) * primeZ)
	return mix64(v)
}
