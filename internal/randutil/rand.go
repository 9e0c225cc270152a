package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that dealing and equity runs get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Stream returns the n-th independent source for a seed. Parallel workers
// each take their own stream so results only depend on seed and worker count.
func Stream(seed int64, n int) *rand.Rand {
	u := mix(uint64(seed)) ^ mix(uint64(n+1)*goldenRatio64)
	return rand.New(rand.NewPCG(u, mix(u+goldenRatio64)))
}

// Seed picks a fresh seed when the caller did not configure one.
func Seed() int64 {
	return rand.Int64()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
