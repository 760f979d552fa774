package engine

import "math/rand/v2"

// seedStream decorrelates the two PCG words derived from a single seed.
const seedStream = 0x9e3779b97f4a7c15

// Generator is a deterministic pseudo-random source for spawns.
// It is a plain value: assigning it copies the full state, which is how
// history entries capture and restore it.
type Generator struct {
	pcg rand.PCG
}

// NewGenerator creates a generator from a seed.
func NewGenerator(seed uint64) Generator {
	return Generator{pcg: *rand.NewPCG(seed, seed^seedStream)}
}

// IntN returns a random int in [0, n). n must be positive.
func (g *Generator) IntN(n int) int {
	return rand.New(&g.pcg).IntN(n)
}

// MarshalBinary encodes the generator state.
func (g Generator) MarshalBinary() ([]byte, error) {
	return g.pcg.MarshalBinary()
}

// UnmarshalBinary restores a state produced by MarshalBinary.
func (g *Generator) UnmarshalBinary(data []byte) error {
	return g.pcg.UnmarshalBinary(data)
}

// randomSeed draws a seed from the process entropy source.
func randomSeed() uint64 {
	return rand.Uint64()
}
