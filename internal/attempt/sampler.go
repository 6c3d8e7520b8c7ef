package attempt

import "math/rand"

// Sampler draws k distinct indices from [0,n) uniformly at random.
// Injected into the engine so tests can substitute a deterministic
// implementation.
type Sampler interface {
	Sample(n, k int) []int
}

type randSampler struct{}

// NewRandSampler returns the production sampler, backed by the
// shared math/rand source (no fixed seed).
func NewRandSampler() Sampler { return randSampler{} }

func (randSampler) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return []int{}
	}
	// Partial Fisher-Yates: only the first k positions are needed.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rand.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}
