package attempt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandSamplerDistinctInRange(t *testing.T) {
	s := NewRandSampler()
	for run := 0; run < 50; run++ {
		got := s.Sample(20, 7)
		assert.Len(t, got, 7)
		seen := map[int]bool{}
		for _, i := range got {
			assert.GreaterOrEqual(t, i, 0)
			assert.Less(t, i, 20)
			assert.False(t, seen[i], "index %d drawn twice", i)
			seen[i] = true
		}
	}
}

func TestRandSamplerClampsK(t *testing.T) {
	got := NewRandSampler().Sample(3, 10)
	assert.Len(t, got, 3)
}

func TestRandSamplerZero(t *testing.T) {
	assert.Empty(t, NewRandSampler().Sample(0, 0))
	assert.Empty(t, NewRandSampler().Sample(5, 0))
}

func TestRandSamplerCoversAllIndices(t *testing.T) {
	// Sampling 1 of 4 repeatedly should eventually hit every index.
	s := NewRandSampler()
	seen := map[int]bool{}
	for run := 0; run < 500 && len(seen) < 4; run++ {
		for _, i := range s.Sample(4, 1) {
			seen[i] = true
		}
	}
	assert.Len(t, seen, 4)
}
