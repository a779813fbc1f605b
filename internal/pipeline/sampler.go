package pipeline

import (
	"math/rand"
	"time"
)

// Sampler selects which part of the resolved universe a sweep covers.
// Sampling is explicit and injectable so tests can run deterministically.
type Sampler interface {
	Sample(symbols []string) []string
	Name() string
}

// FullSweep processes the entire universe in enumeration order.
type FullSweep struct{}

func (FullSweep) Name() string { return "full" }

func (FullSweep) Sample(symbols []string) []string {
	return append([]string(nil), symbols...)
}

// RandomBatch picks a contiguous window of Size symbols starting at a
// random offset, trading coverage for a lighter request footprint.
type RandomBatch struct {
	Size int
	rng  *rand.Rand
}

func NewRandomBatch(size int, seed int64) *RandomBatch {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomBatch{Size: size, rng: rand.New(rand.NewSource(seed))}
}

func (b *RandomBatch) Name() string { return "batch" }

func (b *RandomBatch) Sample(symbols []string) []string {
	if b.Size <= 0 || len(symbols) <= b.Size {
		return append([]string(nil), symbols...)
	}
	start := b.rng.Intn(len(symbols) - b.Size + 1)
	return append([]string(nil), symbols[start:start+b.Size]...)
}
