package testutils

import (
	"math/big"
	"math/rand"
	"sync"
)

// This file provides deterministic pseudo-random test samples.
//
// Differential tests compare our fixed-width / modular arithmetic against math/big (and other independent libraries)
// on lists of samples. Tests ask for the first n samples for a given (seed, bound) key; asking again for the same key
// gives back fresh copies where the shorter list is a prefix of the longer one. The cache is safe for concurrent use,
// so parallel tests can share it.
//
// Every list starts with the special values 0, 1, 2, bound-2, bound-1 (those that are in range); the rest is uniform in [0, bound).

type sampleKey struct {
	seed  int64
	bound string // decimal representation of the bound; *big.Int is not comparable
}

type samplePage struct {
	mutex    sync.Mutex
	rng      *rand.Rand
	bound    *big.Int
	elements []*big.Int
}

var (
	sampleTableMutex sync.Mutex
	sampleTable      = make(map[sampleKey]*samplePage)
)

func specialValues(bound *big.Int) (ret []*big.Int) {
	candidates := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(2),
		new(big.Int).Sub(bound, big.NewInt(2)),
		new(big.Int).Sub(bound, big.NewInt(1)),
	}
	for _, candidate := range candidates {
		if candidate.Sign() < 0 || candidate.Cmp(bound) >= 0 {
			continue
		}
		duplicate := false
		for _, existing := range ret {
			if existing.Cmp(candidate) == 0 {
				duplicate = true
			}
		}
		if !duplicate {
			ret = append(ret, candidate)
		}
	}
	return
}

// BigIntSamples returns n samples in [0, bound), deterministically derived from seed.
// bound must be positive. The returned big.Ints are fresh copies that the caller may modify.
func BigIntSamples(seed int64, bound *big.Int, n int) []*big.Int {
	Assert(bound.Sign() > 0, "montgomery / testutils: BigIntSamples called with non-positive bound")
	key := sampleKey{seed: seed, bound: bound.String()}

	sampleTableMutex.Lock()
	page, ok := sampleTable[key]
	if !ok {
		page = &samplePage{
			rng:      rand.New(rand.NewSource(seed)),
			bound:    new(big.Int).Set(bound),
			elements: specialValues(bound),
		}
		sampleTable[key] = page
	}
	sampleTableMutex.Unlock()

	page.mutex.Lock()
	defer page.mutex.Unlock()
	for len(page.elements) < n {
		page.elements = append(page.elements, new(big.Int).Rand(page.rng, page.bound))
	}
	ret := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		ret[i] = new(big.Int).Set(page.elements[i])
	}
	return ret
}

// Uint64Samples returns n pseudo-random uint64, deterministically derived from seed.
func Uint64Samples(seed int64, n int) []uint64 {
	rng := rand.New(rand.NewSource(seed))
	ret := make([]uint64, n)
	for i := range ret {
		ret[i] = rng.Uint64()
	}
	return ret
}
