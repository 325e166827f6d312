package sampler

import (
	"math/rand"

	"goresample/domain/core"
	"goresample/domain/resample"
)

// RandomizeTwoGroups permutes the pooled values uniformly at random and
// splits the permutation into a first block of n1 values and a second block
// of n2 values. Every bipartition consistent with the group sizes is
// reachable with the probability induced by a uniform permutation.
//
// This is the null-hypothesis engine for randomization tests: it destroys
// any association between group label and value while preserving the
// multiset of observed values and the group sizes.
func RandomizeTwoGroups(rng *rand.Rand, pool resample.Sample, n1, n2 int) (resample.Sample, resample.Sample, error) {
	if n1 < 0 || n2 < 0 || n1+n2 != len(pool) {
		return nil, nil, core.NewSizeMismatchError(n1, n2, len(pool))
	}

	perm := rng.Perm(len(pool))
	group1 := make(resample.Sample, n1)
	group2 := make(resample.Sample, n2)
	for i := 0; i < n1; i++ {
		group1[i] = pool[perm[i]]
	}
	for i := 0; i < n2; i++ {
		group2[i] = pool[perm[n1+i]]
	}
	return group1, group2, nil
}
