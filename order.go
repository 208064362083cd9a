package eztimer

import "math/rand/v2"

// executionOrder builds the flat schedule for a run: rounds contiguous
// blocks, each holding every unit index exactly once in independently
// shuffled order. The caller's rng is advanced monotonically across blocks,
// so the whole schedule is a pure function of the seed.
func executionOrder(rng *rand.Rand, n, rounds int) []int {
	order := make([]int, n*rounds)
	for r := 0; r < rounds; r++ {
		block := order[r*n : (r+1)*n]
		for i := range block {
			block[i] = i
		}
		rng.Shuffle(n, func(i, j int) {
			block[i], block[j] = block[j], block[i]
		})
	}
	return order
}
