package conquest

import "math/rand"

// diceRng is the package-level random source used for dice rolls and
// territory distribution. When nil, the functions below delegate to the
// global math/rand default. Use SeedRand to set a deterministic source
// for reproducible tests.
var diceRng *rand.Rand

// SeedRand sets a deterministic random source for reproducible dice rolls.
func SeedRand(seed int64) {
	diceRng = rand.New(rand.NewSource(seed))
}

// ResetRand reverts to the default (non-deterministic) global random source.
func ResetRand() {
	diceRng = nil
}

func rollDie() int {
	if diceRng != nil {
		return diceRng.Intn(6) + 1
	}
	return rand.Intn(6) + 1
}

func shuffle(n int, swap func(i, j int)) {
	if diceRng != nil {
		diceRng.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}
