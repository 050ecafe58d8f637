package cpu

import "math/rand"

// cpuRng is the package-level random source used by all CPU strategies.
// When nil, the functions below delegate to the global math/rand default.
// Use SeedCPURng to set a deterministic source for reproducible tests.
var cpuRng *rand.Rand

// SeedCPURng sets a deterministic random source for reproducible CPU behavior.
func SeedCPURng(seed int64) {
	cpuRng = rand.New(rand.NewSource(seed))
}

// ResetCPURng reverts to the default (non-deterministic) global random source.
func ResetCPURng() {
	cpuRng = nil
}

func cpuFloat64() float64 {
	if cpuRng != nil {
		return cpuRng.Float64()
	}
	return rand.Float64()
}

func cpuIntn(n int) int {
	if cpuRng != nil {
		return cpuRng.Intn(n)
	}
	return rand.Intn(n)
}
