package workerpool

// Intensity tiers accepted by WorkerCount.
const (
	TierLow    = 1
	TierMedium = 2
	TierHigh   = 3
)

// WorkerCount derives the worker count from the logical CPU count: tier 1
// uses a quarter of the cores, tier 2 half, tier 3 all but one. The result is
// never below 1. Unknown tiers fall back to tier 2.
func WorkerCount(logicalCPUs, tier int) int {
	if logicalCPUs < 1 {
		logicalCPUs = 1
	}
	var n int
	switch tier {
	case TierLow:
		n = logicalCPUs / 4
	case TierHigh:
		n = logicalCPUs - 1
	default:
		n = logicalCPUs / 2
	}
	return max(n, 1)
}

// Resolve returns explicit when positive, otherwise the tier-derived count.
func Resolve(explicit, logicalCPUs, tier int) int {
	if explicit > 0 {
		return explicit
	}
	return WorkerCount(logicalCPUs, tier)
}
