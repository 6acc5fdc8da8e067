package progression

// NextOrder allocates the ordering slot for a new section or video given
// the current maximum within the parent scope. Orders are strictly
// increasing but need not stay contiguous after deletions. Callers must
// read the max and insert within the same transaction.
func NextOrder(maxOrder int) int {
	return maxOrder + 1
}
