package terminal

// pairKey is one resolved foreground/background combination. -1 on either
// side is the terminal default.
type pairKey struct {
	fg, bg int16
}

// pairTable caches which color combinations have been registered with the
// driver and under which pair index. Every index stored here has been
// registered through InitPair first, so the table never holds an index the
// driver does not recognize. Pair 0 is reserved and never issued.
type pairTable struct {
	drv   Driver
	pairs map[pairKey]int16
}

func newPairTable(d Driver) *pairTable {
	return &pairTable{
		drv:   d,
		pairs: make(map[pairKey]int16),
	}
}

// index returns the driver pair index for the resolved combination,
// registering it on first use. When the pair space is exhausted the entry
// holding the highest index is evicted and its index reused; the policy is
// deterministic, not LRU, and only guarantees that a request never fails
// for lack of space.
func (pt *pairTable) index(fg, bg int16) (int16, error) {
	key := pairKey{fg, bg}
	if idx, ok := pt.pairs[key]; ok {
		return idx, nil
	}

	idx := int16(1 + len(pt.pairs))
	if int(idx) >= pt.drv.MaxPairs() {
		idx = int16(pt.drv.MaxPairs() - 1)
		for k, v := range pt.pairs {
			if v == idx {
				delete(pt.pairs, k)
			}
		}
	}

	if err := pt.drv.InitPair(idx, fg, bg); err != nil {
		return 0, err
	}
	pt.pairs[key] = idx
	return idx, nil
}

// size is the number of registered pairs.
func (pt *pairTable) size() int {
	return len(pt.pairs)
}
