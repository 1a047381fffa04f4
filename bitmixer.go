package automaton

const (
	// Golden ratio bit mixer.
	PHI_C64 = uint64(0x9e3779b97f4a7c15)
)

func mix(key int) int {
	return mix32(key)
}

// Final 32-bit mixing step of MurmurHash3.
func mix32(v int) int {
	k := uint32(v)
	k = (k ^ (k >> 16)) * 0x85ebca6b
	k = (k ^ (k >> 13)) * 0xc2b2ae35
	return int(k ^ (k >> 16))
}

// mixSeq hashes an ordered sequence of small ints; order matters.
func mixSeq(values []int) uint64 {
	h := uint64(len(values))
	for _, v := range values {
		h = h*PHI_C64 + uint64(uint32(mix(v)))
	}
	return h
}
