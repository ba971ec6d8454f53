package effect

import "math/bits"

// FillIndex selects one of the pre-authored liquid shapes
type FillIndex int

// Quantize maps a substance count onto a shape index in [0, steps]
// floor(count/capacity*steps) computed in integers, so it is exact and monotonic in count
// Degenerate capacity or steps yield 0
func Quantize(count, capacity, steps int) FillIndex {
	if capacity <= 0 || steps <= 0 || count <= 0 {
		return 0
	}
	if count >= capacity {
		return FillIndex(steps)
	}
	// 128-bit product; count < capacity keeps the quotient below steps
	hi, lo := bits.Mul64(uint64(count), uint64(steps))
	idx, _ := bits.Div64(hi, lo, uint64(capacity))
	return FillIndex(idx)
}

// Resolve composes the bench and quantizes its fill level in one call
// The fill level depends only on how many sources are present, never on the override
func Resolve(sources []Source, override *Descriptor, capacity, steps int) (Descriptor, FillIndex) {
	return Compose(sources, override), Quantize(len(sources), capacity, steps)
}
