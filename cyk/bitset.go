package cyk

import "math/bits"

const wordSize = 64

// bitset is a fixed-size set of variable indices.
type bitset []uint64

func newBitset(size int) bitset {
	return make(bitset, (size+wordSize-1)/wordSize)
}

func (s bitset) add(i int) {
	s[i/wordSize] |= 1 << (uint(i) % wordSize)
}

func (s bitset) contains(i int) bool {
	return s[i/wordSize]&(1<<(uint(i)%wordSize)) != 0
}

func (s bitset) isEmpty() bool {
	for _, w := range s {
		if w != 0 {
			return false
		}
	}
	return true
}

// members returns the elements in ascending order.
func (s bitset) members() []int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	items := make([]int, 0, n)
	for i, w := range s {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			items = append(items, i*wordSize+b)
			w &= w - 1
		}
	}
	return items
}
