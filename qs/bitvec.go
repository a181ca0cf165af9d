package qs

import "math/bits"

// bitVector is a dense GF(2) vector.
type bitVector []uint64

func newBitVector(n int) bitVector {
	return make(bitVector, (n+63)/64)
}

func (v bitVector) get(i int) bool { return v[i/64]>>(uint(i)%64)&1 == 1 }

func (v bitVector) set(i int) { v[i/64] |= 1 << (uint(i) % 64) }

func (v bitVector) xor(w bitVector) {
	for k := range v {
		v[k] ^= w[k]
	}
}

func (v bitVector) isZero() bool {
	for _, w := range v {
		if w != 0 {
			return false
		}
	}
	return true
}

// ones returns the indices of the set bits in ascending order.
func (v bitVector) ones() []int {
	var out []int
	for k, w := range v {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, k*64+b)
			w &= w - 1
		}
	}
	return out
}

func (v bitVector) clone() bitVector {
	return append(bitVector(nil), v...)
}
