// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package bitvec defines a bit vector type used for slot
// allocation and per-element flags.
package bitvec

import (
	"iter"
	"math/bits"
	"unsafe"
)

// Uint represents the granularity of a bit vector.
type Uint interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// V is a growable bit vector with custom granularity.
type V[T Uint] struct {
	s   []T
	rem int
}

// nbit returns the number of bits in T.
func (*V[T]) nbit() int { return int(unsafe.Sizeof(T(0))) * 8 }

// Len returns the number of bits in the vector.
func (v *V[_]) Len() int { return len(v.s) * v.nbit() }

// Rem returns the number of unset bits in the vector.
func (v *V[_]) Rem() int { return v.rem }

// Count returns the number of set bits in the vector.
func (v *V[_]) Count() int { return v.Len() - v.rem }

// Grow resizes the vector to contain nplus additional Uints,
// all of them unset.
// It returns the value of v.Len prior to the call.
func (v *V[T]) Grow(nplus int) (index int) {
	index = v.Len()
	if nplus > 0 {
		v.rem += nplus * v.nbit()
		v.s = append(v.s, make([]T, nplus)...)
	}
	return
}

// Fit grows the vector so it holds at least n bits.
func (v *V[T]) Fit(n int) {
	if n > v.Len() {
		nb := v.nbit()
		v.Grow((n - v.Len() + nb - 1) / nb)
	}
}

// Set sets a given bit.
func (v *V[T]) Set(index int) {
	n := v.nbit()
	i := index / n
	b := T(1) << (index & (n - 1))
	if v.s[i]&b == 0 {
		v.s[i] |= b
		v.rem--
	}
}

// Unset unsets a given bit.
func (v *V[T]) Unset(index int) {
	n := v.nbit()
	i := index / n
	b := T(1) << (index & (n - 1))
	if v.s[i]&b != 0 {
		v.s[i] &^= b
		v.rem++
	}
}

// IsSet checks whether a given bit is set.
func (v *V[T]) IsSet(index int) bool {
	n := v.nbit()
	i := index / n
	b := T(1) << (index & (n - 1))
	return v.s[i]&b != 0
}

// Search attempts to locate an unset bit in the vector.
// It fails only when v.Rem() == 0.
func (v *V[T]) Search() (index int, ok bool) {
	if v.rem == 0 {
		return
	}
	for i, x := range v.s {
		if x == ^T(0) {
			continue
		}
		b := bits.TrailingZeros64(uint64(^x))
		return i*v.nbit() + b, true
	}
	return
}

// Clear unsets every bit in the vector.
func (v *V[T]) Clear() {
	clear(v.s)
	v.rem = v.Len()
}

// All returns an iterator over all bits of the vector.
// The first value in the pair is the index of the bit and
// the second indicates whether the bit is set.
func (v *V[T]) All() iter.Seq2[int, bool] {
	return func(yield func(int, bool) bool) {
		n := v.nbit()
		for i, x := range v.s {
			for b := range n {
				if !yield(i*n+b, x&(1<<b) != 0) {
					return
				}
			}
		}
	}
}
