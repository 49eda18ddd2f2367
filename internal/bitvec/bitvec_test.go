// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package bitvec

import (
	"testing"
	"unsafe"
)

func TestNbit(t *testing.T) {
	for _, x := range [...][2]int{
		{int(unsafe.Sizeof(uint(0))) * 8, (&V[uint]{}).nbit()},
		{int(unsafe.Sizeof(uint8(0))) * 8, (&V[uint8]{}).nbit()},
		{int(unsafe.Sizeof(uint16(0))) * 8, (&V[uint16]{}).nbit()},
		{int(unsafe.Sizeof(uint32(0))) * 8, (&V[uint32]{}).nbit()},
		{int(unsafe.Sizeof(uint64(0))) * 8, (&V[uint64]{}).nbit()},
	} {
		if x[0] != x[1] {
			t.Fatalf("V[T].nbit:\nhave %d\nwant %d", x[1], x[0])
		}
	}
}

func TestGrow(t *testing.T) {
	var v32 V[uint32]
	for _, x := range [...]struct {
		nplus, wantLen int
	}{
		{1, 32},
		{2, 96},
		{0, 96},
		{-1, 96},
		{17, 640},
	} {
		if n, i := v32.Len(), v32.Grow(x.nplus); n != i {
			t.Fatalf("v32.Grow:\nhave %d\nwant %d", i, n)
		}
		if n := v32.Len(); n != x.wantLen {
			t.Fatalf("v32.Grow: Len:\nhave %d\nwant %d", n, x.wantLen)
		}
		if n := v32.Rem(); n != x.wantLen {
			t.Fatalf("v32.Grow: Rem:\nhave %d\nwant %d", n, x.wantLen)
		}
	}
}

func TestFit(t *testing.T) {
	var v V[uint64]
	v.Fit(1)
	if n := v.Len(); n != 64 {
		t.Fatalf("v.Fit(1): Len:\nhave %d\nwant 64", n)
	}
	v.Fit(64)
	if n := v.Len(); n != 64 {
		t.Fatalf("v.Fit(64): Len:\nhave %d\nwant 64", n)
	}
	v.Fit(161201)
	if n := v.Len(); n != 161216 {
		t.Fatalf("v.Fit(161201): Len:\nhave %d\nwant 161216", n)
	}
}

func TestSetUnset(t *testing.T) {
	var v V[uint8]
	v.Grow(2)
	for _, i := range [...]int{0, 3, 7, 8, 15, 3} {
		v.Set(i)
	}
	if n := v.Count(); n != 5 {
		t.Fatalf("v.Count:\nhave %d\nwant 5", n)
	}
	for _, i := range [...]int{0, 3, 7, 8, 15} {
		if !v.IsSet(i) {
			t.Fatalf("v.IsSet(%d):\nhave false\nwant true", i)
		}
	}
	if v.IsSet(1) {
		t.Fatal("v.IsSet(1):\nhave true\nwant false")
	}
	v.Unset(3)
	v.Unset(3)
	if v.IsSet(3) {
		t.Fatal("v.Unset(3): IsSet:\nhave true\nwant false")
	}
	if n := v.Rem(); n != 12 {
		t.Fatalf("v.Rem:\nhave %d\nwant 12", n)
	}
}

func TestSearch(t *testing.T) {
	var v V[uint16]
	if _, ok := v.Search(); ok {
		t.Fatal("v.Search: empty vector:\nhave true\nwant false")
	}
	v.Grow(2)
	for i := 0; i < 32; i++ {
		idx, ok := v.Search()
		if !ok || idx != i {
			t.Fatalf("v.Search:\nhave %d, %t\nwant %d, true", idx, ok, i)
		}
		v.Set(idx)
	}
	if _, ok := v.Search(); ok {
		t.Fatal("v.Search: full vector:\nhave true\nwant false")
	}
	v.Unset(21)
	if idx, ok := v.Search(); !ok || idx != 21 {
		t.Fatalf("v.Search:\nhave %d, %t\nwant 21, true", idx, ok)
	}
}

func TestClear(t *testing.T) {
	var v V[uint32]
	v.Grow(3)
	for i := 0; i < v.Len(); i += 5 {
		v.Set(i)
	}
	v.Clear()
	if n := v.Rem(); n != v.Len() {
		t.Fatalf("v.Clear: Rem:\nhave %d\nwant %d", n, v.Len())
	}
	for i, set := range v.All() {
		if set {
			t.Fatalf("v.Clear: bit %d is set", i)
		}
	}
}

func TestAll(t *testing.T) {
	var v V[uint8]
	v.Grow(4)
	want := map[int]bool{1: true, 9: true, 30: true}
	for i := range want {
		v.Set(i)
	}
	var n int
	for i, set := range v.All() {
		if set != want[i] {
			t.Fatalf("v.All: bit %d:\nhave %t\nwant %t", i, set, want[i])
		}
		n++
	}
	if n != 32 {
		t.Fatalf("v.All: count:\nhave %d\nwant 32", n)
	}
}
