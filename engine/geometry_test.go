// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"math"
	"testing"
)

func TestNewSphere(t *testing.T) {
	g, err := NewSphere(8, 400, 400)
	if err != nil {
		t.Fatalf("NewSphere:\nhave %v\nwant nil", err)
	}
	if n := g.VertexCount(); n != 401*401 {
		t.Fatalf("g.VertexCount:\nhave %d\nwant %d", n, 401*401)
	}
	// Pole rows contribute a single triangle per segment.
	if n := g.IndexCount(); n != 400*399*6 {
		t.Fatalf("g.IndexCount:\nhave %d\nwant %d", n, 400*399*6)
	}
	for i := 0; i < g.VertexCount(); i += 997 {
		p := g.Position(i)
		if l := p.Len(); math.Abs(float64(l-8)) > 1e-4 {
			t.Fatalf("g.Position(%d).Len:\nhave %v\nwant 8", i, l)
		}
		uv := g.UV(i)
		if uv[1] < 0 || uv[1] > 1 {
			t.Fatalf("g.UV(%d):\nhave %v\nwant v in [0, 1]", i, uv)
		}
		if c := g.Color(i); c != [3]float32{1, 1, 1} {
			t.Fatalf("g.Color(%d):\nhave %v\nwant [1 1 1]", i, c)
		}
	}
	if p := g.Position(0); p[1] != 8 {
		t.Fatalf("north pole:\nhave %v\nwant y = 8", p)
	}
	if uv := g.UV(0); uv[1] != 1 {
		t.Fatalf("north pole UV:\nhave %v\nwant v = 1", uv)
	}
	if r := g.Radius(); r != 8 {
		t.Fatalf("g.Radius:\nhave %v\nwant 8", r)
	}
}

func TestNewSphereInvalid(t *testing.T) {
	for _, x := range [...]struct {
		radius float32
		w, h   int
	}{
		{0, 32, 32},
		{-1, 32, 32},
		{float32(math.Inf(1)), 32, 32},
		{8, 2, 32},
		{8, 32, 1},
		{8, MaxSphereSegments + 1, 32},
	} {
		if g, err := NewSphere(x.radius, x.w, x.h); err == nil || g != nil {
			t.Fatalf("NewSphere(%v, %d, %d):\nhave %v, %v\nwant nil, error", x.radius, x.w, x.h, g, err)
		}
	}
}
