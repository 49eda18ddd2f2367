// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gviegas/globe/linear"
)

func TestBuiltin(t *testing.T) {
	lib, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin:\nhave %v\nwant nil", err)
	}
	for _, name := range [...]string{Points, Basic} {
		mod, err := lib.Module(name)
		if err != nil {
			t.Fatalf("lib.Module(%q):\nhave %v\nwant nil", name, err)
		}
		if mod.Version != 1 {
			t.Fatalf("mod.Version:\nhave %d\nwant 1", mod.Version)
		}
		words, err := Compile(mod.Source)
		if err != nil || len(words) == 0 || words[0] != spirvMagic {
			t.Fatalf("Compile(%q):\nhave %d words, %v\nwant SPIR-V, nil", name, len(words), err)
		}
	}
	if _, err := lib.Module("phong"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("lib.Module(\"phong\"):\nhave %v\nwant %v", err, ErrNotFound)
	}
}

func TestLoadOverride(t *testing.T) {
	src, err := builtin.ReadFile("wgsl/basic.wgsl")
	if err != nil {
		t.Fatal(err)
	}
	over := strings.Replace(string(src), "return basic.color;", "return vec4<f32>(basic.color.rgb, 1.0);", 1)
	lib, err := Load(fstest.MapFS{"basic.wgsl": {Data: []byte(over)}})
	if err != nil {
		t.Fatalf("Load:\nhave %v\nwant nil", err)
	}
	mod, _ := lib.Module(Basic)
	if mod.Source != over {
		t.Fatal("lib.Module(Basic): override not used")
	}
	pts, _ := lib.Module(Points)
	if !strings.Contains(pts.Source, "globe:points v1") {
		t.Fatal("lib.Module(Points): builtin fallback not used")
	}
}

func TestLoadInvalid(t *testing.T) {
	src, err := builtin.ReadFile("wgsl/points.wgsl")
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range [...]struct {
		name, src, reason string
	}{
		{"no header", "fn vs_main() {}", "missing module header"},
		{"bad header", "// globe:points one\n", "malformed module header"},
		{"wrong name", strings.Replace(string(src), "globe:points", "globe:basic", 1), "header names module"},
		{"wrong version", strings.Replace(string(src), "points v1", "points v2", 1), "version 2 not supported"},
		{"no entry", strings.Replace(string(src), "fn fs_main", "fn main", 1), "missing entry point fs_main"},
		{"syntax", strings.Replace(string(src), "discard;", "discard", 1), "compile"},
	} {
		_, err := Load(fstest.MapFS{"points.wgsl": {Data: []byte(x.src)}})
		if err == nil || !strings.Contains(err.Error(), x.reason) {
			t.Fatalf("Load (%s):\nhave %v\nwant error containing %q", x.name, err, x.reason)
		}
	}
}

func TestParseHeader(t *testing.T) {
	name, version, err := parseHeader("// globe:points v12\nstruct Frame {}")
	if err != nil || name != "points" || version != 12 {
		t.Fatalf("parseHeader:\nhave %q, %d, %v\nwant \"points\", 12, nil", name, version, err)
	}
}

func TestDirection(t *testing.T) {
	for _, x := range [...]struct {
		d         Direction
		magnitude float32
		want      bool
	}{
		{DiscardAbove, 1.0, false},
		{DiscardBelow, 1.0, false},
		{DiscardAbove, 1.001, true},
		{DiscardBelow, 1.001, false},
		{DiscardAbove, 0.999, false},
		{DiscardBelow, 0.999, true},
		{DiscardAbove, 0, false},
		{DiscardBelow, 1.732, false},
	} {
		if have := x.d.Discard(x.magnitude, 1); have != x.want {
			t.Fatalf("%v.Discard(%v, 1):\nhave %t\nwant %t", x.d, x.magnitude, have, x.want)
		}
	}
	if DiscardAbove.Sign() != 1 || DiscardBelow.Sign() != -1 {
		t.Fatalf("Direction.Sign:\nhave %v, %v\nwant 1, -1", DiscardAbove.Sign(), DiscardBelow.Sign())
	}
	if Direction(2).Valid() {
		t.Fatal("Direction(2).Valid:\nhave true\nwant false")
	}
}

func TestLayout(t *testing.T) {
	var f FrameLayout
	var m linear.M4
	m.Translate(1, 2, 3)
	f.SetModelView(&m)
	f.SetViewport(800, 600)
	if f[12] != 1 || f[13] != 2 || f[14] != 3 || f[32] != 800 || f[33] != 600 {
		t.Fatalf("FrameLayout:\nhave %v", f)
	}
	var proj linear.M4
	proj.Perspective(1, 1.5, 1, 100)
	f.SetProjection(&proj)
	if mv := f.ModelView(); mv != m {
		t.Fatalf("FrameLayout.ModelView:\nhave %v\nwant %v", mv, m)
	}
	if p := f.Projection(); p != proj {
		t.Fatalf("FrameLayout.Projection:\nhave %v\nwant %v", p, proj)
	}
	if w, h := f.Viewport(); w != 800 || h != 600 {
		t.Fatalf("FrameLayout.Viewport:\nhave %v, %v\nwant 800, 600", w, h)
	}

	var p PointsLayout
	p.SetSize(0.04)
	p.SetScale(300)
	p.SetThreshold(1, DiscardBelow)
	if p.Size() != 0.04 || p.Scale() != 300 || p.Threshold() != 1 || p[4] != -1 {
		t.Fatalf("PointsLayout:\nhave %v", p)
	}

	var b BasicLayout
	c := linear.V4{0.25, 0.5, 0.75, 1}
	b.SetColor(&c)
	if b.Color() != c {
		t.Fatalf("BasicLayout.Color:\nhave %v\nwant %v", b.Color(), c)
	}
}
