// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gputypes"
)

// checker returns a 2x2 image whose top-left and bottom-right
// texels are white and the others black.
func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	img.Set(1, 0, color.Black)
	img.Set(0, 1, color.Black)
	img.Set(1, 1, color.White)
	return img
}

func TestNewTexture(t *testing.T) {
	tex, err := NewTexture(checker())
	if err != nil {
		t.Fatalf("NewTexture:\nhave %v\nwant nil", err)
	}
	if tex.Width() != 2 || tex.Height() != 2 {
		t.Fatalf("NewTexture: size\nhave %dx%d\nwant 2x2", tex.Width(), tex.Height())
	}
	if _, err := NewTexture(image.NewNRGBA(image.Rectangle{})); !errors.Is(err, ErrInvalidTexture) {
		t.Fatalf("NewTexture(empty):\nhave %v\nwant %v", err, ErrInvalidTexture)
	}
	if _, err := NewTexture(nil); !errors.Is(err, ErrInvalidTexture) {
		t.Fatalf("NewTexture(nil):\nhave %v\nwant %v", err, ErrInvalidTexture)
	}
}

func TestLoadTexture(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, checker()); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "checker.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture:\nhave %v\nwant nil", err)
	}
	if tex.Width() != 2 {
		t.Fatalf("LoadTexture: width\nhave %d\nwant 2", tex.Width())
	}
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("LoadTexture(missing):\nhave nil\nwant error")
	}
	if _, err := DecodeTexture(bytes.NewReader([]byte("not an image"))); !errors.Is(err, ErrInvalidTexture) {
		t.Fatalf("DecodeTexture(garbage):\nhave %v\nwant %v", err, ErrInvalidTexture)
	}
}

func TestSampleNearest(t *testing.T) {
	tex, _ := NewTexture(checker())
	s := RepeatSampler()
	s.Filter = gputypes.FilterModeNearest
	for _, x := range [...]struct {
		uv   [2]float32
		want float32
	}{
		// v = 1 is the top row.
		{[2]float32{0.25, 0.75}, 1},
		{[2]float32{0.75, 0.75}, 0},
		{[2]float32{0.25, 0.25}, 0},
		{[2]float32{0.75, 0.25}, 1},
		// Repeat wraps around.
		{[2]float32{1.25, 0.75}, 1},
		{[2]float32{-0.25, 0.75}, 0},
		{[2]float32{0.25, -0.25}, 1},
	} {
		if c := s.Sample(tex, x.uv); c[0] != x.want || c[3] != 1 {
			t.Fatalf("s.Sample(%v):\nhave %v\nwant [%v %v %v 1]", x.uv, c, x.want, x.want, x.want)
		}
	}
}

func TestSampleLinear(t *testing.T) {
	tex, _ := NewTexture(checker())
	s := ClampSampler()
	// The center of the texture is equidistant from
	// all four texels.
	if c := s.Sample(tex, [2]float32{0.5, 0.5}); math.Abs(float64(c[0]-0.5)) > 1e-6 {
		t.Fatalf("s.Sample(center):\nhave %v\nwant 0.5", c[0])
	}
	// Clamping keeps corners at their texel value.
	if c := s.Sample(tex, [2]float32{0, 1}); c[0] != 1 {
		t.Fatalf("s.Sample(top-left):\nhave %v\nwant 1", c[0])
	}
	r := RepeatSampler()
	// Repeating blends the corner with the opposite edges.
	if c := r.Sample(tex, [2]float32{0, 1}); math.Abs(float64(c[0]-0.5)) > 1e-6 {
		t.Fatalf("r.Sample(top-left):\nhave %v\nwant 0.5", c[0])
	}
}

func TestAddress(t *testing.T) {
	for _, x := range [...]struct {
		mode    gputypes.AddressMode
		i, want int
	}{
		{gputypes.AddressModeRepeat, 5, 1},
		{gputypes.AddressModeRepeat, -1, 3},
		{gputypes.AddressModeClampToEdge, -1, 0},
		{gputypes.AddressModeClampToEdge, 9, 3},
		{gputypes.AddressModeMirrorRepeat, 4, 3},
		{gputypes.AddressModeMirrorRepeat, -1, 0},
	} {
		if have := address(x.mode, x.i, 4); have != x.want {
			t.Fatalf("address(%v, %d, 4):\nhave %d\nwant %d", x.mode, x.i, have, x.want)
		}
	}
}

func TestNewDisk(t *testing.T) {
	tex, err := NewDisk(16)
	if err != nil {
		t.Fatalf("NewDisk:\nhave %v\nwant nil", err)
	}
	s := ClampSampler()
	if c := s.Sample(tex, [2]float32{0.5, 0.5}); c[3] != 1 {
		t.Fatalf("disk center alpha:\nhave %v\nwant 1", c[3])
	}
	if c := s.Sample(tex, [2]float32{0, 0}); c[3] >= 0.5 {
		t.Fatalf("disk corner alpha:\nhave %v\nwant < 0.5", c[3])
	}
	if _, err := NewDisk(0); err == nil {
		t.Fatal("NewDisk(0):\nhave nil\nwant error")
	}
}
