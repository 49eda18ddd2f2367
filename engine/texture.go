// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	"github.com/gogpu/gputypes"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gviegas/globe/internal/logger"
	"github.com/gviegas/globe/linear"
)

const texPrefix = "texture: "

// Texture is an immutable 2D image that can be sampled.
// The first row of the image is the top of the texture,
// which is sampled at v = 1.
type Texture struct {
	img *image.NRGBA
}

// NewTexture creates a texture from img.
// The pixels are copied.
func NewTexture(img image.Image) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidTexture)
	}
	b := img.Bounds()
	switch {
	case b.Empty():
		return nil, fmt.Errorf("%w: empty bounds", ErrInvalidTexture)
	case b.Dx() > MaxTargetSize, b.Dy() > MaxTargetSize:
		return nil, fmt.Errorf("%w: size too big", ErrInvalidTexture)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return &Texture{img: dst}, nil
}

// DecodeTexture decodes an image from r and creates a
// texture from it.
// JPEG, PNG, GIF, BMP, TIFF and WebP are supported.
func DecodeTexture(r io.Reader) (*Texture, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTexture, err)
	}
	t, err := NewTexture(img)
	if err != nil {
		return nil, err
	}
	logger.Get().Debug("texture decoded", "format", format, "width", t.Width(), "height", t.Height())
	return t, nil
}

// LoadTexture loads a texture from the image file at path.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf(texPrefix+"%w", err)
	}
	defer f.Close()
	t, err := DecodeTexture(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Get().Info("texture loaded", "path", path, "width", t.Width(), "height", t.Height())
	return t, nil
}

// NewDisk creates a size×size texture containing a white
// disk on a transparent background, suitable as the shape
// of point sprites.
func NewDisk(size int) (*Texture, error) {
	if size < 1 || size > MaxTargetSize {
		return nil, newErr(texPrefix, "invalid disk size")
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			// One pixel of smooth edge.
			a := math.Max(0, math.Min(1, r-math.Hypot(dx, dy)+0.5))
			i := img.PixOffset(x, y)
			img.Pix[i+0] = 0xff
			img.Pix[i+1] = 0xff
			img.Pix[i+2] = 0xff
			img.Pix[i+3] = uint8(a*255 + 0.5)
		}
	}
	return &Texture{img: img}, nil
}

// Width returns the width of t in texels.
func (t *Texture) Width() int { return t.img.Rect.Dx() }

// Height returns the height of t in texels.
func (t *Texture) Height() int { return t.img.Rect.Dy() }

// texel returns the normalized texel at (x, y).
// x and y must be within bounds.
func (t *Texture) texel(x, y int) linear.V4 {
	i := t.img.PixOffset(x, y)
	p := t.img.Pix[i : i+4 : i+4]
	return linear.V4{
		float32(p[0]) / 255,
		float32(p[1]) / 255,
		float32(p[2]) / 255,
		float32(p[3]) / 255,
	}
}

// Sampler describes how a texture is sampled.
type Sampler struct {
	AddressModeU gputypes.AddressMode
	AddressModeV gputypes.AddressMode
	Filter       gputypes.FilterMode
	// Number of times the texture repeats across the
	// [0, 1] UV interval. Zero is treated as one.
	RepeatU float32
	RepeatV float32
}

// RepeatSampler returns a bilinear sampler that wraps in
// both directions.
func RepeatSampler() *Sampler {
	return &Sampler{
		AddressModeU: gputypes.AddressModeRepeat,
		AddressModeV: gputypes.AddressModeRepeat,
		Filter:       gputypes.FilterModeLinear,
		RepeatU:      1,
		RepeatV:      1,
	}
}

// ClampSampler returns a bilinear sampler that clamps
// to the edges.
func ClampSampler() *Sampler {
	return &Sampler{
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		Filter:       gputypes.FilterModeLinear,
		RepeatU:      1,
		RepeatV:      1,
	}
}

func (s *Sampler) validate() error {
	for _, m := range [...]gputypes.AddressMode{s.AddressModeU, s.AddressModeV} {
		switch m {
		case gputypes.AddressModeRepeat, gputypes.AddressModeMirrorRepeat, gputypes.AddressModeClampToEdge:
		default:
			return newErr(texPrefix, "undefined sampler address mode")
		}
	}
	switch s.Filter {
	case gputypes.FilterModeNearest, gputypes.FilterModeLinear:
	default:
		return newErr(texPrefix, "undefined sampler filter mode")
	}
	if s.RepeatU < 0 || s.RepeatV < 0 {
		return newErr(texPrefix, "negative sampler repeat")
	}
	return nil
}

// address maps the integer texel coordinate i into
// [0, n) according to mode.
func address(mode gputypes.AddressMode, i, n int) int {
	switch mode {
	case gputypes.AddressModeRepeat:
		i %= n
		if i < 0 {
			i += n
		}
	case gputypes.AddressModeMirrorRepeat:
		p := 2 * n
		i %= p
		if i < 0 {
			i += p
		}
		if i >= n {
			i = p - 1 - i
		}
	default:
		i = max(0, min(n-1, i))
	}
	return i
}

// Sample samples t at uv.
// u grows to the right and v grows upwards.
func (s *Sampler) Sample(t *Texture, uv [2]float32) linear.V4 {
	ru, rv := s.RepeatU, s.RepeatV
	if ru == 0 {
		ru = 1
	}
	if rv == 0 {
		rv = 1
	}
	w, h := t.Width(), t.Height()
	x := float64(uv[0]*ru) * float64(w)
	y := float64(1-uv[1]*rv) * float64(h)
	if s.Filter != gputypes.FilterModeLinear {
		return t.texel(
			address(s.AddressModeU, int(math.Floor(x)), w),
			address(s.AddressModeV, int(math.Floor(y)), h))
	}
	x -= 0.5
	y -= 0.5
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := float32(x-x0), float32(y-y0)
	ix0 := address(s.AddressModeU, int(x0), w)
	ix1 := address(s.AddressModeU, int(x0)+1, w)
	iy0 := address(s.AddressModeV, int(y0), h)
	iy1 := address(s.AddressModeV, int(y0)+1, h)
	t00, t10 := t.texel(ix0, iy0), t.texel(ix1, iy0)
	t01, t11 := t.texel(ix0, iy1), t.texel(ix1, iy1)
	var c linear.V4
	for i := range c {
		top := t00[i] + (t10[i]-t00[i])*fx
		bot := t01[i] + (t11[i]-t01[i])*fx
		c[i] = top + (bot-top)*fy
	}
	return c
}

// TexRef pairs a texture with the sampler used to
// read it.
type TexRef struct {
	Texture *Texture
	Sampler *Sampler
}

func (r *TexRef) validate() error {
	if r.Texture == nil {
		return newMatErr("nil TexRef.Texture")
	}
	if r.Sampler == nil {
		return newMatErr("nil TexRef.Sampler")
	}
	return r.Sampler.validate()
}

// Sample samples the referenced texture at uv.
func (r *TexRef) Sample(uv [2]float32) linear.V4 { return r.Sampler.Sample(r.Texture, uv) }
