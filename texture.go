// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gg3d

import (
	"image"
	"math"
	"sync/atomic"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// Filter selects how a texture is sampled between texels.
type Filter int

const (
	// FilterLinear blends the four nearest texels.
	FilterLinear Filter = iota
	// FilterNearest picks the closest texel.
	FilterNearest
)

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case FilterLinear:
		return "Linear"
	case FilterNearest:
		return "Nearest"
	default:
		return "Unknown"
	}
}

// Texture is a handle to an image sampled by UV. The handle exists before
// its image does: loaders hand it out immediately and fill it later, and
// until then it samples black.
type Texture struct {
	Name   string
	Filter Filter

	img atomic.Pointer[image.NRGBA]
}

// NewTexture creates a texture from img. A nil img yields an empty texture.
func NewTexture(img image.Image) *Texture {
	t := &Texture{}
	if img != nil {
		t.SetImage(img)
	}
	return t
}

// SetImage replaces the texture image. Non-NRGBA images are converted.
func (t *Texture) SetImage(img image.Image) {
	if img == nil {
		t.img.Store(nil)
		return
	}
	t.img.Store(toNRGBA(img))
}

// Image returns the texture image, or nil while the texture is empty.
func (t *Texture) Image() *image.NRGBA {
	return t.img.Load()
}

// Loaded reports whether the texture has an image.
func (t *Texture) Loaded() bool {
	return t.img.Load() != nil
}

// Size returns the image dimensions, or 0, 0 for an empty texture.
func (t *Texture) Size() (width, height int) {
	img := t.img.Load()
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// Sample returns the color at (u, v) with repeat wrapping. v = 0 is the
// bottom row of the image.
func (t *Texture) Sample(u, v float64) gg.RGBA {
	img := t.img.Load()
	if img == nil {
		return gg.Black
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return gg.Black
	}

	u = wrap(u)
	v = wrap(v)
	x := u * float64(w)
	y := (1 - v) * float64(h)

	if t.Filter == FilterNearest {
		return texel(img, clampInt(int(x), 0, w-1), clampInt(int(y), 0, h-1))
	}

	// Texel centers sit at half-integer coordinates.
	x -= 0.5
	y -= 0.5
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)
	x1 := (x0 + 1 + w) % w
	y1 := clampInt(y0+1, 0, h-1)
	x0 = (x0 + w) % w
	y0 = clampInt(y0, 0, h-1)

	c00 := texel(img, x0, y0)
	c10 := texel(img, x1, y0)
	c01 := texel(img, x0, y1)
	c11 := texel(img, x1, y1)
	top := c00.Lerp(c10, fx)
	bottom := c01.Lerp(c11, fx)
	return top.Lerp(bottom, fy)
}

func texel(img *image.NRGBA, x, y int) gg.RGBA {
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	p := img.Pix[i : i+4 : i+4]
	return gg.RGBA{
		R: float64(p[0]) / 255,
		G: float64(p[1]) / 255,
		B: float64(p[2]) / 255,
		A: float64(p[3]) / 255,
	}
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// wrap maps t into [0, 1).
func wrap(t float64) float64 {
	t -= math.Floor(t)
	if t >= 1 {
		return 0
	}
	return t
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
