// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gg3d

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
)

// RenderInfo reports what the last Render call drew.
type RenderInfo struct {
	Frames    uint64
	Triangles int
	Culled    int
	Clipped   int
}

// Renderer draws scenes into a gg drawing buffer and presents the result
// to the Surface it is bound to.
//
// Renderer is NOT safe for concurrent use. All calls must come from the
// goroutine that owns the scene.
type Renderer struct {
	surface    Surface
	dc         *gg.Context
	antialias  bool
	clearColor gg.RGBA
	pixelRatio float64
	width      int
	height     int
	disposed   bool
	info       RenderInfo
	items      []drawItem
}

// NewRenderer creates a renderer bound exclusively to surface and sized
// to it. The surface stays bound until Dispose.
func NewRenderer(surface Surface, opts ...RendererOption) (*Renderer, error) {
	if surface == nil {
		return nil, ErrNilSurface
	}
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	w, h := o.width, o.height
	if w == 0 && h == 0 {
		w, h = surface.Size()
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, w, h)
	}

	r := &Renderer{
		surface:    surface,
		antialias:  o.antialias,
		clearColor: o.clearColor,
		pixelRatio: sanitizeRatio(o.pixelRatio),
		width:      w,
		height:     h,
	}
	if err := bind(surface, r); err != nil {
		return nil, err
	}
	bw, bh := r.BufferSize()
	r.dc = gg.NewContext(bw, bh)
	return r, nil
}

// MustNewRenderer is like NewRenderer but panics on error.
func MustNewRenderer(surface Surface, opts ...RendererOption) *Renderer {
	r, err := NewRenderer(surface, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Surface returns the bound surface.
func (r *Renderer) Surface() Surface {
	return r.surface
}

// Size returns the logical output size.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// PixelRatio returns the device pixel ratio applied to the buffer.
func (r *Renderer) PixelRatio() float64 {
	return r.pixelRatio
}

// BufferSize returns the drawing buffer size: the logical size scaled by
// the pixel ratio, at least 1×1.
func (r *Renderer) BufferSize() (width, height int) {
	return max(1, int(math.Floor(float64(r.width)*r.pixelRatio))),
		max(1, int(math.Floor(float64(r.height)*r.pixelRatio)))
}

// Antialias reports whether untextured edges are anti-aliased.
func (r *Renderer) Antialias() bool {
	return r.antialias
}

// Info returns statistics about the last rendered frame.
func (r *Renderer) Info() RenderInfo {
	return r.info
}

// SetSize sets the logical output size and resizes the drawing buffer.
// Setting the current size is a no-op.
func (r *Renderer) SetSize(width, height int) error {
	if r.disposed {
		return ErrRendererDisposed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	r.width, r.height = width, height
	return r.resizeBuffer()
}

// SetPixelRatio sets the device pixel ratio and resizes the drawing
// buffer. Non-positive or non-finite ratios are treated as 1.
func (r *Renderer) SetPixelRatio(ratio float64) error {
	if r.disposed {
		return ErrRendererDisposed
	}
	r.pixelRatio = sanitizeRatio(ratio)
	return r.resizeBuffer()
}

func (r *Renderer) resizeBuffer() error {
	bw, bh := r.BufferSize()
	if err := r.dc.Resize(bw, bh); err != nil {
		return fmt.Errorf("gg3d: buffer resize failed: %w", err)
	}
	return nil
}

// Render draws scene as seen by camera and presents it to the surface.
func (r *Renderer) Render(scene *Scene, camera *PerspectiveCamera) error {
	if r.disposed {
		return ErrRendererDisposed
	}

	bg := r.clearColor
	if scene.Background != nil {
		bg = *scene.Background
	}
	r.dc.ClearWithColor(bg)

	bw, bh := r.BufferSize()
	r.info = RenderInfo{Frames: r.info.Frames + 1}
	r.items = collect(r.items[:0], scene, camera, float64(bw), float64(bh), &r.info)
	sortBackToFront(r.items)
	for i := 0; i < len(r.items); {
		n := r.batch(i)
		r.draw(r.items[i:i+n], bw, bh)
		i += n
	}

	if err := r.surface.Present(r.dc.ResizeTarget().ToImage()); err != nil {
		return fmt.Errorf("gg3d: present failed: %w", err)
	}
	return nil
}

// Image returns a copy of the current drawing buffer.
func (r *Renderer) Image() *image.RGBA {
	return r.dc.ResizeTarget().ToImage()
}

// EncodePNG writes the current drawing buffer as PNG.
func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// Dispose releases the surface binding and the drawing buffer.
// Dispose is idempotent.
func (r *Renderer) Dispose() error {
	if r.disposed {
		return nil
	}
	r.disposed = true
	unbind(r.surface, r)
	return r.dc.Close()
}

// batch returns how many items starting at i form one fill: consecutive
// untextured faces of the same group and color. Filling them as a single
// path keeps anti-aliasing from leaving seams on shared edges.
func (r *Renderer) batch(i int) int {
	first := &r.items[i]
	if first.texture != nil || !r.antialias {
		return 1
	}
	n := 1
	for j := i + 1; j < len(r.items); j++ {
		it := &r.items[j]
		if it.texture != nil || it.group != first.group || it.color != first.color {
			break
		}
		n++
	}
	return n
}

func (r *Renderer) draw(items []drawItem, bw, bh int) {
	if items[0].texture == nil && r.antialias {
		r.dc.SetFillBrush(gg.Solid(items[0].color))
		for _, it := range items {
			r.dc.MoveTo(it.poly[0].x, it.poly[0].y)
			for _, v := range it.poly[1:] {
				r.dc.LineTo(v.x, v.y)
			}
			r.dc.ClosePath()
		}
		if err := r.dc.Fill(); err != nil {
			Logger().Debug("face fill failed", "err", err)
		}
		return
	}
	for k := range items {
		it := &items[k]
		for i := 1; i+1 < len(it.poly); i++ {
			rasterizeTriangle(r.dc, bw, bh, it, it.poly[0], it.poly[i], it.poly[i+1])
		}
	}
}

func sanitizeRatio(ratio float64) float64 {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 1
	}
	return ratio
}
