// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gg3d

import (
	"image"
	"sync"
)

// Surface is a drawable target a Renderer presents frames to, such as a
// window back buffer or an in-memory image.
//
// Implementations must be comparable (typically pointer types): a Surface
// is bound to at most one Renderer at a time and the binding is tracked
// by identity.
type Surface interface {
	// Size returns the logical size of the surface in pixels.
	Size() (width, height int)

	// PixelRatio returns the ratio of device pixels to logical pixels.
	PixelRatio() float64

	// Present displays a finished frame. The image is owned by the
	// surface after the call.
	Present(frame *image.RGBA) error
}

var (
	bindingsMu sync.Mutex
	bindings   = map[Surface]*Renderer{}
)

func bind(s Surface, r *Renderer) error {
	bindingsMu.Lock()
	defer bindingsMu.Unlock()
	if _, ok := bindings[s]; ok {
		return ErrSurfaceBound
	}
	bindings[s] = r
	return nil
}

func unbind(s Surface, r *Renderer) {
	bindingsMu.Lock()
	defer bindingsMu.Unlock()
	if bindings[s] == r {
		delete(bindings, s)
	}
}

// BoundRenderer returns the renderer currently bound to s, if any.
func BoundRenderer(s Surface) (*Renderer, bool) {
	bindingsMu.Lock()
	defer bindingsMu.Unlock()
	r, ok := bindings[s]
	return r, ok
}
