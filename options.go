// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gg3d

import "github.com/gogpu/gg"

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	r, err := gg3d.NewRenderer(surface,
//	    gg3d.WithAntialias(true),
//	    gg3d.WithPixelRatio(math.Min(surface.PixelRatio(), 2)),
//	)
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	antialias  bool
	pixelRatio float64
	clearColor gg.RGBA
	width      int
	height     int
}

func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		antialias:  true,
		pixelRatio: 1,
		clearColor: gg.Black,
	}
}

// WithAntialias enables anti-aliased edges for untextured faces.
// Enabled by default.
func WithAntialias(enabled bool) RendererOption {
	return func(o *rendererOptions) {
		o.antialias = enabled
	}
}

// WithPixelRatio sets the device pixel ratio of the drawing buffer.
func WithPixelRatio(ratio float64) RendererOption {
	return func(o *rendererOptions) {
		o.pixelRatio = ratio
	}
}

// WithClearColor sets the color used when a scene has no background.
func WithClearColor(c gg.RGBA) RendererOption {
	return func(o *rendererOptions) {
		o.clearColor = c
	}
}

// WithSize sets the initial logical size instead of the surface size.
func WithSize(width, height int) RendererOption {
	return func(o *rendererOptions) {
		o.width = width
		o.height = height
	}
}
