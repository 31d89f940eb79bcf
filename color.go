// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gg3d

import "github.com/gogpu/gg"

// ColorHex converts a 0xRRGGBB value to an opaque gg.RGBA.
func ColorHex(hex uint32) gg.RGBA {
	return gg.RGB(
		float64((hex>>16)&0xff)/255,
		float64((hex>>8)&0xff)/255,
		float64(hex&0xff)/255,
	)
}

// modulate multiplies two colors component-wise. Alpha is taken from a.
func modulate(a, b gg.RGBA) gg.RGBA {
	return gg.RGBA{R: a.R * b.R, G: a.G * b.G, B: a.B * b.B, A: a.A}
}

// scaleColor multiplies the color channels by s, keeping alpha.
func scaleColor(c gg.RGBA, s float64) gg.RGBA {
	return gg.RGBA{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

func clampColor(c gg.RGBA) gg.RGBA {
	return gg.RGBA{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
