// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gg3d

import "errors"

// Common errors returned by gg3d operations.
var (
	// ErrSurfaceBound is returned when a renderer is created for a surface
	// that is already bound to another renderer.
	ErrSurfaceBound = errors.New("gg3d: surface already bound to a renderer")

	// ErrNilSurface is returned when a nil Surface is passed.
	ErrNilSurface = errors.New("gg3d: nil surface")

	// ErrRendererDisposed is returned when a disposed renderer is used.
	ErrRendererDisposed = errors.New("gg3d: renderer is disposed")

	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("gg3d: invalid dimensions")

	// ErrTextureDecode is returned when a texture image cannot be decoded.
	ErrTextureDecode = errors.New("gg3d: texture decode failed")

	// ErrTextureFetch is returned when a texture cannot be read from its source.
	ErrTextureFetch = errors.New("gg3d: texture fetch failed")

	// ErrTextureTooLarge is returned when a texture source exceeds the
	// loader's byte limit.
	ErrTextureTooLarge = errors.New("gg3d: texture source too large")
)
