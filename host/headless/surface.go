// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package headless

import (
	"image"
	"sync"
)

// Surface is an in-memory gg3d.Surface that keeps the last presented
// frame. It is safe for concurrent use.
type Surface struct {
	mu       sync.Mutex
	width    int
	height   int
	ratio    float64
	last     *image.RGBA
	presents uint64
}

// NewSurface creates a surface of the given logical size and pixel ratio.
func NewSurface(width, height int, ratio float64) *Surface {
	return &Surface{width: width, height: height, ratio: ratio}
}

// Size returns the logical size.
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// PixelRatio returns the device pixel ratio.
func (s *Surface) PixelRatio() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratio
}

// Present stores frame as the last frame.
func (s *Surface) Present(frame *image.RGBA) error {
	s.mu.Lock()
	s.last = frame
	s.presents++
	s.mu.Unlock()
	return nil
}

// Frame returns the last presented frame, or nil.
func (s *Surface) Frame() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Presents returns how many frames were presented.
func (s *Surface) Presents() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presents
}

func (s *Surface) setSize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
}

func (s *Surface) setPixelRatio(ratio float64) {
	s.mu.Lock()
	s.ratio = ratio
	s.mu.Unlock()
}
