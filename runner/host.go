// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package runner

import "github.com/gogpu/gg3d"

// Host is the environment a SceneRunner runs in: it owns the surfaces,
// the display-refresh schedule and the event loop goroutine.
//
// Every callback a Host invokes (frame, posted task, resize, pointer)
// must run on the same goroutine. The runner touches scene state only
// from those callbacks.
type Host interface {
	// Surface looks up a drawable surface by identifier.
	Surface(id string) (gg3d.Surface, error)

	// RequestFrame calls fn once before the next refresh.
	RequestFrame(fn func())

	// Post runs fn on the loop between frames. It is safe to call from
	// any goroutine.
	Post(fn func())

	// OnResize registers the viewport size-change handler.
	OnResize(fn func(width, height int))

	// OnPointer registers the pointer event handler.
	OnPointer(fn func(gg3d.PointerEvent))
}

// Controller advances camera state once per frame, before rendering.
type Controller interface {
	// Advance applies pending motion and reports whether the camera moved.
	Advance() bool
}

// PointerHandler is implemented by controllers that consume pointer input.
type PointerHandler interface {
	HandlePointer(gg3d.PointerEvent)
}
