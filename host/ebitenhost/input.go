// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ebitenhost

import "github.com/gogpu/gg3d"

// viewport is the last size and scale reported to the resize handler.
type viewport struct {
	width, height int
	ratio         float64
}

// update records the new viewport and reports whether it differs.
func (v *viewport) update(width, height int, ratio float64) bool {
	next := viewport{width: width, height: height, ratio: ratio}
	if next == *v {
		return false
	}
	*v = next
	return true
}

// logicalCursor converts a cursor position in device pixels to window
// coordinates. A non-positive scale is treated as 1.
func logicalCursor(cx, cy int, scale float64) (float64, float64) {
	if scale <= 0 {
		scale = 1
	}
	return float64(cx) / scale, float64(cy) / scale
}

// pointerInput is one tick of polled mouse state. pressed and released
// are indexed like buttons.
type pointerInput struct {
	x, y          float64
	width, height int
	focused       bool
	pressed       [len(buttons)]bool
	released      [len(buttons)]bool
	wheel         float64
}

// pointerTracker turns polled mouse state into pointer events. Only one
// button drags at a time.
type pointerTracker struct {
	x, y    float64
	pressed int // index into buttons, -1 when up
}

func newPointerTracker() pointerTracker {
	return pointerTracker{pressed: -1}
}

func (p *pointerTracker) events(in pointerInput) []gg3d.PointerEvent {
	var out []gg3d.PointerEvent
	emit := func(typ gg3d.PointerEventType, btn gg3d.PointerButton) {
		out = append(out, gg3d.PointerEvent{
			Type: typ, Button: btn, X: in.x, Y: in.y,
			Width: in.width, Height: in.height,
		})
	}

	if p.pressed >= 0 && !in.focused {
		emit(gg3d.PointerCancel, buttons[p.pressed].btn)
		p.pressed = -1
	}
	for i, b := range buttons {
		if in.pressed[i] && p.pressed < 0 {
			p.pressed = i
			emit(gg3d.PointerDown, b.btn)
		}
	}
	if in.x != p.x || in.y != p.y {
		btn := gg3d.ButtonLeft
		if p.pressed >= 0 {
			btn = buttons[p.pressed].btn
		}
		emit(gg3d.PointerMove, btn)
		p.x, p.y = in.x, in.y
	}
	if p.pressed >= 0 && in.released[p.pressed] {
		emit(gg3d.PointerUp, buttons[p.pressed].btn)
		p.pressed = -1
	}
	// ebiten reports wheel-up as positive; DOM deltaY is positive downward.
	if in.wheel != 0 {
		out = append(out, gg3d.PointerEvent{
			Type: gg3d.PointerWheel, X: in.x, Y: in.y, DeltaY: -in.wheel,
			Width: in.width, Height: in.height,
		})
	}
	return out
}
