// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gg3d

// PointerEventType identifies a pointer event.
type PointerEventType int

const (
	PointerDown PointerEventType = iota
	PointerMove
	PointerUp
	PointerWheel
	// PointerCancel aborts any drag in progress, e.g. when the window
	// loses focus.
	PointerCancel
)

// String returns the event type name.
func (t PointerEventType) String() string {
	switch t {
	case PointerDown:
		return "Down"
	case PointerMove:
		return "Move"
	case PointerUp:
		return "Up"
	case PointerWheel:
		return "Wheel"
	case PointerCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// PointerButton identifies a mouse button.
type PointerButton int

const (
	ButtonLeft PointerButton = iota
	ButtonMiddle
	ButtonRight
)

// PointerEvent is pointer input in logical surface coordinates
// (origin top-left, Y down).
type PointerEvent struct {
	Type   PointerEventType
	Button PointerButton
	X, Y   float64
	// DeltaY is the wheel movement; positive when scrolling down, as in
	// DOM wheel events.
	DeltaY float64
	// Width and Height are the logical surface size when the event
	// happened; controllers scale drag distances by them.
	Width, Height int
}
