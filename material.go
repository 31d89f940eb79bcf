// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gg3d

import "github.com/gogpu/gg"

// Side selects which faces of a mesh are drawn.
type Side int

const (
	// FrontSide draws counter-clockwise faces only.
	FrontSide Side = iota
	// BackSide draws clockwise faces only.
	BackSide
	// DoubleSide draws both.
	DoubleSide
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case FrontSide:
		return "Front"
	case BackSide:
		return "Back"
	case DoubleSide:
		return "Double"
	default:
		return "Unknown"
	}
}

// MaterialKind selects the shading model.
type MaterialKind int

const (
	// MaterialBasic ignores lights: color × map.
	MaterialBasic MaterialKind = iota
	// MaterialLambert is flat diffuse shading from the scene lights.
	MaterialLambert
)

// Material describes how a mesh surface is shaded.
type Material struct {
	Kind  MaterialKind
	Color gg.RGBA
	// Map is sampled by UV and multiplied with Color. A texture whose
	// image has not arrived (or failed to load) samples black.
	Map  *Texture
	Side Side
}

// NewBasicMaterial returns an unlit white front-sided material.
func NewBasicMaterial() *Material {
	return &Material{Kind: MaterialBasic, Color: gg.White}
}

// NewLambertMaterial returns a lit material of the given color.
func NewLambertMaterial(color gg.RGBA) *Material {
	return &Material{Kind: MaterialLambert, Color: color}
}

// culls reports whether a face with the given orientation is skipped.
func (m *Material) culls(frontFacing bool) bool {
	switch m.Side {
	case BackSide:
		return frontFacing
	case DoubleSide:
		return false
	default:
		return !frontFacing
	}
}
