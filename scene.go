// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gg3d

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
)

// DefaultBackground is the background color of a new Scene.
var DefaultBackground = ColorHex(0x222222)

// Scene is the container of meshes and lights that a Renderer draws.
//
// A Scene is populated at startup and then only read by the renderer;
// it is not safe for concurrent mutation.
type Scene struct {
	// Background is the color the frame is cleared with. When nil the
	// renderer's clear color is used.
	Background *gg.RGBA

	nodes []Node
}

// NewScene creates an empty scene with DefaultBackground.
func NewScene() *Scene {
	bg := DefaultBackground
	return &Scene{Background: &bg}
}

// Add appends nodes to the scene. Nil nodes are ignored.
func (s *Scene) Add(nodes ...Node) {
	for _, n := range nodes {
		if n != nil {
			s.nodes = append(s.nodes, n)
		}
	}
}

// Nodes returns the scene's nodes in insertion order.
func (s *Scene) Nodes() []Node {
	return s.nodes
}

// Meshes returns the visible meshes of the scene.
func (s *Scene) Meshes() []*Mesh {
	var out []*Mesh
	for _, n := range s.nodes {
		if m, ok := n.(*Mesh); ok && m.Visible {
			out = append(out, m)
		}
	}
	return out
}

// lighting accumulates the scene lights into the form the shader needs.
func (s *Scene) lighting() lighting {
	var l lighting
	for _, n := range s.nodes {
		switch v := n.(type) {
		case *AmbientLight:
			if v.Visible {
				l.ambient = addColor(l.ambient, scaleColor(v.Color, v.Intensity))
			}
		case *DirectionalLight:
			if v.Visible {
				l.directional = append(l.directional, directional{
					dir:   v.Direction(),
					color: scaleColor(v.Color, v.Intensity),
				})
			}
		}
	}
	return l
}

// Mesh pairs a Geometry with a Material.
type Mesh struct {
	Object3D
	Geometry *Geometry
	Material *Material
}

// NewMesh creates a mesh at the origin.
func NewMesh(geometry *Geometry, material *Material) *Mesh {
	return &Mesh{
		Object3D: NewObject3D(),
		Geometry: geometry,
		Material: material,
	}
}

// AmbientLight lights every surface uniformly.
type AmbientLight struct {
	Object3D
	Color     gg.RGBA
	Intensity float64
}

// NewAmbientLight creates an ambient light.
func NewAmbientLight(color gg.RGBA, intensity float64) *AmbientLight {
	return &AmbientLight{Object3D: NewObject3D(), Color: color, Intensity: intensity}
}

// DirectionalLight simulates a distant source shining from Position
// towards Target.
type DirectionalLight struct {
	Object3D
	Color     gg.RGBA
	Intensity float64
	Target    mgl64.Vec3
}

// NewDirectionalLight creates a directional light positioned at (0, 1, 0)
// and aimed at the origin.
func NewDirectionalLight(color gg.RGBA, intensity float64) *DirectionalLight {
	l := &DirectionalLight{Object3D: NewObject3D(), Color: color, Intensity: intensity}
	l.Position = mgl64.Vec3{0, 1, 0}
	return l
}

// Direction returns the unit vector pointing from the target towards the
// light. A degenerate light points along +Y.
func (l *DirectionalLight) Direction() mgl64.Vec3 {
	d := l.Position.Sub(l.Target)
	if d.Len() == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	return d.Normalize()
}

type directional struct {
	dir   mgl64.Vec3
	color gg.RGBA
}

type lighting struct {
	ambient     gg.RGBA
	directional []directional
}

// shade returns the light reaching a surface with normal n.
func (l lighting) shade(n mgl64.Vec3) gg.RGBA {
	c := l.ambient
	for _, d := range l.directional {
		if f := n.Dot(d.dir); f > 0 {
			c = addColor(c, scaleColor(d.color, f))
		}
	}
	c.A = 1
	return c
}

func addColor(a, b gg.RGBA) gg.RGBA {
	return gg.RGBA{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B, A: a.A + b.A}
}
