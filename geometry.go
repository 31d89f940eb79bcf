// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gg3d

import "github.com/go-gl/mathgl/mgl64"

// Geometry is an indexed triangle list with per-vertex normals and UVs.
// Triangles wind counter-clockwise when seen from their front side.
type Geometry struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	UVs       []mgl64.Vec2
	Indices   []uint32

	// Groups partitions Indices into coplanar faces that are drawn as one
	// shape. Triangles outside every group are drawn on their own.
	Groups []Group
}

// Group is a run of Count indices starting at Start.
type Group struct {
	Start, Count int
}

// groupOf returns the index of the group containing the index offset i,
// or -1.
func (g *Geometry) groupOf(i int) int {
	for k, gr := range g.Groups {
		if i >= gr.Start && i < gr.Start+gr.Count {
			return k
		}
	}
	return -1
}

// TriangleCount returns the number of triangles in the geometry.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// NewPlaneGeometry returns a width×height rectangle in the XY plane,
// centered on the origin and facing +Z. UV (0,0) is the bottom-left corner.
func NewPlaneGeometry(width, height float64) *Geometry {
	g := &Geometry{}
	g.addQuad(mgl64.Vec3{}, mgl64.Vec3{width / 2, 0, 0}, mgl64.Vec3{0, height / 2, 0}, mgl64.Vec3{0, 0, 1})
	return g
}

// NewBoxGeometry returns an axis-aligned box centered on the origin.
// Each face has its own four vertices so normals and UVs stay flat.
func NewBoxGeometry(width, height, depth float64) *Geometry {
	hx, hy, hz := width/2, height/2, depth/2
	g := &Geometry{}
	faces := []struct{ n, u, v mgl64.Vec3 }{
		{n: mgl64.Vec3{hx, 0, 0}, u: mgl64.Vec3{0, 0, -hz}, v: mgl64.Vec3{0, hy, 0}},
		{n: mgl64.Vec3{-hx, 0, 0}, u: mgl64.Vec3{0, 0, hz}, v: mgl64.Vec3{0, hy, 0}},
		{n: mgl64.Vec3{0, hy, 0}, u: mgl64.Vec3{hx, 0, 0}, v: mgl64.Vec3{0, 0, -hz}},
		{n: mgl64.Vec3{0, -hy, 0}, u: mgl64.Vec3{hx, 0, 0}, v: mgl64.Vec3{0, 0, hz}},
		{n: mgl64.Vec3{0, 0, hz}, u: mgl64.Vec3{hx, 0, 0}, v: mgl64.Vec3{0, hy, 0}},
		{n: mgl64.Vec3{0, 0, -hz}, u: mgl64.Vec3{-hx, 0, 0}, v: mgl64.Vec3{0, hy, 0}},
	}
	for _, f := range faces {
		normal := f.n
		if normal.Len() > 0 {
			normal = normal.Normalize()
		}
		g.addQuad(f.n, f.u, f.v, normal)
	}
	return g
}

// addQuad appends the quad center ± u ± v as two triangles. u × v must
// point along normal for the quad to face outwards.
func (g *Geometry) addQuad(center, u, v, normal mgl64.Vec3) {
	base := uint32(len(g.Positions))
	g.Groups = append(g.Groups, Group{Start: len(g.Indices), Count: 6})
	corners := []struct {
		su, sv float64
		uv     mgl64.Vec2
	}{
		{-1, 1, mgl64.Vec2{0, 1}},
		{1, 1, mgl64.Vec2{1, 1}},
		{-1, -1, mgl64.Vec2{0, 0}},
		{1, -1, mgl64.Vec2{1, 0}},
	}
	for _, c := range corners {
		g.Positions = append(g.Positions, center.Add(u.Mul(c.su)).Add(v.Mul(c.sv)))
		g.Normals = append(g.Normals, normal)
		g.UVs = append(g.UVs, c.uv)
	}
	g.Indices = append(g.Indices,
		base, base+2, base+1,
		base+2, base+3, base+1,
	)
}
