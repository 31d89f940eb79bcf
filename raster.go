// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gg3d

import (
	"cmp"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
)

// clipVertex is a vertex in homogeneous clip space.
type clipVertex struct {
	pos mgl64.Vec4
	uv  mgl64.Vec2
}

// screenVertex is a projected vertex in buffer pixels. u and v are
// pre-divided by w so they interpolate linearly in screen space.
type screenVertex struct {
	x, y, z float64
	invW    float64
	uw, vw  float64
}

// drawItem is one clipped, shaded, convex face ready for drawing.
type drawItem struct {
	poly     []screenVertex
	color    gg.RGBA
	light    gg.RGBA
	texture  *Texture
	depth    float64
	group    int
	sequence int
}

// collect projects, clips, culls and shades every face of the scene.
func collect(items []drawItem, scene *Scene, camera *PerspectiveCamera, bw, bh float64, info *RenderInfo) []drawItem {
	lights := scene.lighting()
	viewProj := camera.ProjectionMatrix().Mul4(camera.ViewMatrix())
	start := len(items)
	nextGroup := 0

	for _, mesh := range scene.Meshes() {
		g, mat := mesh.Geometry, mesh.Material
		if g == nil || mat == nil {
			continue
		}
		model := mesh.ModelMatrix()
		mvp := viewProj.Mul4(model)
		normalMat := model.Mat3().Inv().Transpose()
		meshGroups := nextGroup
		nextGroup += len(g.Groups)

		for t := 0; t+2 < len(g.Indices); t += 3 {
			idx := [3]uint32{g.Indices[t], g.Indices[t+1], g.Indices[t+2]}
			var tri [3]clipVertex
			for k, i := range idx {
				p := g.Positions[i]
				tri[k].pos = mvp.Mul4x1(p.Vec4(1))
				if int(i) < len(g.UVs) {
					tri[k].uv = g.UVs[i]
				}
			}

			poly := clipPolygon(tri[:])
			if len(poly) < 3 {
				info.Clipped++
				continue
			}
			screen := make([]screenVertex, len(poly))
			for k, v := range poly {
				screen[k] = toScreen(v, bw, bh)
			}

			front := signedArea(screen) < 0 // y points down in buffer space
			if mat.culls(front) {
				info.Culled++
				continue
			}

			group := g.groupOf(t)
			if group >= 0 {
				group += meshGroups
			} else {
				group = nextGroup
				nextGroup++
			}
			it := drawItem{
				poly:     screen,
				color:    mat.Color,
				light:    gg.White,
				texture:  mat.Map,
				group:    group,
				sequence: len(items),
			}
			if mat.Kind == MaterialLambert {
				n := faceNormal(g, idx, model, normalMat)
				if !front {
					n = n.Mul(-1)
				}
				it.light = lights.shade(n)
			}
			if it.texture == nil {
				it.color = clampColor(modulate(it.color, it.light))
				it.color.A = 1
			}
			for _, v := range screen {
				it.depth += v.z
			}
			it.depth /= float64(len(screen))
			items = append(items, it)
			info.Triangles++
		}
	}
	shareGroupDepth(items[start:], nextGroup)
	return items
}

// shareGroupDepth gives every face of a group the group's mean depth so
// the faces sort next to each other.
func shareGroupDepth(items []drawItem, groups int) {
	sum := make([]float64, groups)
	count := make([]int, groups)
	for _, it := range items {
		sum[it.group] += it.depth
		count[it.group]++
	}
	for i := range items {
		items[i].depth = sum[items[i].group] / float64(count[items[i].group])
	}
}

// faceNormal returns the world-space normal of a triangle: the average
// of its vertex normals, or the winding normal when those are missing.
func faceNormal(g *Geometry, idx [3]uint32, model mgl64.Mat4, normalMat mgl64.Mat3) mgl64.Vec3 {
	var n mgl64.Vec3
	for _, i := range idx {
		if int(i) < len(g.Normals) {
			n = n.Add(g.Normals[i])
		}
	}
	if n.Len() > 1e-12 {
		n = normalMat.Mul3x1(n)
		if n.Len() > 1e-12 {
			return n.Normalize()
		}
	}
	p0 := model.Mul4x1(g.Positions[idx[0]].Vec4(1)).Vec3()
	p1 := model.Mul4x1(g.Positions[idx[1]].Vec4(1)).Vec3()
	p2 := model.Mul4x1(g.Positions[idx[2]].Vec4(1)).Vec3()
	n = p1.Sub(p0).Cross(p2.Sub(p0))
	if n.Len() <= 1e-12 {
		return mgl64.Vec3{0, 0, 1}
	}
	return n.Normalize()
}

// clipPolygon clips a convex polygon against the near (z >= -w) and far
// (z <= w) planes.
func clipPolygon(in []clipVertex) []clipVertex {
	out := clipAgainst(in, func(v mgl64.Vec4) float64 { return v.Z() + v.W() })
	return clipAgainst(out, func(v mgl64.Vec4) float64 { return v.W() - v.Z() })
}

// clipAgainst keeps the part of poly where dist >= 0 (Sutherland-Hodgman).
func clipAgainst(poly []clipVertex, dist func(mgl64.Vec4) float64) []clipVertex {
	if len(poly) == 0 {
		return nil
	}
	out := make([]clipVertex, 0, len(poly)+2)
	prev := poly[len(poly)-1]
	dPrev := dist(prev.pos)
	for _, cur := range poly {
		dCur := dist(cur.pos)
		if (dCur >= 0) != (dPrev >= 0) {
			t := dPrev / (dPrev - dCur)
			out = append(out, clipVertex{
				pos: prev.pos.Add(cur.pos.Sub(prev.pos).Mul(t)),
				uv:  prev.uv.Add(cur.uv.Sub(prev.uv).Mul(t)),
			})
		}
		if dCur >= 0 {
			out = append(out, cur)
		}
		prev, dPrev = cur, dCur
	}
	return out
}

func toScreen(v clipVertex, bw, bh float64) screenVertex {
	w := v.pos.W()
	if math.Abs(w) < 1e-12 {
		w = 1e-12
	}
	inv := 1 / w
	return screenVertex{
		x:    (v.pos.X()*inv + 1) * 0.5 * bw,
		y:    (1 - v.pos.Y()*inv) * 0.5 * bh,
		z:    v.pos.Z() * inv,
		invW: inv,
		uw:   v.uv.X() * inv,
		vw:   v.uv.Y() * inv,
	}
}

// signedArea returns twice the signed area of the polygon in buffer
// coordinates. Counter-clockwise faces (as seen in NDC) are negative.
func signedArea(poly []screenVertex) float64 {
	var a float64
	for i := range poly {
		j := (i + 1) % len(poly)
		a += poly[i].x*poly[j].y - poly[j].x*poly[i].y
	}
	return a
}

// sortBackToFront orders faces farthest first. Faces at equal depth stay
// together by group and then keep submission order.
func sortBackToFront(items []drawItem) {
	slices.SortStableFunc(items, func(a, b drawItem) int {
		if c := cmp.Compare(b.depth, a.depth); c != 0 {
			return c
		}
		if c := cmp.Compare(a.group, b.group); c != 0 {
			return c
		}
		return cmp.Compare(a.sequence, b.sequence)
	})
}

// pixelSetter is the part of gg.Context the scanline rasterizer writes to.
type pixelSetter interface {
	SetPixel(x, y int, c gg.RGBA)
}

// rasterizeTriangle scan-converts one triangle, sampling pixel centers.
// UVs are interpolated perspective-correct.
func rasterizeTriangle(dst pixelSetter, bw, bh int, it *drawItem, a, b, c screenVertex) {
	area := edge(a, b, c.x, c.y)
	if area == 0 {
		return
	}
	minX := clampInt(int(math.Floor(min(a.x, b.x, c.x))), 0, bw-1)
	maxX := clampInt(int(math.Ceil(max(a.x, b.x, c.x))), 0, bw-1)
	minY := clampInt(int(math.Floor(min(a.y, b.y, c.y))), 0, bh-1)
	maxY := clampInt(int(math.Ceil(max(a.y, b.y, c.y))), 0, bh-1)

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(b, c, px, py) / area
			w1 := edge(c, a, px, py) / area
			w2 := edge(a, b, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			col := it.color
			if it.texture != nil {
				invW := w0*a.invW + w1*b.invW + w2*c.invW
				u := (w0*a.uw + w1*b.uw + w2*c.uw) / invW
				v := (w0*a.vw + w1*b.vw + w2*c.vw) / invW
				col = modulate(modulate(it.color, it.texture.Sample(u, v)), it.light)
				col = clampColor(col)
			}
			col.A = 1
			dst.SetPixel(x, y, col)
		}
	}
}

// edge is the signed area of (a, b, p); its sign tells which side of ab
// the point lies on.
func edge(a, b screenVertex, px, py float64) float64 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}
