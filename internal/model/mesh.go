package model

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is a non-indexed triangle list: vertices 3i, 3i+1 and 3i+2 form triangle i.
// Every triangle owns its corners, so moving a vertex of one face never drags a
// neighbouring face with it. Normals and UVs run parallel to Positions.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
}

// VertexCount returns the number of vertices (three per triangle).
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Positions) / 3 }

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Positions: make([]mgl32.Vec3, len(m.Positions)),
		Normals:   make([]mgl32.Vec3, len(m.Normals)),
		UVs:       make([]mgl32.Vec2, len(m.UVs)),
	}
	copy(out.Positions, m.Positions)
	copy(out.Normals, m.Normals)
	copy(out.UVs, m.UVs)
	return out
}

// Displace replaces every vertex position with fn(position). It returns how many
// vertices actually moved.
func (m *Mesh) Displace(fn func(p mgl32.Vec3) mgl32.Vec3) int {
	moved := 0
	for i, p := range m.Positions {
		q := fn(p)
		if q != p {
			m.Positions[i] = q
			moved++
		}
	}
	return moved
}

// ComputeNormals recomputes flat per-face normals. Degenerate triangles get a zero normal.
func (m *Mesh) ComputeNormals() {
	if len(m.Normals) != len(m.Positions) {
		m.Normals = make([]mgl32.Vec3, len(m.Positions))
	}
	for i := 0; i+2 < len(m.Positions); i += 3 {
		a, b, c := m.Positions[i], m.Positions[i+1], m.Positions[i+2]
		n := b.Sub(a).Cross(c.Sub(a))
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		}
		m.Normals[i], m.Normals[i+1], m.Normals[i+2] = n, n, n
	}
}

// Bounds returns the axis-aligned bounding box of the mesh in local space.
func (m *Mesh) Bounds() Box3 {
	return boundsOf(m.Positions, mgl32.Ident4())
}

func (m *Mesh) addTriangle(a, b, c mgl32.Vec3, na, nb, nc mgl32.Vec3, ua, ub, uc mgl32.Vec2) {
	m.Positions = append(m.Positions, a, b, c)
	m.Normals = append(m.Normals, na, nb, nc)
	m.UVs = append(m.UVs, ua, ub, uc)
}

// boxFace is one side of a box: outward normal n and in-plane axes u, v with u×v = n,
// so corners walked -u-v, +u-v, +u+v, -u+v wind counter-clockwise seen from outside.
type boxFace struct {
	n, u, v mgl32.Vec3
}

var boxFaces = [6]boxFace{
	{n: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 0, -1}, v: mgl32.Vec3{0, 1, 0}},
	{n: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, 1, 0}},
	{n: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, -1}},
	{n: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}},
	{n: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	{n: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{-1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
}

// NewBox returns a box centered on the origin with the given width (X), height (Y)
// and depth (Z). Each face is two triangles with its own six vertices.
func NewBox(width, height, depth float32) *Mesh {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	m := &Mesh{}
	for _, f := range boxFaces {
		center := scale3(f.n, half)
		u := scale3(f.u, half)
		v := scale3(f.v, half)
		p0 := center.Sub(u).Sub(v)
		p1 := center.Add(u).Sub(v)
		p2 := center.Add(u).Add(v)
		p3 := center.Sub(u).Add(v)
		uv0, uv1, uv2, uv3 := mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}, mgl32.Vec2{1, 1}, mgl32.Vec2{0, 1}
		m.addTriangle(p0, p1, p2, f.n, f.n, f.n, uv0, uv1, uv2)
		m.addTriangle(p0, p2, p3, f.n, f.n, f.n, uv0, uv2, uv3)
	}
	return m
}

// NewCylinder returns a capped, optionally tapered cylinder centered on the origin with
// its axis along Y. Side normals are smooth (radial, tilted by the taper); caps are flat.
func NewCylinder(radiusTop, radiusBottom, height float32, radialSegments int) *Mesh {
	if radialSegments < 3 {
		radialSegments = 3
	}
	hy := height / 2
	slope := (radiusBottom - radiusTop) / height
	ring := func(i int, r, y float32) (mgl32.Vec3, mgl32.Vec3) {
		theta := float32(i) / float32(radialSegments) * 2 * math32.Pi
		s, c := math32.Sin(theta), math32.Cos(theta)
		return mgl32.Vec3{r * s, y, r * c}, mgl32.Vec3{s, slope, c}.Normalize()
	}

	m := &Mesh{}
	up, down := mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, -1, 0}
	topCenter, bottomCenter := mgl32.Vec3{0, hy, 0}, mgl32.Vec3{0, -hy, 0}
	for i := 0; i < radialSegments; i++ {
		t0, n0 := ring(i, radiusTop, hy)
		t1, n1 := ring(i+1, radiusTop, hy)
		b0, _ := ring(i, radiusBottom, -hy)
		b1, _ := ring(i+1, radiusBottom, -hy)
		u0 := float32(i) / float32(radialSegments)
		u1 := float32(i+1) / float32(radialSegments)

		m.addTriangle(b0, b1, t1, n0, n1, n1, mgl32.Vec2{u0, 0}, mgl32.Vec2{u1, 0}, mgl32.Vec2{u1, 1})
		m.addTriangle(b0, t1, t0, n0, n1, n0, mgl32.Vec2{u0, 0}, mgl32.Vec2{u1, 1}, mgl32.Vec2{u0, 1})

		capUV := func(p mgl32.Vec3, r float32) mgl32.Vec2 {
			if r == 0 {
				return mgl32.Vec2{0.5, 0.5}
			}
			return mgl32.Vec2{0.5 + p.X()/(2*r), 0.5 + p.Z()/(2*r)}
		}
		m.addTriangle(topCenter, t0, t1, up, up, up,
			mgl32.Vec2{0.5, 0.5}, capUV(t0, radiusTop), capUV(t1, radiusTop))
		m.addTriangle(bottomCenter, b1, b0, down, down, down,
			mgl32.Vec2{0.5, 0.5}, capUV(b1, radiusBottom), capUV(b0, radiusBottom))
	}
	return m
}

func scale3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
