package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoxIsNonIndexed(t *testing.T) {
	m := NewBox(2, 1, 4)
	assert.Equal(t, 12, m.TriangleCount())
	assert.Equal(t, 36, m.VertexCount())
	assert.Len(t, m.Normals, 36)
	assert.Len(t, m.UVs, 36)

	box := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, -0.5, -2}, box.Min)
	assert.Equal(t, mgl32.Vec3{1, 0.5, 2}, box.Max)
}

func TestBoxWindingFacesOutward(t *testing.T) {
	m := NewBox(1, 1, 1)
	for i := 0; i < m.VertexCount(); i += 3 {
		a, b, c := m.Positions[i], m.Positions[i+1], m.Positions[i+2]
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		assert.Greater(t, n.Dot(centroid), float32(0), "triangle %d winds inward", i/3)
		assert.True(t, n.ApproxEqualThreshold(m.Normals[i], eps), "triangle %d normal", i/3)
	}
}

func TestCylinderWindingFacesOutward(t *testing.T) {
	m := NewCylinder(0.12, 0.07, 1.2, 16)
	assert.Equal(t, 16*4, m.TriangleCount())
	for i := 0; i < m.VertexCount(); i += 3 {
		a, b, c := m.Positions[i], m.Positions[i+1], m.Positions[i+2]
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		assert.Greater(t, n.Dot(centroid), float32(0), "triangle %d winds inward", i/3)
	}
	box := m.Bounds()
	assert.InDelta(t, 1.2, box.Size().Y(), eps)
	assert.InDelta(t, 0.24, box.Size().X(), 0.01)
}

func TestDisplaceMovesOnlyMatchingCorners(t *testing.T) {
	m := NewBox(1, 1, 1)
	before := m.Clone()
	moved := m.Displace(func(p mgl32.Vec3) mgl32.Vec3 {
		if p.X() > 0 && p.Y() > 0 && p.Z() > 0 {
			p[1] += 1
		}
		return p
	})
	corner := mgl32.Vec3{0.5, 0.5, 0.5}
	want := 0
	for _, p := range before.Positions {
		if p == corner {
			want++
		}
	}
	require.Positive(t, want)
	assert.Equal(t, want, moved)
	for i, p := range m.Positions {
		if p != before.Positions[i] {
			assert.Equal(t, before.Positions[i].Add(mgl32.Vec3{0, 1, 0}), p)
		}
	}
}

func TestComputeNormalsAfterDisplacement(t *testing.T) {
	m := NewBox(1, 1, 1)
	m.Displace(func(p mgl32.Vec3) mgl32.Vec3 {
		if p.Z() > 0 && p.Y() > 0 {
			p[1] -= 0.5
		}
		return p
	})
	m.ComputeNormals()
	for i := 0; i < m.VertexCount(); i += 3 {
		n := m.Normals[i]
		require.InDelta(t, 1, n.Len(), eps)
		assert.Equal(t, n, m.Normals[i+1])
		assert.Equal(t, n, m.Normals[i+2])
	}
}

func TestTransformMatrix(t *testing.T) {
	tr := Identity()
	tr.Position = mgl32.Vec3{1, 2, 3}
	tr.Scale = mgl32.Vec3{2, 2, 2}
	got := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, tr.Matrix())
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{3, 2, 3}, eps), "%v", got)
}

func TestGroupWorldComposesParents(t *testing.T) {
	root := NewGroup("root")
	root.Transform.Position = mgl32.Vec3{0, 1, 0}
	child := NewGroup("child")
	child.Transform.Position = mgl32.Vec3{2, 0, 0}
	root.AddGroup(child)
	p := NewPart("p", "", NewBox(1, 1, 1), Material{})
	child.AddPart(p)

	center := p.WorldBounds().Center()
	assert.True(t, center.ApproxEqualThreshold(mgl32.Vec3{2, 1, 0}, eps), "%v", center)
}
