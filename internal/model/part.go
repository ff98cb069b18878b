package model

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Surface detail kinds understood by the renderer. Empty means a plain surface.
const (
	SurfacePlain   = ""
	SurfaceGrain   = "grain"
	SurfaceBrushed = "brushed"
)

// Material is a physically-inspired surface description. Color is the only field
// mutated at runtime (hover highlight).
type Material struct {
	Color             color.RGBA
	Roughness         float32
	Metalness         float32
	Emissive          color.RGBA
	EmissiveIntensity float32
	// Surface selects a procedural detail texture; BumpScale is its strength (0 = off).
	Surface   string
	BumpScale float32
}

// Transform is a local translation, XYZ Euler rotation in radians, and scale.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// Identity returns a transform with unit scale and no rotation or translation.
func Identity() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix returns T * Rx * Ry * Rz * S.
func (t Transform) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	if t.Rotation.X() != 0 {
		m = m.Mul4(mgl32.HomogRotate3DX(t.Rotation.X()))
	}
	if t.Rotation.Y() != 0 {
		m = m.Mul4(mgl32.HomogRotate3DY(t.Rotation.Y()))
	}
	if t.Rotation.Z() != 0 {
		m = m.Mul4(mgl32.HomogRotate3DZ(t.Rotation.Z()))
	}
	return m.Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// Part is one named, independently colorable mesh of a product.
type Part struct {
	ID          int
	Name        string
	Description string
	Mesh        *Mesh
	Material    Material
	// OriginalColor is the material color captured at creation. Highlight restore
	// always goes back to this value.
	OriginalColor color.RGBA
	Transform     Transform
	CastShadow    bool
	ReceiveShadow bool

	parent *Group
}

// NewPart returns a part with an identity transform and the material's color captured
// as its original color.
func NewPart(name, description string, mesh *Mesh, mat Material) *Part {
	return &Part{
		Name:          name,
		Description:   description,
		Mesh:          mesh,
		Material:      mat,
		OriginalColor: mat.Color,
		Transform:     Identity(),
		CastShadow:    true,
	}
}

// Parent returns the group holding the part, or nil once detached.
func (p *Part) Parent() *Group { return p.parent }

// World returns the part's local-to-world matrix through its parent chain.
func (p *Part) World() mgl32.Mat4 {
	local := p.Transform.Matrix()
	if p.parent == nil {
		return local
	}
	return p.parent.World().Mul4(local)
}

// WorldBounds returns the part's bounding box in world space.
func (p *Part) WorldBounds() Box3 {
	return boundsOf(p.Mesh.Positions, p.World())
}

// SetColor sets the live material color.
func (p *Part) SetColor(c color.RGBA) { p.Material.Color = c }

// RestoreColor puts the originally captured color back.
func (p *Part) RestoreColor() { p.Material.Color = p.OriginalColor }

// Group is a named transform node holding parts and nested groups.
type Group struct {
	Name      string
	Transform Transform
	Parts     []*Part
	Groups    []*Group

	parent *Group
}

// NewGroup returns an empty group with an identity transform.
func NewGroup(name string) *Group {
	return &Group{Name: name, Transform: Identity()}
}

// AddPart attaches p to the group.
func (g *Group) AddPart(p *Part) {
	p.parent = g
	g.Parts = append(g.Parts, p)
}

// AddGroup nests child under g.
func (g *Group) AddGroup(child *Group) {
	child.parent = g
	g.Groups = append(g.Groups, child)
}

// World returns the group's local-to-world matrix.
func (g *Group) World() mgl32.Mat4 {
	local := g.Transform.Matrix()
	if g.parent == nil {
		return local
	}
	return g.parent.World().Mul4(local)
}

// Walk visits every part in the hierarchy depth-first: the group's own parts, then
// each nested group. Returning false from fn stops the walk.
func (g *Group) Walk(fn func(*Part) bool) bool {
	for _, p := range g.Parts {
		if !fn(p) {
			return false
		}
	}
	for _, child := range g.Groups {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

func (g *Group) removePart(p *Part) bool {
	for i, q := range g.Parts {
		if q == p {
			g.Parts = append(g.Parts[:i], g.Parts[i+1:]...)
			p.parent = nil
			return true
		}
	}
	return false
}
