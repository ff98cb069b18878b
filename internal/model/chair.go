package model

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
)

// Chair dimensions in scene units.
const (
	LegHeight      = 1.2
	SeatHeight     = 0.5
	SeatWidth      = 2.2
	SeatDepth      = 2.2
	BackrestHeight = 2.0
	BackrestDepth  = 0.25

	legTopRadius    = 0.12
	legBottomRadius = 0.07
	legSegments     = 16
	legInset        = 0.1

	// groundOffset drops the whole chair so the seat sits at a comfortable camera height.
	groundOffset = 0.5
	// backrestDrop sinks the backrest into the seat so no gap shows after tilting.
	backrestDrop = 0.8
	// backrestCurveFrom is the local Y above which backrest vertices bend backward.
	backrestCurveFrom = 0.8
)

// ChairName is the name of the chair's root group.
const ChairName = "Modern Chair"

// Appearance describes how the chair looks. Geometry is fixed; materials and the
// strength of the sculpted contours vary per theme.
type Appearance struct {
	Name string
	Legs Material
	Wood Material
	// SeatContour is how far the front-top edge of the seat is pulled down.
	SeatContour float32
	// BackCurve is how far the top of the backrest is pushed back.
	BackCurve float32
	// BackTilt is the backward tilt of the backrest in radians.
	BackTilt float32
}

// DefaultAppearance is the "modern" look: dark steel legs and sienna hardwood.
func DefaultAppearance() Appearance {
	return Appearance{
		Name: "modern",
		Legs: Material{
			Color:             Hex(0x3E2723),
			Roughness:         0.7,
			Metalness:         0.5,
			Emissive:          Hex(0x1A0033),
			EmissiveIntensity: 0.1,
			Surface:           SurfaceBrushed,
			BumpScale:         0.05,
		},
		Wood: Material{
			Color:     Hex(0xA0522D),
			Roughness: 0.7,
			Metalness: 0.1,
			Surface:   SurfaceGrain,
			BumpScale: 0.1,
		},
		SeatContour: 0.1,
		BackCurve:   0.2,
		BackTilt:    0.12,
	}
}

// Clone returns a deep copy of the appearance.
func (a Appearance) Clone() Appearance {
	var out Appearance
	if err := copier.CopyWithOption(&out, &a, copier.Option{DeepCopy: true}); err != nil {
		return a
	}
	return out
}

// Hex converts 0xRRGGBB into an opaque color.
func Hex(rgb uint32) color.RGBA {
	return color.RGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 255}
}

// BuildChair builds the chair with the default appearance.
func BuildChair() *Product {
	return BuildChairWith(DefaultAppearance())
}

// BuildChairWith assembles four tapered legs, a contoured seat and a curved, tilted
// backrest. Legs stand under the seat corners with their tops meeting the seat's
// bottom face, the seat's top face sits at LegHeight and the backrest rises from the
// seat's rear edge.
//
// Each part gets its own copy of the theme material so highlighting one leg does not
// recolor the others.
func BuildChairWith(a Appearance) *Product {
	a = a.Clone()
	chair := NewProduct(ChairName)

	legs := NewGroup("Legs")
	chair.Root.AddGroup(legs)
	x := float32(SeatWidth/2 - legInset)
	z := float32(SeatDepth/2 - legInset)
	corners := []mgl32.Vec2{{x, z}, {-x, z}, {x, -z}, {-x, -z}}
	for i, c := range corners {
		mesh := NewCylinder(legTopRadius, legBottomRadius, LegHeight, legSegments)
		leg := NewPart(fmt.Sprintf("Chair Leg %d", i+1), "Stylish tapered steel legs", mesh, a.Legs)
		leg.Transform.Position = mgl32.Vec3{c.X(), LegHeight/2 - groundOffset, c.Y()}
		chair.Attach(legs, leg)
	}

	seatMesh := NewBox(SeatWidth, SeatHeight, SeatDepth)
	contourSeat(seatMesh, a.SeatContour)
	seat := NewPart("Seat", "Contoured hardwood seat for comfort", seatMesh, a.Wood)
	seat.Transform.Position = mgl32.Vec3{0, LegHeight + SeatHeight/2 - groundOffset, 0}
	seat.ReceiveShadow = true
	chair.Attach(chair.Root, seat)

	backMesh := NewBox(SeatWidth, BackrestHeight, BackrestDepth)
	curveBackrest(backMesh, a.BackCurve)
	back := NewPart("Backrest", "Stylish angled backrest with ergonomic curve", backMesh, a.Wood)
	back.Transform.Position = mgl32.Vec3{
		0,
		LegHeight + SeatHeight + BackrestHeight/2 - backrestDrop,
		-SeatDepth/2 + legInset,
	}
	back.Transform.Rotation = mgl32.Vec3{-a.BackTilt, 0, 0}
	chair.Attach(chair.Root, back)

	return chair
}

// contourSeat pulls the front-top corners (local Z>0, Y>0) down by offset and
// recomputes normals.
func contourSeat(m *Mesh, offset float32) {
	if offset == 0 {
		return
	}
	m.Displace(func(p mgl32.Vec3) mgl32.Vec3 {
		if p.Z() > 0 && p.Y() > 0 {
			p[1] -= offset
		}
		return p
	})
	m.ComputeNormals()
}

// curveBackrest pushes vertices above backrestCurveFrom back along -Z and
// recomputes normals.
func curveBackrest(m *Mesh, offset float32) {
	if offset == 0 {
		return
	}
	m.Displace(func(p mgl32.Vec3) mgl32.Vec3 {
		if p.Y() > backrestCurveFrom {
			p[2] -= offset
		}
		return p
	})
	m.ComputeNormals()
}
