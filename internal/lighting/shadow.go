package lighting

import "github.com/go-gl/mathgl/mgl32"

// minShadowSlope rejects lights too close to horizontal to cast a usable planar shadow.
const minShadowSlope = 1e-3

// ShadowMatrix flattens geometry onto the horizontal plane y = planeY along the
// light's direction. It reports false for ambient lights and for directional lights
// that do not point downward.
func (l Light) ShadowMatrix(planeY float32) (mgl32.Mat4, bool) {
	if l.Kind != Directional {
		return mgl32.Ident4(), false
	}
	d := l.Direction()
	if d.Y() > -minShadowSlope {
		return mgl32.Ident4(), false
	}
	sx, sz := d.X()/d.Y(), d.Z()/d.Y()
	return mgl32.Mat4FromRows(
		mgl32.Vec4{1, -sx, 0, sx * planeY},
		mgl32.Vec4{0, 0, 0, planeY},
		mgl32.Vec4{0, -sz, 1, sz * planeY},
		mgl32.Vec4{0, 0, 0, 1},
	), true
}

// ShadowCaster returns the first light that casts shadows.
func ShadowCaster(rig []Light) (Light, bool) {
	for _, l := range rig {
		if l.CastShadow && l.Kind == Directional {
			return l, true
		}
	}
	return Light{}, false
}
