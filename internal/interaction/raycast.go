package interaction

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"product-viewer/internal/camera"
	"product-viewer/internal/model"
)

// Raycaster intersects a world-space ray with one part and returns the hit distance.
type Raycaster interface {
	IntersectPart(ray camera.Ray, p *model.Part) (float32, bool)
}

// Hit is the nearest part under a ray.
type Hit struct {
	Part     *model.Part
	Distance float32
	Point    mgl32.Vec3
}

// Nearest walks every part of product and returns the closest hit along ray.
func Nearest(rc Raycaster, ray camera.Ray, product *model.Product) (Hit, bool) {
	best := Hit{Distance: math32.Inf(1)}
	product.Walk(func(p *model.Part) bool {
		if d, ok := rc.IntersectPart(ray, p); ok && d < best.Distance {
			best.Part, best.Distance = p, d
		}
		return true
	})
	if best.Part == nil {
		return Hit{}, false
	}
	best.Point = ray.At(best.Distance)
	return best, true
}

// MeshRaycaster tests rays against part triangles on the CPU.
type MeshRaycaster struct{}

const rayEpsilon = 1e-6

// IntersectPart transforms the part's triangles to world space and returns the nearest
// front- or back-facing hit.
func (MeshRaycaster) IntersectPart(ray camera.Ray, p *model.Part) (float32, bool) {
	if p.Mesh == nil || p.Mesh.VertexCount() < 3 {
		return 0, false
	}
	world := p.World()
	box := p.WorldBounds()
	if !hitsBox(ray, box.Min, box.Max) {
		return 0, false
	}
	nearest := math32.Inf(1)
	pos := p.Mesh.Positions
	for i := 0; i+2 < len(pos); i += 3 {
		a := mgl32.TransformCoordinate(pos[i], world)
		b := mgl32.TransformCoordinate(pos[i+1], world)
		c := mgl32.TransformCoordinate(pos[i+2], world)
		if t, ok := intersectTriangle(ray, a, b, c); ok && t < nearest {
			nearest = t
		}
	}
	return nearest, !math32.IsInf(nearest, 1)
}

// intersectTriangle is the Moller-Trumbore test.
func intersectTriangle(ray camera.Ray, a, b, c mgl32.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	h := ray.Direction.Cross(e2)
	det := e1.Dot(h)
	if math32.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := ray.Origin.Sub(a)
	u := inv * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := inv * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := inv * e2.Dot(q)
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}

// hitsBox is the slab test against an axis-aligned box.
func hitsBox(ray camera.Ray, lo, hi mgl32.Vec3) bool {
	tmin, tmax := math32.Inf(-1), math32.Inf(1)
	for i := 0; i < 3; i++ {
		if math32.Abs(ray.Direction[i]) < rayEpsilon {
			if ray.Origin[i] < lo[i] || ray.Origin[i] > hi[i] {
				return false
			}
			continue
		}
		inv := 1 / ray.Direction[i]
		t1 := (lo[i] - ray.Origin[i]) * inv
		t2 := (hi[i] - ray.Origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return false
		}
	}
	return tmax >= 0
}
