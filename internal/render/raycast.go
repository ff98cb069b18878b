package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"product-viewer/internal/camera"
	"product-viewer/internal/interaction"
	"product-viewer/internal/model"
)

var _ interaction.Raycaster = (*Renderer)(nil)

// IntersectPart tests ray against the part's uploaded mesh with raylib's collision
// routine, so picking uses exactly the triangles that are drawn.
func (r *Renderer) IntersectPart(ray camera.Ray, p *model.Part) (float32, bool) {
	if p == nil || p.Mesh == nil || p.Mesh.VertexCount() == 0 {
		return 0, false
	}
	hit := rl.GetRayCollisionMesh(
		rl.NewRay(toVector3(ray.Origin), toVector3(ray.Direction)),
		r.mesh(p.Mesh).mesh,
		toMatrix(p.World()),
	)
	if !hit.Hit {
		return 0, false
	}
	return hit.Distance, true
}
