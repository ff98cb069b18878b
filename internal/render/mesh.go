package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"product-viewer/internal/camera"
	"product-viewer/internal/model"
)

// gpuMesh is an uploaded model.Mesh. The flattened vertex slices stay referenced for
// the mesh's lifetime: raylib keeps pointers to them for ray collision.
type gpuMesh struct {
	mesh      rl.Mesh
	vertices  []float32
	normals   []float32
	texcoords []float32
}

// upload flattens m and sends it to the GPU. Must run with a live GL context.
func upload(m *model.Mesh) *gpuMesh {
	g := &gpuMesh{
		vertices:  make([]float32, 0, len(m.Positions)*3),
		normals:   make([]float32, 0, len(m.Positions)*3),
		texcoords: make([]float32, 0, len(m.Positions)*2),
	}
	for i, p := range m.Positions {
		g.vertices = append(g.vertices, p[0], p[1], p[2])
		n := mgl32.Vec3{0, 1, 0}
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		g.normals = append(g.normals, n[0], n[1], n[2])
		var uv mgl32.Vec2
		if i < len(m.UVs) {
			uv = m.UVs[i]
		}
		g.texcoords = append(g.texcoords, uv[0], uv[1])
	}
	g.mesh = rl.Mesh{
		VertexCount:   int32(m.VertexCount()),
		TriangleCount: int32(m.TriangleCount()),
	}
	if len(g.vertices) > 0 {
		g.mesh.Vertices = &g.vertices[0]
		g.mesh.Normals = &g.normals[0]
		g.mesh.Texcoords = &g.texcoords[0]
	}
	rl.UploadMesh(&g.mesh, false)
	return g
}

// unload frees the GPU buffers. The CPU arrays belong to Go, so they are detached
// first to keep raylib from freeing them.
func (g *gpuMesh) unload() {
	g.mesh.Vertices, g.mesh.Normals, g.mesh.Texcoords = nil, nil, nil
	rl.UnloadMesh(&g.mesh)
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 { return rl.NewVector3(v[0], v[1], v[2]) }

// toCamera3D mirrors the perspective camera for raylib's 3D mode.
func toCamera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(c.Position),
		Target:     toVector3(c.Target),
		Up:         toVector3(c.Up),
		Fovy:       c.FovY,
		Projection: rl.CameraPerspective,
	}
}
