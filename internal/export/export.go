// Package export writes a product as binary glTF, keeping its group hierarchy, part
// names and descriptions.
package export

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"product-viewer/internal/model"
)

// Document converts product into a glTF document. Each part becomes a node with its own
// mesh and material; part descriptions and IDs go into node extras.
func Document(product *model.Product) *gltf.Document {
	doc := gltf.NewDocument()
	root := writeGroup(doc, product.Root)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, root)
	return doc
}

// WriteGLB saves product to path as a .glb file.
func WriteGLB(product *model.Product, path string) error {
	if err := gltf.SaveBinary(Document(product), path); err != nil {
		return fmt.Errorf("export: %s: %w", path, err)
	}
	return nil
}

func writeGroup(doc *gltf.Document, g *model.Group) int {
	node := &gltf.Node{Name: g.Name}
	setTransform(node, g.Transform)
	for _, p := range g.Parts {
		node.Children = append(node.Children, writePart(doc, p))
	}
	for _, child := range g.Groups {
		node.Children = append(node.Children, writeGroup(doc, child))
	}
	doc.Nodes = append(doc.Nodes, node)
	return len(doc.Nodes) - 1
}

func writePart(doc *gltf.Document, p *model.Part) int {
	m := p.Mesh
	positions := make([][3]float32, len(m.Positions))
	for i, v := range m.Positions {
		positions[i] = v
	}
	attrs := map[string]int{gltf.POSITION: modeler.WritePosition(doc, positions)}
	if len(m.Normals) == len(m.Positions) {
		normals := make([][3]float32, len(m.Normals))
		for i, v := range m.Normals {
			normals[i] = v
		}
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, normals)
	}
	if len(m.UVs) == len(m.Positions) {
		uvs := make([][2]float32, len(m.UVs))
		for i, v := range m.UVs {
			uvs[i] = v
		}
		attrs[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, uvs)
	}

	doc.Materials = append(doc.Materials, material(p))
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: p.Name,
		Primitives: []*gltf.Primitive{{
			Attributes: attrs,
			Material:   gltf.Index(len(doc.Materials) - 1),
			Mode:       gltf.PrimitiveTriangles,
		}},
	})

	node := &gltf.Node{
		Name: p.Name,
		Mesh: gltf.Index(len(doc.Meshes) - 1),
		Extras: map[string]any{
			"id":          p.ID,
			"description": p.Description,
		},
	}
	setTransform(node, p.Transform)
	doc.Nodes = append(doc.Nodes, node)
	return len(doc.Nodes) - 1
}

// material exports the part's original color, so a highlighted part exports unhighlighted.
func material(p *model.Part) *gltf.Material {
	mat := p.Material
	base := linear(p.OriginalColor)
	em := linear(mat.Emissive)
	return &gltf.Material{
		Name: p.Name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{base[0], base[1], base[2], 1},
			MetallicFactor:  gltf.Float(float64(mat.Metalness)),
			RoughnessFactor: gltf.Float(float64(mat.Roughness)),
		},
		EmissiveFactor: [3]float64{
			em[0] * float64(mat.EmissiveIntensity),
			em[1] * float64(mat.EmissiveIntensity),
			em[2] * float64(mat.EmissiveIntensity),
		},
	}
}

func linear(c color.RGBA) [3]float64 {
	return [3]float64{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

func setTransform(node *gltf.Node, t model.Transform) {
	node.Translation = [3]float64{float64(t.Position[0]), float64(t.Position[1]), float64(t.Position[2])}
	q := mgl32.QuatRotate(t.Rotation[0], mgl32.Vec3{1, 0, 0}).
		Mul(mgl32.QuatRotate(t.Rotation[1], mgl32.Vec3{0, 1, 0})).
		Mul(mgl32.QuatRotate(t.Rotation[2], mgl32.Vec3{0, 0, 1}))
	node.Rotation = [4]float64{float64(q.V[0]), float64(q.V[1]), float64(q.V[2]), float64(q.W)}
	node.Scale = [3]float64{float64(t.Scale[0]), float64(t.Scale[1]), float64(t.Scale[2])}
}
