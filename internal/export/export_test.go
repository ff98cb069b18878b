package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-viewer/internal/model"
)

func TestWriteGLBRoundTrip(t *testing.T) {
	chair := model.BuildChair()
	path := filepath.Join(t.TempDir(), "chair.glb")
	require.NoError(t, WriteGLB(chair, path))

	doc, err := gltf.Open(path)
	require.NoError(t, err)

	var meshNodes []string
	for _, n := range doc.Nodes {
		if n.Mesh != nil {
			meshNodes = append(meshNodes, n.Name)
		}
	}
	var want []string
	for _, p := range chair.Parts() {
		want = append(want, p.Name)
	}
	assert.ElementsMatch(t, want, meshNodes)
	assert.Len(t, doc.Meshes, 6)
	assert.Len(t, doc.Materials, 6)

	require.Len(t, doc.Scenes, 1)
	require.Len(t, doc.Scenes[0].Nodes, 1)
	root := doc.Nodes[doc.Scenes[0].Nodes[0]]
	assert.Equal(t, model.ChairName, root.Name)
	assert.Len(t, root.Children, 3, "seat, backrest and the legs group")
}

func TestDocumentGeometry(t *testing.T) {
	chair := model.BuildChair()
	doc := Document(chair)
	seat, _ := chair.PartByName("Seat")

	var node *gltf.Node
	for _, n := range doc.Nodes {
		if n.Name == "Seat" {
			node = n
		}
	}
	require.NotNil(t, node)
	prim := doc.Meshes[*node.Mesh].Primitives[0]
	pos := doc.Accessors[prim.Attributes[gltf.POSITION]]
	assert.Equal(t, seat.Mesh.VertexCount(), pos.Count)
	assert.InDelta(t, seat.Transform.Position.Y(), node.Translation[1], 1e-6)
}

func TestBackrestRotationIsTilt(t *testing.T) {
	chair := model.BuildChair()
	doc := Document(chair)
	for _, n := range doc.Nodes {
		if n.Name != "Backrest" {
			continue
		}
		q := mgl32.Quat{W: float32(n.Rotation[3]), V: mgl32.Vec3{float32(n.Rotation[0]), float32(n.Rotation[1]), float32(n.Rotation[2])}}
		want := mgl32.HomogRotate3DX(-model.DefaultAppearance().BackTilt)
		assert.True(t, q.Mat4().ApproxEqualThreshold(want, 1e-5))
		return
	}
	t.Fatal("no Backrest node")
}

func TestMaterialUsesOriginalColor(t *testing.T) {
	chair := model.BuildChair()
	seat, _ := chair.PartByName("Seat")
	seat.SetColor(model.Hex(0x00ff00))
	mat := material(seat)
	assert.InDelta(t, float64(0xA0)/255, mat.PBRMetallicRoughness.BaseColorFactor[0], 1e-9)
	assert.InDelta(t, 0.1, *mat.PBRMetallicRoughness.MetallicFactor, 1e-6)
}

func TestWriteTable(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteTable(&sb, model.BuildChair()))
	out := sb.String()
	assert.True(t, strings.HasPrefix(out, model.ChairName+"\n"))
	for _, name := range []string{"Chair Leg 1", "Chair Leg 4", "Seat", "Backrest"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "Contoured hardwood seat for comfort")
	assert.Contains(t, out, "Overall:")
	// Title, blank, header, six parts, blank, total.
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 11)
}
