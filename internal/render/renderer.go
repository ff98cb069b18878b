// Package render draws the scene with raylib: lit product parts with their surface
// detail maps, a planar shadow from the key light, the floor grid and the 2D overlay.
package render

import (
	"errors"
	"image"

	"fortio.org/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"product-viewer/internal/camera"
	"product-viewer/internal/lighting"
	"product-viewer/internal/model"
	"product-viewer/internal/scene"
	"product-viewer/internal/surface"
)

const (
	// shadowLift raises the shadow above the floor to avoid z-fighting with the grid.
	shadowLift  = 0.002
	shadowAlpha = 70
)

// ErrNoShader is returned when the lit shader fails to compile.
var ErrNoShader = errors.New("render: lit shader failed to load")

// partMaterial is the raylib material bound to one part.
type partMaterial struct {
	mtl rl.Material
}

// Renderer implements scene.Renderer on the current raylib window. Meshes, materials
// and detail textures are created on first draw and live until Close.
type Renderer struct {
	maps *surface.Library

	shader rl.Shader
	locs   litLocations
	shadow rl.Material

	meshes    map[*model.Mesh]*gpuMesh
	materials map[*model.Part]*partMaterial
	textures  map[*image.RGBA]rl.Texture2D

	width, height int
	shadows       bool
}

// New binds a renderer to the window surface. maps supplies detail textures; nil
// renders every part plain.
func New(surf scene.Surface, maps *surface.Library) (*Renderer, error) {
	if surf == nil || !surf.Ready() {
		return nil, scene.ErrNoSurface
	}
	shader := loadLitShader()
	if !rl.IsShaderValid(shader) {
		return nil, ErrNoShader
	}
	shadow := rl.LoadMaterialDefault()
	if m := shadow.GetMap(rl.MapAlbedo); m != nil {
		m.Color = rl.NewColor(0, 0, 0, shadowAlpha)
	}
	w, h := surf.Size()
	return &Renderer{
		maps:      maps,
		shader:    shader,
		locs:      lookupLocations(shader),
		shadow:    shadow,
		meshes:    make(map[*model.Mesh]*gpuMesh),
		materials: make(map[*model.Part]*partMaterial),
		textures:  make(map[*image.RGBA]rl.Texture2D),
		width:     w,
		height:    h,
	}, nil
}

// Factory returns a scene.RendererFactory producing renderers that share maps.
func Factory(maps *surface.Library) scene.RendererFactory {
	return func(surf scene.Surface) (scene.Renderer, error) {
		return New(surf, maps)
	}
}

// SetSize records the drawable size. The window itself is resized by the platform.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
}

// EnableShadows turns the planar key-light shadow on or off.
func (r *Renderer) EnableShadows(on bool) { r.shadows = on }

// Render clears to the scene background and draws every part through cam.
// Must be called between BeginDrawing and EndDrawing.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Camera) {
	rl.ClearBackground(s.Background)
	r.setLights(s.Lights(), cam)

	floor := float32(0)
	for i, p := range s.Products() {
		b := p.Bounds()
		if i == 0 || b.Min.Y() < floor {
			floor = b.Min.Y()
		}
	}

	rl.BeginMode3D(toCamera3D(cam))
	if s.GridVisible {
		drawFloorGrid(floor)
	}
	if r.shadows {
		if key, ok := lighting.ShadowCaster(s.Lights()); ok {
			r.drawShadows(s, key, floor+shadowLift)
		}
	}
	s.Walk(func(p *model.Part) bool {
		r.drawPart(p)
		return true
	})
	rl.EndMode3D()
}

func (r *Renderer) setLights(lights []lighting.Light, cam *camera.Camera) {
	var ambient mgl32.Vec3
	dirs := make([]float32, 0, maxDirectional*3)
	cols := make([]float32, 0, maxDirectional*3)
	for _, l := range lights {
		switch l.Kind {
		case lighting.Ambient:
			ambient = ambient.Add(l.Radiance())
		case lighting.Directional:
			if len(dirs) == cap(dirs) {
				log.LogVf("render: ignoring extra directional light %q", l.Name)
				continue
			}
			d, c := l.Direction(), l.Radiance()
			dirs = append(dirs, d[0], d[1], d[2])
			cols = append(cols, c[0], c[1], c[2])
		}
	}
	for len(dirs) < maxDirectional*3 {
		dirs = append(dirs, 0, -1, 0)
		cols = append(cols, 0, 0, 0)
	}
	setVec3(r.shader, r.locs.viewPos, cam.Position)
	setVec3(r.shader, r.locs.ambient, ambient)
	if r.locs.lightDir >= 0 {
		rl.SetShaderValueV(r.shader, r.locs.lightDir, dirs, rl.ShaderUniformVec3, maxDirectional)
	}
	if r.locs.lightColor >= 0 {
		rl.SetShaderValueV(r.shader, r.locs.lightColor, cols, rl.ShaderUniformVec3, maxDirectional)
	}
}

func (r *Renderer) drawPart(p *model.Part) {
	mesh := r.mesh(p.Mesh)
	pm := r.material(p)
	if m := pm.mtl.GetMap(rl.MapAlbedo); m != nil {
		m.Color = p.Material.Color
	}
	mat := p.Material
	setFloat(r.shader, r.locs.roughness, mat.Roughness)
	setFloat(r.shader, r.locs.metalness, mat.Metalness)
	setVec3(r.shader, r.locs.emissive, mgl32.Vec3{
		float32(mat.Emissive.R) / 255 * mat.EmissiveIntensity,
		float32(mat.Emissive.G) / 255 * mat.EmissiveIntensity,
		float32(mat.Emissive.B) / 255 * mat.EmissiveIntensity,
	})
	rl.DrawMesh(mesh.mesh, pm.mtl, toMatrix(p.World()))
}

func (r *Renderer) drawShadows(s *scene.Scene, key lighting.Light, planeY float32) {
	flatten, ok := key.ShadowMatrix(planeY)
	if !ok {
		return
	}
	rl.BeginBlendMode(rl.BlendAlpha)
	s.Walk(func(p *model.Part) bool {
		if p.CastShadow {
			rl.DrawMesh(r.mesh(p.Mesh).mesh, r.shadow, toMatrix(flatten.Mul4(p.World())))
		}
		return true
	})
	rl.EndBlendMode()
}

func (r *Renderer) mesh(m *model.Mesh) *gpuMesh {
	if g, ok := r.meshes[m]; ok {
		return g
	}
	g := upload(m)
	r.meshes[m] = g
	return g
}

func (r *Renderer) material(p *model.Part) *partMaterial {
	if pm, ok := r.materials[p]; ok {
		return pm
	}
	pm := &partMaterial{mtl: rl.LoadMaterialDefault()}
	pm.mtl.Shader = r.shader
	if r.maps != nil {
		detail, err := r.maps.For(p.Material)
		if err != nil {
			log.Warnf("render: %s: surface detail: %v", p.Name, err)
		}
		if detail != nil {
			rl.SetMaterialTexture(&pm.mtl, rl.MapAlbedo, r.texture(detail))
		}
	}
	r.materials[p] = pm
	return pm
}

func (r *Renderer) texture(img *image.RGBA) rl.Texture2D {
	if tex, ok := r.textures[img]; ok {
		return tex
	}
	tex := rl.LoadTextureFromImage(rl.NewImageFromImage(img))
	rl.GenTextureMipmaps(&tex)
	rl.SetTextureWrap(tex, rl.WrapRepeat)
	r.textures[img] = tex
	return tex
}

// Close releases every GPU resource the renderer created.
func (r *Renderer) Close() error {
	for _, g := range r.meshes {
		g.unload()
	}
	for _, tex := range r.textures {
		rl.UnloadTexture(tex)
	}
	rl.UnloadShader(r.shader)
	clear(r.meshes)
	clear(r.materials)
	clear(r.textures)
	log.Infof("render: released GPU resources")
	return nil
}
