package render

import rl "github.com/gen2brain/raylib-go/raylib"

// maxDirectional is the number of directional lights the lit shader accepts.
const maxDirectional = 2

// loadLitShader returns the part shader: ambient plus up to two directional lights,
// a roughness/metalness specular term and emissive. The albedo texture carries the
// surface detail map, or raylib's default white texture for plain parts.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  fragPosition = vec3(matModel * vec4(vertexPosition, 1.0));
  fragTexCoord = vertexTexCoord;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 ambient;
uniform vec3 lightDir[2];
uniform vec3 lightColor[2];
uniform float roughness;
uniform float metalness;
uniform vec3 emissive;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  vec3 diffuseColor = tint.rgb * (1.0 - metalness);
  vec3 specColor = mix(vec3(0.04), tint.rgb, metalness);
  float shininess = mix(128.0, 4.0, roughness);
  vec3 color = ambient * tint.rgb;
  for (int i = 0; i < 2; i++) {
    vec3 L = normalize(-lightDir[i]);
    float NdotL = max(dot(N, L), 0.0);
    vec3 H = normalize(L + V);
    float spec = pow(max(dot(N, H), 0.0), shininess) * (1.0 - roughness);
    vec3 specular = specColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
    color += (diffuseColor * NdotL + specular) * lightColor[i];
  }
  finalColor = vec4(color + emissive, tint.a);
}
`
)

// litLocations caches the custom uniform locations of the lit shader.
type litLocations struct {
	viewPos, ambient, lightDir, lightColor int32
	roughness, metalness, emissive         int32
}

func lookupLocations(s rl.Shader) litLocations {
	return litLocations{
		viewPos:    rl.GetShaderLocation(s, "viewPos"),
		ambient:    rl.GetShaderLocation(s, "ambient"),
		lightDir:   rl.GetShaderLocation(s, "lightDir"),
		lightColor: rl.GetShaderLocation(s, "lightColor"),
		roughness:  rl.GetShaderLocation(s, "roughness"),
		metalness:  rl.GetShaderLocation(s, "metalness"),
		emissive:   rl.GetShaderLocation(s, "emissive"),
	}
}

func setVec3(s rl.Shader, loc int32, v [3]float32) {
	if loc < 0 {
		return
	}
	rl.SetShaderValue(s, loc, v[:], rl.ShaderUniformVec3)
}

func setFloat(s rl.Shader, loc int32, f float32) {
	if loc < 0 {
		return
	}
	rl.SetShaderValue(s, loc, []float32{f}, rl.ShaderUniformFloat)
}
