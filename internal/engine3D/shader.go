package engine3D

import (
	"os"
	"path/filepath"

	"volumecloud/internal/glsl"
	"volumecloud/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Fallback tint/blend program used when the cloud asset is missing or fails
// to compile. It consumes the same _Color/_BlendMultiply uniforms.
const fallbackFragment = `#version 330
in vec2 fragTexCoord;
in vec4 fragColor;
uniform sampler2D texture0;
uniform vec4 _Color;
uniform float _BlendMultiply;
out vec4 finalColor;
void main() {
    vec4 scene = texture(texture0, fragTexCoord);
    finalColor = vec4(mix(scene.rgb, scene.rgb * _Color.rgb, _BlendMultiply), scene.a);
}
`

// Program is a compiled shader with its uniform locations cached by name.
type Program struct {
	Name      string
	Shader    rl.Shader
	Builtin   bool
	locations map[string]int32
}

// Location returns the uniform location of name, -1 when the program does
// not declare it.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := rl.GetShaderLocation(p.Shader, name)
	p.locations[name] = loc
	return loc
}

func (p *Program) Unload() {
	if p.Shader.ID != 0 {
		rl.UnloadShader(p.Shader)
	}
}

func readInclude(name string) ([]byte, error) {
	return os.ReadFile(utils.ResolveAssetPath(filepath.Join("shaders", name)))
}

func compile(name, vSource, fSource string) (shader rl.Shader) {
	defer func() {
		if r := recover(); r != nil {
			utils.Error("Shader: %s - Compilation panic (skipping): %v", name, r)
			shader = rl.Shader{}
		}
	}()
	return rl.LoadShaderFromMemory(vSource, fSource)
}

// LoadProgram loads shaders/<file>.frag (and .vert when present) through the
// asset path. Any failure falls back to the built-in tint program.
func LoadProgram(name, file string, defines map[string]int) *Program {
	program := &Program{Name: name, locations: make(map[string]int32)}

	fragPath := utils.ResolveAssetPath(filepath.Join("shaders", file+".frag"))
	vertPath := utils.ResolveAssetPath(filepath.Join("shaders", file+".vert"))

	var vSource, fSource string
	if data, err := os.ReadFile(fragPath); err == nil {
		fSource = glsl.Preprocess(string(data), defines, readInclude)
	} else {
		utils.Warn("Shader: %s - No fragment source at %s, using built-in tint pass", name, fragPath)
	}
	if data, err := os.ReadFile(vertPath); err == nil {
		vSource = glsl.Preprocess(string(data), defines, readInclude)
	}

	if fSource != "" {
		utils.Debug("Shader: Compiling %s (Defines: %v)", name, defines)
		program.Shader = compile(name, vSource, fSource)
		if program.Shader.ID != 0 {
			utils.Info("Shader: %s - Loaded successfully (ID: %d)", name, program.Shader.ID)
			return program
		}
		utils.Warn("Shader: %s - Failed to compile, using built-in tint pass", name)
	}

	program.Builtin = true
	program.Shader = compile(name+" (builtin)", "", fallbackFragment)
	return program
}
