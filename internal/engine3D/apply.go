package engine3D

import (
	"volumecloud/internal/cloud"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// ToMatrix converts a column-major mgl32 matrix into raylib's layout.
func ToMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M4: m[4], M8: m[8], M12: m[12],
		M1: m[1], M5: m[5], M9: m[9], M13: m[13],
		M2: m[2], M6: m[6], M10: m[10], M14: m[14],
		M3: m[3], M7: m[7], M11: m[11], M15: m[15],
	}
}

// FromVector3 converts a raylib vector.
func FromVector3(v rl.Vector3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func ToVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

// ToColor converts a linear colour to 8-bit raylib colour, clamping.
func ToColor(c cloud.Color) rl.Color {
	q := func(v float32) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return rl.NewColor(q(c.R), q(c.G), q(c.B), q(c.A))
}

// ApplySheet uploads every uniform the program declares. Uniforms the
// program does not use resolve to -1 and are skipped.
func ApplySheet(program *Program, sheet *cloud.Sheet) {
	if sheet == nil {
		return
	}
	shader := program.Shader

	sheet.Each(func(name string, u cloud.Uniform) {
		loc := program.Location(name)
		if loc == -1 {
			return
		}

		switch u.Kind {
		case cloud.KindFloat:
			rl.SetShaderValue(shader, loc, []float32{u.Float}, rl.ShaderUniformFloat)
		case cloud.KindColor, cloud.KindVector:
			rl.SetShaderValue(shader, loc, u.Vector[:], rl.ShaderUniformVec4)
		case cloud.KindMatrix:
			rl.SetShaderValueMatrix(shader, loc, ToMatrix(u.Matrix))
		case cloud.KindTexture:
			if tex, _, ok := textureOf(u.Texture); ok {
				rl.SetShaderValueTexture(shader, loc, tex)
			}
		}
	})
}
