package cloud

import "github.com/go-gl/mathgl/mgl32"

// DirectionalLight is the scene's sun.
type DirectionalLight struct {
	Rotation mgl32.Quat
	Color    Color
}

// LightFromDirection builds a light whose forward vector is dir.
func LightFromDirection(dir mgl32.Vec3, color Color) *DirectionalLight {
	return &DirectionalLight{
		Rotation: mgl32.QuatBetweenVectors(mgl32.Vec3{0, 0, -1}, dir.Normalize()),
		Color:    color,
	}
}

// Forward is the direction the light travels in (local -Z rotated into world space).
func (l *DirectionalLight) Forward() mgl32.Vec3 {
	return l.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

// ToLight points from a lit surface back toward the light.
func (l *DirectionalLight) ToLight() mgl32.Vec3 {
	return l.Forward().Mul(-1)
}
