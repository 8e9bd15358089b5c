package cloud

import "github.com/go-gl/mathgl/mgl32"

// BoxName is the scene object that bounds the cloud volume.
const BoxName = "CloudBox"

// Transform is the position and scale of a scene object. The scene owns it;
// the resolver only reads it.
type Transform struct {
	Position mgl32.Vec3 `toml:"position"`
	Scale    mgl32.Vec3 `toml:"scale"`
}

// Bounds returns the axis-aligned corners of a box centred on the transform's
// position with the transform's scale as its extents.
func Bounds(t *Transform) (lo, hi mgl32.Vec3) {
	half := t.Scale.Mul(0.5)
	return t.Position.Sub(half), t.Position.Add(half)
}
