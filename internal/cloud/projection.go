package cloud

import "github.com/go-gl/mathgl/mgl32"

// GraphicsAPI selects the clip-space convention the fragment program expects.
type GraphicsAPI int

const (
	APIOpenGL GraphicsAPI = iota
	APIDirect3D
	APIDirect3DReversedZ
)

func (a GraphicsAPI) String() string {
	switch a {
	case APIOpenGL:
		return "opengl"
	case APIDirect3D:
		return "d3d"
	case APIDirect3DReversedZ:
		return "d3d-reversed-z"
	}
	return "unknown"
}

// Camera is the per-frame camera state read by the resolver.
type Camera struct {
	// Projection is the OpenGL-style projection (clip z in [-1,1]).
	Projection mgl32.Mat4
	// CameraToWorld is the inverse of the view matrix.
	CameraToWorld mgl32.Mat4
}

// GPUProjection converts an OpenGL-style projection into the convention of
// the target API. OpenGL matrices pass through unchanged. Direct3D remaps clip
// depth to [0,1] (or [1,0] with reversed Z) and flips Y when rendering into a
// texture.
func GPUProjection(p mgl32.Mat4, api GraphicsAPI, renderIntoTexture bool) mgl32.Mat4 {
	if api == APIOpenGL {
		return p
	}

	z := p.Row(2)
	w := p.Row(3)
	switch api {
	case APIDirect3D:
		p.SetRow(2, z.Mul(0.5).Add(w.Mul(0.5)))
	case APIDirect3DReversedZ:
		p.SetRow(2, z.Mul(-0.5).Add(w.Mul(0.5)))
	}

	if renderIntoTexture {
		p.SetRow(1, p.Row(1).Mul(-1))
	}
	return p
}
