package engine3D

import (
	"math"

	"volumecloud/internal/cloud"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// raylib's BeginMode3D clip planes.
const (
	ClipNear = 0.01
	ClipFar  = 1000.0
)

// Object is a named scene object. Hidden objects take part in lookups only.
type Object struct {
	Name      string
	Transform *cloud.Transform
	Color     rl.Color
	Hidden    bool
}

// Scene holds the demo geometry, the sun and the orbit camera. It
// implements cloud.Finder.
type Scene struct {
	Camera rl.Camera3D
	Sun    *cloud.DirectionalLight
	Sky    rl.Color

	Objects []*Object

	yaw, pitch, distance float64

	// OnChange is called after an object is added or removed.
	OnChange func(name string)
}

// NewScene places the camera at position looking at target.
func NewScene(position, target mgl32.Vec3, fovy float32) *Scene {
	s := &Scene{
		Camera: rl.Camera3D{
			Position:   ToVector3(position),
			Target:     ToVector3(target),
			Up:         rl.NewVector3(0, 1, 0),
			Fovy:       fovy,
			Projection: rl.CameraPerspective,
		},
		Sky: rl.NewColor(110, 150, 200, 255),
	}

	offset := position.Sub(target)
	s.distance = float64(offset.Len())
	if s.distance == 0 {
		s.distance = 1
	}
	s.yaw = math.Atan2(float64(offset[0]), float64(offset[2]))
	s.pitch = math.Asin(float64(offset[1]) / s.distance)

	s.addGround()
	return s
}

func (s *Scene) addGround() {
	pillars := []mgl32.Vec3{{-12, 2, -8}, {10, 3, -6}, {-4, 1.5, 12}, {14, 4, 10}}
	for i, p := range pillars {
		s.Objects = append(s.Objects, &Object{
			Name:      "Pillar" + string(rune('A'+i)),
			Transform: &cloud.Transform{Position: p, Scale: mgl32.Vec3{3, p[1] * 2, 3}},
			Color:     rl.NewColor(170, 160, 150, 255),
		})
	}
}

func (s *Scene) Find(name string) (*cloud.Transform, bool) {
	for _, o := range s.Objects {
		if o.Name == name {
			return o.Transform, true
		}
	}
	return nil, false
}

// SetBox adds, moves or (with nil) removes the CloudBox.
func (s *Scene) SetBox(t *cloud.Transform) {
	if t == nil {
		s.Remove(cloud.BoxName)
		return
	}
	if existing, ok := s.Find(cloud.BoxName); ok {
		*existing = *t
		return
	}
	copied := *t
	s.Objects = append(s.Objects, &Object{
		Name:      cloud.BoxName,
		Transform: &copied,
		Color:     rl.Green,
		Hidden:    true,
	})
	s.changed(cloud.BoxName)
}

func (s *Scene) changed(name string) {
	if s.OnChange != nil {
		s.OnChange(name)
	}
}

// Remove deletes the named object and reports whether it existed.
func (s *Scene) Remove(name string) bool {
	for i, o := range s.Objects {
		if o.Name != name {
			continue
		}
		s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
		s.changed(name)
		return true
	}
	return false
}

// Orbit rotates the camera around its target by radians.
func (s *Scene) Orbit(dYaw, dPitch float64) {
	s.yaw += dYaw
	s.pitch = math.Max(-1.45, math.Min(1.45, s.pitch+dPitch))
	s.updateCamera()
}

// SetOrbit places the camera at absolute yaw/pitch.
func (s *Scene) SetOrbit(yaw, pitch float64) {
	s.yaw = yaw
	s.pitch = math.Max(-1.45, math.Min(1.45, pitch))
	s.updateCamera()
}

// Orientation returns the current orbit yaw and pitch in radians.
func (s *Scene) Orientation() (yaw, pitch float64) {
	return s.yaw, s.pitch
}

func (s *Scene) Zoom(factor float64) {
	s.distance = math.Max(1, math.Min(ClipFar/2, s.distance*factor))
	s.updateCamera()
}

func (s *Scene) updateCamera() {
	cp := math.Cos(s.pitch)
	offset := rl.NewVector3(
		float32(s.distance*cp*math.Sin(s.yaw)),
		float32(s.distance*math.Sin(s.pitch)),
		float32(s.distance*cp*math.Cos(s.yaw)),
	)
	s.Camera.Position = rl.Vector3Add(s.Camera.Target, offset)
}

// CameraState returns the matrices BeginMode3D uses for the given aspect.
func (s *Scene) CameraState(aspect float32) cloud.Camera {
	eye := FromVector3(s.Camera.Position)
	view := mgl32.LookAtV(eye, FromVector3(s.Camera.Target), FromVector3(s.Camera.Up))
	projection := mgl32.Perspective(mgl32.DegToRad(s.Camera.Fovy), aspect, ClipNear, ClipFar)
	return cloud.Camera{
		Projection:    projection,
		CameraToWorld: view.Inv(),
	}
}

// Draw renders the visible objects. Call between BeginScene and EndScene.
func (s *Scene) Draw() {
	rl.BeginMode3D(s.Camera)
	rl.DrawPlane(rl.NewVector3(0, 0, 0), rl.NewVector2(120, 120), rl.NewColor(90, 120, 80, 255))
	rl.DrawGrid(60, 2)

	for _, o := range s.Objects {
		if o.Hidden {
			continue
		}
		pos := ToVector3(o.Transform.Position)
		size := o.Transform.Scale
		rl.DrawCube(pos, size[0], size[1], size[2], o.Color)
		rl.DrawCubeWires(pos, size[0], size[1], size[2], rl.DarkGray)
	}

	if s.Sun != nil {
		// Marker a fixed distance toward the sun from the target.
		marker := FromVector3(s.Camera.Target).Add(s.Sun.ToLight().Mul(60))
		rl.DrawSphere(ToVector3(marker), 2, ToColor(s.Sun.Color))
	}
	rl.EndMode3D()
}
