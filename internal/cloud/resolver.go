package cloud

import "volumecloud/internal/utils"

// ShaderName identifies the external cloud fragment program.
const ShaderName = "Hidden/PostProcessing/ColorTint"

// SampleName labels the pass in the command timings.
const SampleName = "ScreenColorTint"

// Uniform names consumed by the cloud program.
const (
	UniformColor                 = "_Color"
	UniformBlend                 = "_BlendMultiply"
	UniformInverseProjection     = "_InverseProjectionMatrix"
	UniformInverseView           = "_InverseViewMatrix"
	UniformBoundsMin             = "_boundsMin"
	UniformBoundsMax             = "_boundsMax"
	UniformNoise3D               = "_noise3D"
	UniformNoiseTexScale         = "_noiseTexScale"
	UniformStep                  = "_step"
	UniformRayStep               = "_rayStep"
	UniformColA                  = "_colA"
	UniformColB                  = "_colB"
	UniformColorOffset1          = "_colorOffset1"
	UniformColorOffset2          = "_colorOffset2"
	UniformAbsorptionTowardSun   = "_lightAbsorptionTowardSun"
	UniformAbsorptionThroughBody = "_lightAbsorptionThroughCloud"
	UniformPhaseParams           = "_phaseParams"

	// Globals shared with other passes.
	GlobalLightDirection = "_WorldSpaceLightPos0"
	GlobalLightColor     = "_LightColor0"
)

// Finder looks up scene objects by name.
type Finder interface {
	Find(name string) (*Transform, bool)
}

// Command records GPU work for one frame.
type Command interface {
	BeginSample(name string)
	EndSample(name string)
	// BlitFullscreenTriangle samples src, runs pass of sheet's program and
	// writes dst. A nil sheet copies src unchanged.
	BlitFullscreenTriangle(src, dst Texture, sheet *Sheet, pass int)
}

// FrameContext is everything one invocation reads. None of it is owned by
// the resolver.
type FrameContext struct {
	Source      Texture
	Destination Texture
	Camera      Camera
	API         GraphicsAPI

	// Box, when set, is used instead of the cached CloudBox lookup.
	Box *Transform
	// Light is the scene's sun; nil leaves the light globals untouched.
	Light *DirectionalLight

	Command Command
	Globals *Sheet
}

// Resolver derives the cloud program's uniforms from the frame state and
// issues the fullscreen draw.
type Resolver struct {
	Settings *Settings

	finder      Finder
	initialized bool
	box         *Transform
}

func NewResolver(settings *Settings, finder Finder) *Resolver {
	return &Resolver{
		Settings: settings,
		finder:   finder,
	}
}

// Init looks up the CloudBox once. A missing box is not an error; the bounds
// uniforms are simply never published.
func (r *Resolver) Init() {
	if r.initialized {
		return
	}
	r.initialized = true

	if r.finder == nil {
		return
	}
	if box, ok := r.finder.Find(BoxName); ok && box != nil {
		r.box = box
		return
	}
	utils.Debug("Cloud: %s not found, bounds will not be published", BoxName)
}

// Invalidate forgets the cached CloudBox so the next frame looks it up again.
func (r *Resolver) Invalidate() {
	r.initialized = false
	r.box = nil
}

// Box returns the transform bounds are taken from this frame, or nil.
func (r *Resolver) Box(ctx FrameContext) *Transform {
	if ctx.Box != nil {
		return ctx.Box
	}
	return r.box
}

// Resolve writes this frame's uniforms into sheet and the light globals into
// ctx.Globals.
func (r *Resolver) Resolve(ctx FrameContext, sheet *Sheet) {
	s := r.Settings

	// 1. Camera
	projection := GPUProjection(ctx.Camera.Projection, ctx.API, false)
	sheet.SetMatrix(UniformInverseProjection, projection.Inv())
	sheet.SetMatrix(UniformInverseView, ctx.Camera.CameraToWorld)

	// 2. Box bounds
	if box := r.Box(ctx); box != nil {
		lo, hi := Bounds(box)
		sheet.SetVector(UniformBoundsMin, lo.Vec4(0))
		sheet.SetVector(UniformBoundsMax, hi.Vec4(0))
	}

	// 3. Tint
	sheet.SetColor(UniformColor, s.Color)
	sheet.SetFloat(UniformBlend, s.Blend)

	// 4. Noise; zero means unset
	if s.Noise3D != nil {
		sheet.SetTexture(UniformNoise3D, s.Noise3D)
	}
	if s.NoiseTexScale != 0 {
		sheet.SetFloat(UniformNoiseTexScale, s.NoiseTexScale)
	}

	// 5. March steps; zero means unset
	if s.Step != 0 {
		sheet.SetFloat(UniformStep, s.Step)
	}
	if s.RayStep != 0 {
		sheet.SetFloat(UniformRayStep, s.RayStep)
	}

	// 6. Scattering
	sheet.SetColor(UniformColA, s.ColA)
	sheet.SetColor(UniformColB, s.ColB)
	sheet.SetFloat(UniformColorOffset1, s.ColorOffset1)
	sheet.SetFloat(UniformColorOffset2, s.ColorOffset2)
	sheet.SetFloat(UniformAbsorptionTowardSun, s.LightAbsorptionTowardSun)
	sheet.SetFloat(UniformAbsorptionThroughBody, s.LightAbsorptionThroughCloud)
	sheet.SetVector(UniformPhaseParams, s.PhaseParams)

	// 7. Sun, published as globals
	if ctx.Light != nil && ctx.Globals != nil {
		ctx.Globals.SetVector(GlobalLightDirection, ctx.Light.ToLight().Vec4(0))
		ctx.Globals.SetColor(GlobalLightColor, ctx.Light.Color)
	}
}

// Render resolves the frame and records the fullscreen pass. It returns the
// sheet that was drawn with, or nil when the effect is disabled.
func (r *Resolver) Render(ctx FrameContext) *Sheet {
	r.Init()

	cmd := ctx.Command
	cmd.BeginSample(SampleName)
	defer cmd.EndSample(SampleName)

	if !r.Settings.Enabled {
		cmd.BlitFullscreenTriangle(ctx.Source, ctx.Destination, nil, 0)
		return nil
	}

	sheet := NewSheet(ShaderName)
	r.Resolve(ctx, sheet)
	cmd.BlitFullscreenTriangle(ctx.Source, ctx.Destination, sheet, 0)
	return sheet
}
