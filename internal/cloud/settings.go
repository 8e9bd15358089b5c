package cloud

import "github.com/go-gl/mathgl/mgl32"

// Range is the nominal interval of an editable scalar.
type Range struct {
	Min, Max float32
}

func (r Range) Clamp(v float32) float32 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

var (
	BlendRange         = Range{0, 1}
	NoiseTexScaleRange = Range{0.01, 0.02}
	StepRange          = Range{0.1, 3}
	RayStepRange       = Range{0.1, 2}
)

// Texture is a GPU texture handle owned by the rendering backend.
type Texture interface {
	Width() int32
	Height() int32
}

// Settings are the designer-facing parameters of the cloud pass. Every field
// is independently editable; nothing here validates against the declared
// ranges except Field.Set.
type Settings struct {
	Enabled bool `toml:"enabled"`

	Color Color   `toml:"color"`
	Blend float32 `toml:"blend"`

	Noise3D       Texture `toml:"-"`
	NoisePath     string  `toml:"noise_path,omitempty"`
	NoiseTexScale float32 `toml:"noise_tex_scale"`

	// Step is the primary march step, RayStep the secondary (light) march step.
	Step    float32 `toml:"step"`
	RayStep float32 `toml:"ray_step"`

	ColA         Color   `toml:"col_a"`
	ColB         Color   `toml:"col_b"`
	ColorOffset1 float32 `toml:"color_offset1"`
	ColorOffset2 float32 `toml:"color_offset2"`

	LightAbsorptionTowardSun    float32    `toml:"light_absorption_toward_sun"`
	LightAbsorptionThroughCloud float32    `toml:"light_absorption_through_cloud"`
	PhaseParams                 mgl32.Vec4 `toml:"phase_params"`
}

func DefaultSettings() *Settings {
	return &Settings{
		Enabled:                     true,
		Color:                       White,
		Blend:                       0.5,
		NoiseTexScale:               0.01,
		Step:                        2,
		RayStep:                     1.2,
		ColA:                        White,
		ColB:                        White,
		ColorOffset1:                0.59,
		ColorOffset2:                1.02,
		LightAbsorptionTowardSun:    0.1,
		LightAbsorptionThroughCloud: 1,
		PhaseParams:                 mgl32.Vec4{0.72, 1, 0.5, 1.58},
	}
}

// Field describes one editable scalar of Settings.
type Field struct {
	Name    string
	Tooltip string
	Range   *Range
	Value   *float32
}

// Set writes v into the field, clamped to its range when it has one.
func (f Field) Set(v float32) {
	if f.Range != nil {
		v = f.Range.Clamp(v)
	}
	*f.Value = v
}

func (f Field) Get() float32 {
	return *f.Value
}

// Fields lists the scalar parameters in editor order. The returned fields
// point into s.
func (s *Settings) Fields() []Field {
	return []Field{
		{Name: "blend", Tooltip: "Tint intensity", Range: &BlendRange, Value: &s.Blend},
		{Name: "noiseTexScale", Tooltip: "3D noise coordinate scale", Range: &NoiseTexScaleRange, Value: &s.NoiseTexScale},
		{Name: "step", Tooltip: "Ray march step", Range: &StepRange, Value: &s.Step},
		{Name: "rayStep", Tooltip: "Secondary ray step", Range: &RayStepRange, Value: &s.RayStep},
		{Name: "colorOffset1", Tooltip: "Gradient offset (mid)", Value: &s.ColorOffset1},
		{Name: "colorOffset2", Tooltip: "Gradient offset (dark)", Value: &s.ColorOffset2},
		{Name: "lightAbsorptionTowardSun", Tooltip: "Absorption toward the sun", Value: &s.LightAbsorptionTowardSun},
		{Name: "lightAbsorptionThroughCloud", Tooltip: "Absorption through the cloud", Value: &s.LightAbsorptionThroughCloud},
		{Name: "phaseParams.x", Tooltip: "Phase forward scattering", Value: &s.PhaseParams[0]},
		{Name: "phaseParams.y", Tooltip: "Phase back scattering", Value: &s.PhaseParams[1]},
		{Name: "phaseParams.z", Tooltip: "Phase base brightness", Value: &s.PhaseParams[2]},
		{Name: "phaseParams.w", Tooltip: "Phase factor", Value: &s.PhaseParams[3]},
	}
}

// Field looks up a scalar by name.
func (s *Settings) Field(name string) (Field, bool) {
	for _, f := range s.Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
