// Package config loads the effect profile and discovers asset directories.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"volumecloud/internal/cloud"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// Profile is the on-disk form of everything a designer tunes: the effect
// settings and the scene objects the pass reads.
type Profile struct {
	Effect cloud.Settings `toml:"effect"`
	Box    BoxConfig      `toml:"box"`
	Light  LightConfig    `toml:"light"`
	Camera CameraConfig   `toml:"camera"`
}

type BoxConfig struct {
	Enabled  bool       `toml:"enabled"`
	Position mgl32.Vec3 `toml:"position"`
	Scale    mgl32.Vec3 `toml:"scale"`
}

// Transform returns the configured CloudBox, or nil when disabled.
func (b BoxConfig) Transform() *cloud.Transform {
	if !b.Enabled {
		return nil
	}
	return &cloud.Transform{Position: b.Position, Scale: b.Scale}
}

type LightConfig struct {
	Enabled   bool        `toml:"enabled"`
	Direction mgl32.Vec3  `toml:"direction"`
	Color     cloud.Color `toml:"color"`
}

// DirectionalLight returns the configured sun, or nil when disabled or when
// the direction is degenerate.
func (l LightConfig) DirectionalLight() *cloud.DirectionalLight {
	if !l.Enabled || l.Direction.Len() == 0 {
		return nil
	}
	return cloud.LightFromDirection(l.Direction, l.Color)
}

type CameraConfig struct {
	Position mgl32.Vec3 `toml:"position"`
	Target   mgl32.Vec3 `toml:"target"`
	FovY     float32    `toml:"fovy"`
}

func DefaultProfile() *Profile {
	return &Profile{
		Effect: *cloud.DefaultSettings(),
		Box: BoxConfig{
			Enabled:  true,
			Position: mgl32.Vec3{0, 12, 0},
			Scale:    mgl32.Vec3{40, 8, 40},
		},
		Light: LightConfig{
			Enabled:   true,
			Direction: mgl32.Vec3{-0.4, -1, -0.3},
			Color:     cloud.NewColor(1, 0.96, 0.9),
		},
		Camera: CameraConfig{
			Position: mgl32.Vec3{30, 6, 30},
			Target:   mgl32.Vec3{0, 8, 0},
			FovY:     60,
		},
	}
}

// ParseProfile decodes TOML on top of the defaults. Unknown keys are errors
// so typos in a profile do not pass silently.
func ParseProfile(data []byte) (*Profile, error) {
	p := DefaultProfile()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return nil, err
	}
	return p, nil
}

func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := ParseProfile(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

func SaveProfile(path string, p *Profile) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write profile %s: %w", path, err)
	}
	return nil
}

// Apply copies the tunable effect values into dst, keeping the runtime
// texture handle dst already holds unless the noise source changed.
func (p *Profile) Apply(dst *cloud.Settings) (noiseChanged bool) {
	noise := dst.Noise3D
	noiseChanged = dst.NoisePath != p.Effect.NoisePath
	*dst = p.Effect
	if !noiseChanged {
		dst.Noise3D = noise
	}
	return noiseChanged
}

// Overrides holds command line values that win over every loaded profile,
// including ones picked up by a reload.
type Overrides struct {
	NoisePath string
}

func (o Overrides) Apply(p *Profile) {
	if o.NoisePath != "" {
		p.Effect.NoisePath = o.NoisePath
	}
}
