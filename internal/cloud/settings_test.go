package cloud

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldSetClamps(t *testing.T) {
	s := DefaultSettings()

	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"blend", 1.7, 1},
		{"blend", -3, 0},
		{"noiseTexScale", 0.5, 0.02},
		{"noiseTexScale", 0, 0.01},
		{"step", 0.05, 0.1},
		{"rayStep", 2.5, 2},
		{"rayStep", 1.1, 1.1},
		// Unranged fields take any value.
		{"colorOffset1", -4, -4},
		{"phaseParams.w", 9, 9},
	}
	for _, tt := range tests {
		f, ok := s.Field(tt.name)
		require.True(t, ok, tt.name)
		f.Set(tt.in)
		assert.Equal(t, tt.want, f.Get(), "%s <- %v", tt.name, tt.in)
	}
	assert.Equal(t, float32(9), s.PhaseParams[3])
}

func TestFieldUnknown(t *testing.T) {
	_, ok := DefaultSettings().Field("density")
	assert.False(t, ok)
}

func TestFieldsPointIntoSettings(t *testing.T) {
	s := DefaultSettings()
	for _, f := range s.Fields() {
		f.Set(f.Get())
	}
	assert.Equal(t, DefaultSettings(), s)

	f, _ := s.Field("lightAbsorptionThroughCloud")
	f.Set(0.25)
	assert.Equal(t, float32(0.25), s.LightAbsorptionThroughCloud)
}

func TestDefaultsWithinRanges(t *testing.T) {
	for _, f := range DefaultSettings().Fields() {
		if f.Range == nil {
			continue
		}
		assert.Equal(t, f.Range.Clamp(f.Get()), f.Get(), f.Name)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("1 0.5 0.25")
	require.NoError(t, err)
	assert.Equal(t, Color{1, 0.5, 0.25, 1}, c)

	c, err = ParseColor("  0 0 0   0.5 ")
	require.NoError(t, err)
	assert.Equal(t, Color{0, 0, 0, 0.5}, c)

	_, err = ParseColor("1 1")
	assert.Error(t, err)
	_, err = ParseColor("1 x 1")
	assert.Error(t, err)
}

func TestColorText(t *testing.T) {
	in := Color{0.25, 0.5, 1, 0.75}
	text, err := in.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "0.25 0.5 1 0.75", string(text))

	assert.Equal(t, "1 1 1", White.String())

	var out Color
	require.NoError(t, out.UnmarshalText(text))
	assert.Equal(t, in, out)
}

func TestSheetOrder(t *testing.T) {
	s := NewSheet("x")
	s.SetFloat("b", 1)
	s.SetVector("a", mgl32.Vec4{1, 2, 3, 4})
	s.SetFloat("b", 2)
	s.SetColor("c", Black)

	assert.Equal(t, []string{"b", "a", "c"}, s.Names())
	assert.Equal(t, 3, s.Len())

	b, _ := s.Get("b")
	assert.Equal(t, float32(2), b.Float)
	c, _ := s.Get("c")
	assert.Equal(t, KindColor, c.Kind)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, c.Vector)

	names := s.Names()
	names[0] = "z"
	assert.Equal(t, "b", s.Names()[0])
}
