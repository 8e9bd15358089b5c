package cloud

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTexture struct{ w, h int32 }

func (t *fakeTexture) Width() int32  { return t.w }
func (t *fakeTexture) Height() int32 { return t.h }

type fakeFinder struct {
	objects map[string]*Transform
	calls   int
}

func (f *fakeFinder) Find(name string) (*Transform, bool) {
	f.calls++
	t, ok := f.objects[name]
	return t, ok
}

type blit struct {
	src, dst Texture
	sheet    *Sheet
	pass     int
}

type fakeCommand struct {
	samples []string
	blits   []blit
}

func (c *fakeCommand) BeginSample(name string) { c.samples = append(c.samples, "begin "+name) }
func (c *fakeCommand) EndSample(name string)   { c.samples = append(c.samples, "end "+name) }
func (c *fakeCommand) BlitFullscreenTriangle(src, dst Texture, sheet *Sheet, pass int) {
	c.blits = append(c.blits, blit{src, dst, sheet, pass})
}

func testCamera() Camera {
	view := mgl32.LookAtV(mgl32.Vec3{10, 5, 10}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	return Camera{
		Projection:    mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.3, 1000),
		CameraToWorld: view.Inv(),
	}
}

func newContext() (FrameContext, *fakeCommand) {
	cmd := &fakeCommand{}
	return FrameContext{
		Source:      &fakeTexture{1280, 720},
		Destination: &fakeTexture{1280, 720},
		Camera:      testCamera(),
		API:         APIOpenGL,
		Command:     cmd,
		Globals:     NewSheet("globals"),
	}, cmd
}

func resolve(t *testing.T, s *Settings, finder Finder, ctx FrameContext) *Sheet {
	t.Helper()
	r := NewResolver(s, finder)
	r.Init()
	sheet := NewSheet(ShaderName)
	r.Resolve(ctx, sheet)
	return sheet
}

func assertMat4Identity(t *testing.T, m mgl32.Mat4) {
	t.Helper()
	id := mgl32.Ident4()
	for i := range m {
		assert.InDelta(t, id[i], m[i], 1e-4, "element %d", i)
	}
}

func TestInverseProjection(t *testing.T) {
	projections := []struct {
		name string
		m    mgl32.Mat4
	}{
		{"perspective60", mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.3, 1000)},
		{"perspective90", mgl32.Perspective(mgl32.DegToRad(90), 1, 0.01, 100)},
		{"ortho", mgl32.Ortho(-10, 10, -5, 5, 0.1, 50)},
	}
	apis := []GraphicsAPI{APIOpenGL, APIDirect3D, APIDirect3DReversedZ}

	for _, p := range projections {
		for _, api := range apis {
			t.Run(p.name+"/"+api.String(), func(t *testing.T) {
				ctx, _ := newContext()
				ctx.Camera.Projection = p.m
				ctx.API = api
				sheet := resolve(t, DefaultSettings(), nil, ctx)

				u, ok := sheet.Get(UniformInverseProjection)
				require.True(t, ok)
				assert.Equal(t, KindMatrix, u.Kind)
				assertMat4Identity(t, u.Matrix.Mul4(GPUProjection(p.m, api, false)))
			})
		}
	}
}

func TestGPUProjection(t *testing.T) {
	p := mgl32.Perspective(mgl32.DegToRad(60), 1.5, 0.3, 1000)

	assert.Equal(t, p, GPUProjection(p, APIOpenGL, true))

	// Near plane maps to 0 and far to 1 under Direct3D, reversed otherwise.
	near := mgl32.Vec4{0, 0, -0.3, 1}
	far := mgl32.Vec4{0, 0, -1000, 1}

	d3d := GPUProjection(p, APIDirect3D, false)
	n, f := d3d.Mul4x1(near), d3d.Mul4x1(far)
	assert.InDelta(t, 0, n[2]/n[3], 1e-5)
	assert.InDelta(t, 1, f[2]/f[3], 1e-4)

	rev := GPUProjection(p, APIDirect3DReversedZ, false)
	n, f = rev.Mul4x1(near), rev.Mul4x1(far)
	assert.InDelta(t, 1, n[2]/n[3], 1e-5)
	assert.InDelta(t, 0, f[2]/f[3], 1e-4)

	flipped := GPUProjection(p, APIDirect3D, true)
	assert.Equal(t, d3d.Row(1).Mul(-1), flipped.Row(1))
}

func TestInverseViewIsCameraToWorld(t *testing.T) {
	ctx, _ := newContext()
	sheet := resolve(t, DefaultSettings(), nil, ctx)

	u, ok := sheet.Get(UniformInverseView)
	require.True(t, ok)
	assert.Equal(t, ctx.Camera.CameraToWorld, u.Matrix)
}

func TestBoundsExact(t *testing.T) {
	box := &Transform{Position: mgl32.Vec3{1.5, -2, 7}, Scale: mgl32.Vec3{3, 5, 0.25}}
	finder := &fakeFinder{objects: map[string]*Transform{BoxName: box}}

	ctx, _ := newContext()
	sheet := resolve(t, DefaultSettings(), finder, ctx)

	lo, ok := sheet.Get(UniformBoundsMin)
	require.True(t, ok)
	hi, ok := sheet.Get(UniformBoundsMax)
	require.True(t, ok)

	assert.Equal(t, mgl32.Vec4{0, -4.5, 6.875, 0}, lo.Vector)
	assert.Equal(t, mgl32.Vec4{3, 0.5, 7.125, 0}, hi.Vector)
}

func TestBoxAbsent(t *testing.T) {
	ctx, _ := newContext()
	with := resolve(t, DefaultSettings(), &fakeFinder{objects: map[string]*Transform{
		BoxName: {Position: mgl32.Vec3{0, 1, 0}, Scale: mgl32.Vec3{1, 1, 1}},
	}}, ctx)
	without := resolve(t, DefaultSettings(), &fakeFinder{}, ctx)

	assert.False(t, without.Has(UniformBoundsMin))
	assert.False(t, without.Has(UniformBoundsMax))

	// Everything else is published identically.
	for _, name := range without.Names() {
		a, _ := with.Get(name)
		b, _ := without.Get(name)
		assert.Equal(t, a, b, name)
	}
	assert.Equal(t, with.Len()-2, without.Len())
}

func TestExplicitBoxWins(t *testing.T) {
	cached := &Transform{Scale: mgl32.Vec3{2, 2, 2}}
	explicit := &Transform{Position: mgl32.Vec3{10, 0, 0}, Scale: mgl32.Vec3{2, 2, 2}}

	ctx, _ := newContext()
	ctx.Box = explicit
	sheet := resolve(t, DefaultSettings(), &fakeFinder{objects: map[string]*Transform{BoxName: cached}}, ctx)

	lo, _ := sheet.Get(UniformBoundsMin)
	assert.Equal(t, mgl32.Vec4{9, -1, -1, 0}, lo.Vector)
}

func TestZeroMeansUnset(t *testing.T) {
	s := DefaultSettings()
	s.NoiseTexScale = 0
	s.Step = 0
	s.RayStep = 0

	ctx, _ := newContext()
	sheet := resolve(t, s, nil, ctx)

	assert.False(t, sheet.Has(UniformNoiseTexScale))
	assert.False(t, sheet.Has(UniformStep))
	assert.False(t, sheet.Has(UniformRayStep))
}

func TestNonZeroPublishedVerbatim(t *testing.T) {
	s := DefaultSettings()
	s.NoiseTexScale = -0.5
	s.Step = -1
	s.RayStep = 17

	ctx, _ := newContext()
	sheet := resolve(t, s, nil, ctx)

	for name, want := range map[string]float32{
		UniformNoiseTexScale: -0.5,
		UniformStep:          -1,
		UniformRayStep:       17,
	} {
		u, ok := sheet.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, want, u.Float, name)
	}
}

func TestNoiseTextureOnlyWhenSet(t *testing.T) {
	ctx, _ := newContext()
	s := DefaultSettings()
	assert.False(t, resolve(t, s, nil, ctx).Has(UniformNoise3D))

	tex := &fakeTexture{64, 64}
	s.Noise3D = tex
	u, ok := resolve(t, s, nil, ctx).Get(UniformNoise3D)
	require.True(t, ok)
	assert.Equal(t, KindTexture, u.Kind)
	assert.Same(t, tex, u.Texture)
}

func TestTintAlwaysPublished(t *testing.T) {
	s := &Settings{}
	ctx, _ := newContext()
	sheet := resolve(t, s, nil, ctx)

	assert.True(t, sheet.Has(UniformColor))
	assert.True(t, sheet.Has(UniformBlend))
}

func TestDefaultScenario(t *testing.T) {
	s := DefaultSettings()
	s.Color = White
	s.Blend = 0.5
	s.Step = 2
	s.RayStep = 1.2
	s.NoiseTexScale = 0.01

	ctx, _ := newContext()
	sheet := resolve(t, s, &fakeFinder{}, ctx)

	for _, name := range []string{UniformColor, UniformBlend, UniformStep, UniformRayStep, UniformNoiseTexScale} {
		assert.True(t, sheet.Has(name), name)
	}
	assert.False(t, sheet.Has(UniformBoundsMin))
	assert.False(t, sheet.Has(UniformBoundsMax))

	color, _ := sheet.Get(UniformColor)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, color.Vector)
	phase, _ := sheet.Get(UniformPhaseParams)
	assert.Equal(t, mgl32.Vec4{0.72, 1, 0.5, 1.58}, phase.Vector)
}

func TestLightGlobals(t *testing.T) {
	ctx, _ := newContext()
	sun := LightFromDirection(mgl32.Vec3{0, -1, 0}, NewColor(1, 0.5, 0.25))
	ctx.Light = sun

	r := NewResolver(DefaultSettings(), nil)
	r.Resolve(ctx, NewSheet(ShaderName))

	dir, ok := ctx.Globals.Get(GlobalLightDirection)
	require.True(t, ok)
	assert.InDelta(t, 0, dir.Vector[0], 1e-5)
	assert.InDelta(t, 1, dir.Vector[1], 1e-5)
	assert.InDelta(t, 0, dir.Vector[2], 1e-5)
	assert.Equal(t, float32(0), dir.Vector[3])

	col, ok := ctx.Globals.Get(GlobalLightColor)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec4{1, 0.5, 0.25, 1}, col.Vector)

	// Next frame without a light keeps the previous values.
	ctx.Light = nil
	r.Resolve(ctx, NewSheet(ShaderName))
	stale, _ := ctx.Globals.Get(GlobalLightDirection)
	assert.Equal(t, dir, stale)
	staleCol, _ := ctx.Globals.Get(GlobalLightColor)
	assert.Equal(t, col, staleCol)
}

func TestLightAbsentNeverWritesGlobals(t *testing.T) {
	ctx, _ := newContext()
	resolve(t, DefaultSettings(), nil, ctx)
	assert.Equal(t, 0, ctx.Globals.Len())
}

func TestInitLooksUpOnce(t *testing.T) {
	box := &Transform{Scale: mgl32.Vec3{1, 1, 1}}
	finder := &fakeFinder{objects: map[string]*Transform{BoxName: box}}
	r := NewResolver(DefaultSettings(), finder)

	ctx, _ := newContext()
	for i := 0; i < 3; i++ {
		r.Render(ctx)
	}
	assert.Equal(t, 1, finder.calls)

	// The cached reference follows in-place edits.
	box.Position = mgl32.Vec3{0, 4, 0}
	sheet := r.Render(ctx)
	lo, _ := sheet.Get(UniformBoundsMin)
	assert.Equal(t, mgl32.Vec4{-0.5, 3.5, -0.5, 0}, lo.Vector)
}

func TestInvalidate(t *testing.T) {
	finder := &fakeFinder{objects: map[string]*Transform{}}
	r := NewResolver(DefaultSettings(), finder)
	ctx, _ := newContext()

	assert.False(t, r.Render(ctx).Has(UniformBoundsMin))

	finder.objects[BoxName] = &Transform{Scale: mgl32.Vec3{2, 2, 2}}
	assert.False(t, r.Render(ctx).Has(UniformBoundsMin), "lookup is cached until invalidated")

	r.Invalidate()
	assert.True(t, r.Render(ctx).Has(UniformBoundsMin))
	assert.Equal(t, 2, finder.calls)
}

func TestRenderRecordsPass(t *testing.T) {
	ctx, cmd := newContext()
	r := NewResolver(DefaultSettings(), nil)

	sheet := r.Render(ctx)
	require.NotNil(t, sheet)
	assert.Equal(t, ShaderName, sheet.Shader)
	assert.Equal(t, []string{"begin " + SampleName, "end " + SampleName}, cmd.samples)
	require.Len(t, cmd.blits, 1)
	assert.Same(t, ctx.Source, cmd.blits[0].src)
	assert.Same(t, ctx.Destination, cmd.blits[0].dst)
	assert.Same(t, sheet, cmd.blits[0].sheet)
	assert.Equal(t, 0, cmd.blits[0].pass)
}

func TestRenderDisabledCopies(t *testing.T) {
	ctx, cmd := newContext()
	s := DefaultSettings()
	s.Enabled = false

	assert.Nil(t, NewResolver(s, nil).Render(ctx))
	require.Len(t, cmd.blits, 1)
	assert.Nil(t, cmd.blits[0].sheet)
	assert.Len(t, cmd.samples, 2)
}
