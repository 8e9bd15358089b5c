package debug

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"time"

	"volumecloud/internal/cloud"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sampler reports the last duration of a named GPU sample.
type Sampler interface {
	Timing(name string) time.Duration
}

// DebugOverlay shows the cloud settings, the uniforms of the last frame and
// timing. F8 toggles it, F9 toggles the CloudBox gizmo.
type DebugOverlay struct {
	Visible   bool
	ShowGizmo bool
	Selected  int

	fontHeight   int
	lineHeight   int
	sidebarWidth int
	font         rl.Font

	prevLeftMouseButton bool
	mouseX, mouseY      int
	clicked             bool

	lastUpdateTime time.Time
	frameCount     int
	fps            float64
	memStats       runtime.MemStats
}

func NewDebugOverlay(visible bool) *DebugOverlay {
	d := &DebugOverlay{
		Visible:        visible,
		ShowGizmo:      true,
		lastUpdateTime: time.Now(),
	}
	d.updateLayout()

	fontPaths := []string{
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	}
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err == nil {
			d.font = rl.LoadFontEx(path, 64, nil, 0)
			rl.SetTextureFilter(d.font.Texture, rl.FilterBilinear)
			break
		}
	}
	return d
}

func (d *DebugOverlay) updateLayout() {
	scale := math.Max(1.0, float64(rl.GetScreenHeight())/1080.0)
	d.fontHeight = int(16 * scale)
	d.lineHeight = int(22 * scale)
	d.sidebarWidth = int(460 * scale)
}

// Update handles the overlay's input and edits settings in place through
// their fields, so ranged values stay clamped.
func (d *DebugOverlay) Update(settings *cloud.Settings) {
	if rl.IsKeyPressed(rl.KeyF8) {
		d.Visible = !d.Visible
	}
	if rl.IsKeyPressed(rl.KeyF9) {
		d.ShowGizmo = !d.ShowGizmo
	}

	d.frameCount++
	now := time.Now()
	if now.Sub(d.lastUpdateTime) >= time.Second {
		d.fps = float64(d.frameCount) / now.Sub(d.lastUpdateTime).Seconds()
		d.frameCount = 0
		d.lastUpdateTime = now
		runtime.ReadMemStats(&d.memStats)
	}

	if !d.Visible {
		return
	}
	d.updateLayout()

	mPos := rl.GetMousePosition()
	d.mouseX, d.mouseY = int(mPos.X), int(mPos.Y)
	leftPressed := rl.IsMouseButtonDown(rl.MouseLeftButton)
	d.clicked = leftPressed && !d.prevLeftMouseButton
	d.prevLeftMouseButton = leftPressed

	fields := settings.Fields()
	if rl.IsKeyPressed(rl.KeyDown) {
		d.Selected = (d.Selected + 1) % len(fields)
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		d.Selected = (d.Selected + len(fields) - 1) % len(fields)
	}
	if d.Selected >= len(fields) {
		d.Selected = 0
	}

	dir := float32(0)
	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressedRepeat(rl.KeyRight) {
		dir = 1
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressedRepeat(rl.KeyLeft) {
		dir = -1
	}
	if dir != 0 {
		f := fields[d.Selected]
		step := fieldStep(f)
		if rl.IsKeyDown(rl.KeyLeftShift) {
			step *= 10
		}
		f.Set(f.Get() + dir*step)
	}
}

// InsideSidebar reports whether the pointer is over the visible overlay.
func (d *DebugOverlay) InsideSidebar(x, y int) bool {
	return d.Visible && x < d.sidebarWidth
}

func fieldStep(f cloud.Field) float32 {
	if f.Range != nil {
		return (f.Range.Max - f.Range.Min) / 100
	}
	return 0.01
}

func displayRange(f cloud.Field) cloud.Range {
	if f.Range != nil {
		return *f.Range
	}
	return cloud.Range{Min: 0, Max: float32(math.Max(2, math.Ceil(float64(f.Get()))))}
}

// Draw renders the sidebar. last is the sheet of the most recent frame and
// may be nil when the effect is disabled.
func (d *DebugOverlay) Draw(settings *cloud.Settings, last, globals *cloud.Sheet, timings Sampler, sample string) {
	if !d.Visible {
		return
	}

	screenH := rl.GetScreenHeight()
	rl.DrawRectangle(0, 0, int32(d.sidebarWidth), int32(screenH), rl.NewColor(20, 20, 25, 200))

	ui := NewUIContext(10, 10, d.lineHeight, d.fontHeight, d.font, d.mouseX, d.mouseY, d.clicked)

	// 1. Timing
	ui.Header("Performance:")
	ui.IndentLabel(fmt.Sprintf("FPS: %.1f (raylib %d)", d.fps, rl.GetFPS()), 10)
	if timings != nil {
		ui.IndentLabel(fmt.Sprintf("%s: %.3f ms", sample, float64(timings.Timing(sample).Microseconds())/1000), 10)
	}
	ui.IndentLabel(fmt.Sprintf("Heap: %.2f MB", float64(d.memStats.HeapAlloc)/1024/1024), 10)
	ui.Separator()

	// 2. Settings
	ui.Header("Cloud:")
	if ui.Checkbox("Enabled", settings.Enabled) {
		settings.Enabled = !settings.Enabled
	}
	if ui.Checkbox("Gizmo (F9)", d.ShowGizmo) {
		d.ShowGizmo = !d.ShowGizmo
	}
	for i, f := range settings.Fields() {
		r := displayRange(f)
		label := fmt.Sprintf("%s: %.3f", f.Name, f.Get())
		if v := ui.Slider(label, f.Get(), r.Min, r.Max, i == d.Selected, d.sidebarWidth-20); v != f.Get() {
			d.Selected = i
			f.Set(v)
		}
	}
	ui.Separator()

	// 3. Uniforms
	ui.Header("Uniforms:")
	if last == nil {
		ui.IndentLabel("(pass disabled)", 10)
	} else {
		drawSheet(ui, last)
	}
	if globals != nil && globals.Len() > 0 {
		ui.Header("Globals:")
		drawSheet(ui, globals)
	}
}

func drawSheet(ui *UIContext, sheet *cloud.Sheet) {
	sheet.Each(func(name string, u cloud.Uniform) {
		ui.IndentLabel(fmt.Sprintf("%s = %s", name, formatUniform(u)), 10)
	})
}

func formatUniform(u cloud.Uniform) string {
	switch u.Kind {
	case cloud.KindFloat:
		return fmt.Sprintf("%.4g", u.Float)
	case cloud.KindColor, cloud.KindVector:
		v := u.Vector
		return fmt.Sprintf("(%.3g, %.3g, %.3g, %.3g)", v[0], v[1], v[2], v[3])
	case cloud.KindMatrix:
		return fmt.Sprintf("mat4 [%.2g %.2g %.2g %.2g ...]", u.Matrix[0], u.Matrix[5], u.Matrix[10], u.Matrix[15])
	case cloud.KindTexture:
		if u.Texture == nil {
			return "texture <nil>"
		}
		return fmt.Sprintf("texture %dx%d", u.Texture.Width(), u.Texture.Height())
	}
	return u.Kind.String()
}

func (d *DebugOverlay) Unload() {
	if d.font.BaseSize > 0 {
		rl.UnloadFont(d.font)
	}
}
