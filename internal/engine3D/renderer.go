package engine3D

import (
	"time"

	"volumecloud/internal/cloud"
	"volumecloud/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer owns the offscreen targets and records the fullscreen passes. It
// implements cloud.Command.
type Renderer struct {
	Width, Height int32

	// Globals are uploaded to every program before its own sheet so passes
	// can share values such as the sun.
	Globals *cloud.Sheet

	SceneTarget  *Target
	OutputTarget *Target

	programs map[string]*Program
	open     map[string]time.Time
	timings  map[string]time.Duration
}

func NewRenderer(width, height int32) *Renderer {
	r := &Renderer{
		Globals:  cloud.NewSheet("globals"),
		programs: make(map[string]*Program),
		open:     make(map[string]time.Time),
		timings:  make(map[string]time.Duration),
	}
	r.Resize(width, height)
	return r
}

// Resize recreates the targets when the size changed.
func (r *Renderer) Resize(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	if r.SceneTarget != nil && r.Width == width && r.Height == height {
		return
	}
	if r.SceneTarget != nil {
		r.SceneTarget.Unload()
		r.OutputTarget.Unload()
	}

	r.Width, r.Height = width, height
	r.SceneTarget = NewTarget(width, height)
	r.OutputTarget = NewTarget(width, height)
	utils.Debug("Renderer: Targets resized to %dx%d", width, height)
}

// Register makes a program available to sheets naming it.
func (r *Renderer) Register(program *Program) {
	if old, ok := r.programs[program.Name]; ok && old != program {
		old.Unload()
	}
	r.programs[program.Name] = program
}

// BeginScene starts drawing into the scene target.
func (r *Renderer) BeginScene(clear rl.Color) {
	rl.BeginTextureMode(r.SceneTarget.RT)
	rl.ClearBackground(clear)
}

func (r *Renderer) EndScene() {
	rl.EndTextureMode()
}

func (r *Renderer) BeginSample(name string) {
	r.open[name] = time.Now()
}

func (r *Renderer) EndSample(name string) {
	if start, ok := r.open[name]; ok {
		r.timings[name] = time.Since(start)
		delete(r.open, name)
	}
}

// Timing reports the last recorded duration of a sample.
func (r *Renderer) Timing(name string) time.Duration {
	return r.timings[name]
}

// BlitFullscreenTriangle draws src over the whole of dst with the sheet's
// program, or a plain copy when sheet is nil or names an unknown program.
// Programs here have a single pass, so pass is ignored.
func (r *Renderer) BlitFullscreenTriangle(src, dst cloud.Texture, sheet *cloud.Sheet, pass int) {
	srcTex, flip, ok := textureOf(src)
	if !ok {
		utils.Warn("Renderer: Unsupported source texture %T", src)
		return
	}
	target, ok := dst.(*Target)
	if !ok {
		utils.Warn("Renderer: Unsupported destination %T", dst)
		return
	}

	var program *Program
	if sheet != nil {
		program = r.programs[sheet.Shader]
		if program == nil {
			utils.Debug("Renderer: No program registered for %s, copying", sheet.Shader)
		}
	}

	rl.BeginTextureMode(target.RT)
	rl.ClearBackground(rl.Blank)
	if program != nil {
		rl.BeginShaderMode(program.Shader)
		ApplySheet(program, r.Globals)
		ApplySheet(program, sheet)
	}

	srcRec := rl.NewRectangle(0, 0, float32(srcTex.Width), float32(srcTex.Height))
	if flip {
		srcRec.Height = -srcRec.Height
	}
	dstRec := rl.NewRectangle(0, 0, float32(target.Width()), float32(target.Height()))
	rl.DrawTexturePro(srcTex, srcRec, dstRec, rl.NewVector2(0, 0), 0, rl.White)

	if program != nil {
		rl.EndShaderMode()
	}
	rl.EndTextureMode()
}

// Present stretches tex over the current framebuffer.
func (r *Renderer) Present(tex cloud.Texture, screenWidth, screenHeight int) {
	srcTex, flip, ok := textureOf(tex)
	if !ok {
		return
	}
	srcRec := rl.NewRectangle(0, 0, float32(srcTex.Width), float32(srcTex.Height))
	if flip {
		srcRec.Height = -srcRec.Height
	}
	dstRec := rl.NewRectangle(0, 0, float32(screenWidth), float32(screenHeight))
	rl.DrawTexturePro(srcTex, srcRec, dstRec, rl.NewVector2(0, 0), 0, rl.White)
}

func (r *Renderer) Unload() {
	for _, p := range r.programs {
		p.Unload()
	}
	r.programs = map[string]*Program{}
	if r.SceneTarget != nil {
		r.SceneTarget.Unload()
		r.OutputTarget.Unload()
		r.SceneTarget, r.OutputTarget = nil, nil
	}
}
