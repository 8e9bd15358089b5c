package main

import (
	"volumecloud/internal/cloud"
	"volumecloud/internal/config"
	"volumecloud/internal/debug"
	"volumecloud/internal/engine3D"
	"volumecloud/internal/noise"
	"volumecloud/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const noiseSeed = 1

type Window struct {
	settings  *cloud.Settings
	scene     *engine3D.Scene
	renderer  *engine3D.Renderer
	resolver  *cloud.Resolver
	overlay   *debug.DebugOverlay
	watcher   *config.Watcher
	overrides config.Overrides
	noise     *engine3D.Image
	noiseSize int

	wallpaperMode bool
	baseYaw       float64
	basePitch     float64
	lastSheet     *cloud.Sheet
}

func NewWindow(profile *config.Profile, overrides config.Overrides, noiseSize int, wallpaperMode bool) *Window {
	overrides.Apply(profile)
	settings := profile.Effect
	cam := profile.Camera

	window := &Window{
		settings:      &settings,
		scene:         engine3D.NewScene(cam.Position, cam.Target, cam.FovY),
		renderer:      engine3D.NewRenderer(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())),
		overlay:       debug.NewDebugOverlay(utils.ShowDebugUI),
		overrides:     overrides,
		noiseSize:     noiseSize,
		wallpaperMode: wallpaperMode,
	}
	window.baseYaw, window.basePitch = window.scene.Orientation()

	window.resolver = cloud.NewResolver(window.settings, window.scene)
	window.scene.OnChange = func(name string) {
		if name == cloud.BoxName {
			window.resolver.Invalidate()
		}
	}
	window.applyScene(profile)
	window.reloadNoise()

	defines := map[string]int{
		"NOISE_COLUMNS": noise.Columns(noiseSize),
		"NOISE_SIZE":    noiseSize,
	}
	window.renderer.Register(engine3D.LoadProgram(cloud.ShaderName, "volumecloud", defines))

	if wallpaperMode {
		if err := utils.InitX11(); err != nil {
			utils.Warn("Desktop pointer unavailable, using window mouse: %v", err)
			window.wallpaperMode = false
		}
	}
	return window
}

func (window *Window) applyScene(profile *config.Profile) {
	window.scene.SetBox(profile.Box.Transform())
	window.scene.Sun = profile.Light.DirectionalLight()
	if window.scene.Sun == nil {
		utils.Debug("No sun in profile, light globals keep their last values")
	}
}

// reloadNoise loads the configured atlas, generating a volume when none is
// configured or it cannot be read.
func (window *Window) reloadNoise() {
	engine3D.UnloadImage(window.noise)
	window.noise = nil

	var vol *noise.Volume
	if path := window.settings.NoisePath; path != "" {
		loaded, resolved, err := noise.Open(path, window.noiseSize)
		if err != nil {
			utils.Warn("Noise: %v, generating instead", err)
		} else {
			utils.Info("Noise: Loaded %s", resolved)
			vol = loaded
		}
	}
	if vol == nil {
		utils.Debug("Noise: Generating %d^3 volume (seed %d)", window.noiseSize, noiseSeed)
		vol = noise.Generate(window.noiseSize, noiseSeed)
	}

	window.noise = engine3D.UploadNoise(vol)
	window.settings.Noise3D = window.noise
}

func (window *Window) Run() {
	for !rl.WindowShouldClose() {
		window.Update()
		window.Draw()
	}
}

func (window *Window) Update() {
	// 1. Profile reload
	if window.watcher != nil {
		if profile, ok := window.watcher.Pending(); ok {
			utils.Info("Profile changed, applying")
			window.overrides.Apply(profile)
			if profile.Apply(window.settings) {
				window.reloadNoise()
			}
			window.applyScene(profile)
		}
	}

	// 2. Camera
	if window.wallpaperMode {
		if nx, ny, err := utils.NormalizedGlobalMouse(); err == nil {
			window.scene.SetOrbit(window.baseYaw-nx*0.6, window.basePitch+ny*0.3)
		}
	} else {
		mPos := rl.GetMousePosition()
		overUI := window.overlay.InsideSidebar(int(mPos.X), int(mPos.Y))
		if rl.IsMouseButtonDown(rl.MouseRightButton) && !overUI {
			delta := rl.GetMouseDelta()
			window.scene.Orbit(-float64(delta.X)*0.005, float64(delta.Y)*0.005)
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 && !overUI {
			window.scene.Zoom(1 - float64(wheel)*0.1)
		}
	}

	// 3. Overlay input
	window.overlay.Update(window.settings)
}

func (window *Window) Draw() {
	screenWidth := rl.GetScreenWidth()
	screenHeight := rl.GetScreenHeight()
	window.renderer.Resize(int32(screenWidth), int32(screenHeight))

	window.renderer.BeginScene(window.scene.Sky)
	window.scene.Draw()
	window.renderer.EndScene()

	aspect := float32(screenWidth) / float32(max(screenHeight, 1))
	window.lastSheet = window.resolver.Render(cloud.FrameContext{
		Source:      window.renderer.SceneTarget,
		Destination: window.renderer.OutputTarget,
		Camera:      window.scene.CameraState(aspect),
		API:         cloud.APIOpenGL,
		Light:       window.scene.Sun,
		Command:     window.renderer,
		Globals:     window.renderer.Globals,
	})

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	window.renderer.Present(window.renderer.OutputTarget, screenWidth, screenHeight)

	if window.overlay.ShowGizmo && window.overlay.Visible {
		rl.BeginMode3D(window.scene.Camera)
		debug.DrawCloudBox(window.resolver.Box(cloud.FrameContext{}), window.settings.Enabled)
		rl.EndMode3D()
	}
	window.overlay.Draw(window.settings, window.lastSheet, window.renderer.Globals, window.renderer, cloud.SampleName)
	rl.EndDrawing()
}

func (window *Window) Unload() {
	window.overlay.Unload()
	engine3D.UnloadImage(window.noise)
	window.renderer.Unload()
	if window.wallpaperMode {
		utils.CloseX11()
	}
}
