package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"volumecloud/internal/config"
	"volumecloud/internal/convert"
	"volumecloud/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	profilePath := flag.String("profile", "", "Path to a TOML effect profile")
	assetsPath := flag.String("assets", "", "Path to the assets directory")
	pkgPath := flag.String("pkg", "", "Path to a scene.pkg to extract into the asset search path")
	noisePath := flag.String("noise", "", "Noise atlas (.png/.jpg/.tex); overrides the profile")
	noiseSize := flag.Int("noise-size", 32, "Edge length of the noise volume")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	fps := flag.Int("fps", 60, "Target frame rate")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging and show the overlay")
	raylibInfo := flag.Bool("raylib-info", false, "Forward raylib's own log output")
	wallpaperMode := flag.Bool("wallpaper", false, "Undecorated window driven by the desktop pointer")
	watchFlag := flag.Bool("watch", false, "Reload the profile when it changes on disk")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error); overrides -debug")
	flag.Parse()

	utils.ShowDebugUI = *debugFlag
	utils.ShowRaylibInfo = *raylibInfo
	level, err := utils.LevelFor(*debugFlag, *logLevel)
	if err != nil {
		utils.Error("%v", err)
		os.Exit(2)
	}
	utils.CurrentLevel = level
	rl.SetTraceLogCallback(utils.RaylibLogCallback)

	utils.Info("--- Volume Cloud Start ---")

	if *pkgPath != "" {
		cacheDir, err := extractPackage(*pkgPath)
		if err != nil {
			utils.Error("Failed to extract pkg: %v", err)
			os.Exit(1)
		}
		utils.AssetRoots = append(utils.AssetRoots, cacheDir)
	}
	config.DiscoverAssets(*assetsPath)

	profile := config.DefaultProfile()
	if *profilePath != "" {
		loaded, err := config.LoadProfile(*profilePath)
		if err != nil {
			utils.Error("Failed to load profile: %v", err)
			os.Exit(1)
		}
		profile = loaded
		utils.Info("Profile loaded: %s", *profilePath)
	}

	var flags uint32 = rl.FlagWindowResizable | rl.FlagVsyncHint
	if *wallpaperMode {
		flags |= rl.FlagWindowUndecorated
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(*width), int32(*height), "Volume Cloud")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(*fps))

	window := NewWindow(profile, config.Overrides{NoisePath: *noisePath}, *noiseSize, *wallpaperMode)
	defer window.Unload()

	if *watchFlag && *profilePath != "" {
		watcher, err := config.Watch(*profilePath)
		if err != nil {
			utils.Warn("Profile watch disabled: %v", err)
		} else {
			defer watcher.Close()
			window.watcher = watcher
		}
	}

	utils.Info("Starting render loop...")
	window.Run()
}

// extractPackage unpacks pkgPath once into the user cache directory and
// returns the extraction root.
func extractPackage(pkgPath string) (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		cache = os.TempDir()
	}
	base := strings.TrimSuffix(filepath.Base(pkgPath), filepath.Ext(pkgPath))
	outDir := filepath.Join(cache, "volumecloud", base)

	if info, err := os.Stat(outDir); err == nil && info.IsDir() {
		utils.Debug("Using extracted package at %s", outDir)
		return outDir, nil
	}

	utils.Info("Unpacking %s...", pkgPath)
	count, err := convert.ExtractPkg(pkgPath, outDir)
	if err != nil {
		os.RemoveAll(outDir)
		return "", err
	}
	utils.Info("Extracted %d files to %s", count, outDir)
	return outDir, nil
}
