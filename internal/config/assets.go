package config

import (
	"os"
	"path/filepath"

	"volumecloud/internal/utils"
)

// DefaultAssetLocations are tried when no custom path is given.
func DefaultAssetLocations() []string {
	home, _ := os.UserHomeDir()
	locations := []string{}
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		locations = append(locations, filepath.Join(dataHome, "volumecloud/assets"))
	}
	if home != "" {
		locations = append(locations, filepath.Join(home, ".local/share/volumecloud/assets"))
	}
	return append(locations, "/usr/local/share/volumecloud/assets", "/usr/share/volumecloud/assets")
}

// DiscoverAssets registers the first usable asset directory with
// utils.AssetRoots and returns it, or "" when none exists.
func DiscoverAssets(customPath string) string {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			utils.AssetRoots = append(utils.AssetRoots, customPath)
			utils.Info("Using custom assets path: %s", customPath)
			return customPath
		}
		utils.Warn("Custom assets path NOT FOUND: %s", customPath)
		utils.Info("Falling back to automatic discovery...")
	}

	for _, p := range DefaultAssetLocations() {
		if _, err := os.Stat(p); err == nil {
			utils.AssetRoots = append(utils.AssetRoots, p)
			utils.Info("Discovered assets at: %s", p)
			return p
		}
	}

	utils.Warn("Could not find an assets folder in any of the expected locations.")
	utils.Warn("The cloud shader will fall back to the built-in tint pass.")
	return ""
}
