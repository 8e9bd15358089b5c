package config

import (
	"path/filepath"
	"testing"

	"volumecloud/internal/utils"

	"github.com/stretchr/testify/assert"
)

func TestDiscoverAssetsCustom(t *testing.T) {
	old := utils.AssetRoots
	defer func() { utils.AssetRoots = old }()
	utils.AssetRoots = nil

	dir := t.TempDir()
	assert.Equal(t, dir, DiscoverAssets(dir))
	assert.Equal(t, []string{dir}, utils.AssetRoots)
}

func TestDefaultAssetLocationsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	locations := DefaultAssetLocations()
	assert.Equal(t, filepath.Join("/data", "volumecloud/assets"), locations[0])
	assert.Equal(t, "/usr/share/volumecloud/assets", locations[len(locations)-1])
}
