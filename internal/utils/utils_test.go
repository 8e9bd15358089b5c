package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePointer(t *testing.T) {
	x, y := NormalizePointer(0, 0, 1920, 1080)
	assert.Equal(t, -1.0, x)
	assert.Equal(t, -1.0, y)

	x, y = NormalizePointer(960, 540, 1920, 1080)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)

	x, y = NormalizePointer(1920, 1080, 1920, 1080)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 1.0, y)

	x, y = NormalizePointer(5, 5, 0, 0)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]LogLevel{
		"debug":   LevelDebug,
		" INFO ":  LevelInfo,
		"warning": LevelWarn,
		"Error":   LevelError,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
		if name == "Error" {
			assert.Equal(t, "ERROR", got.String())
		}
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLevelFor(t *testing.T) {
	level, err := LevelFor(false, "")
	require.NoError(t, err)
	assert.Equal(t, LevelInfo, level)

	level, err = LevelFor(true, "")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, level)

	level, err = LevelFor(true, "error")
	require.NoError(t, err)
	assert.Equal(t, LevelError, level)

	_, err = LevelFor(false, "loud")
	assert.Error(t, err)
}

func TestLogLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	oldLevel, oldColor := CurrentLevel, NoColor
	defer func() { CurrentLevel, NoColor = oldLevel, oldColor }()
	CurrentLevel = LevelWarn
	NoColor = true

	Info("hidden %d", 1)
	Warn("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
}

func TestResolveAssetPath(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "shaders"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "shaders", "a.frag"), nil, 0644))

	old := AssetRoots
	defer func() { AssetRoots = old }()
	AssetRoots = []string{filepath.Join(root, "nope"), root}

	assert.Equal(t, filepath.Join(root, "shaders", "a.frag"), ResolveAssetPath("shaders\\a.frag"))
	assert.Equal(t, filepath.Join("assets", "shaders", "b.frag"), ResolveAssetPath("shaders/b.frag"))
}

func TestFindTextureFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "materials", "deep"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "materials", "noise.png"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "materials", "deep", "hidden.tex"), nil, 0644))

	old := AssetRoots
	defer func() { AssetRoots = old }()
	AssetRoots = []string{root}

	assert.Equal(t, filepath.Join(root, "materials", "noise.png"), FindTextureFile("materials/noise"))
	assert.Equal(t, filepath.Join(root, "materials", "deep", "hidden.tex"), FindTextureFile("hidden"))
	assert.Equal(t, "", FindTextureFile(""))
}
