package utils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// AssetRoots are searched in order after the local "assets" directory.
// Discovery and -pkg extraction append to it.
var AssetRoots []string

var errFound = errors.New("found")

// ResolveAssetPath returns the first existing location of relPath, or the
// local assets path when nothing matches.
func ResolveAssetPath(relPath string) string {
	relPath = filepath.FromSlash(strings.ReplaceAll(relPath, "\\", "/"))

	localPath := filepath.Join("assets", relPath)
	if _, err := os.Stat(localPath); err == nil {
		return localPath
	}

	for _, root := range AssetRoots {
		p := filepath.Join(root, relPath)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return localPath
}

var textureExtensions = []string{".tex", ".png", ".jpg", ".jpeg"}

// FindTextureFile locates a texture by name, trying the known extensions in
// every asset root and finally walking the roots for a matching base name.
func FindTextureFile(name string) string {
	if name == "" {
		return ""
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}

	cleanName := strings.TrimPrefix(filepath.ToSlash(name), "textures/")
	cleanName = strings.TrimSuffix(cleanName, filepath.Ext(cleanName))

	searchDirs := []string{"assets/textures", "assets"}
	for _, root := range AssetRoots {
		searchDirs = append(searchDirs, filepath.Join(root, "textures"), root)
	}

	for _, dir := range searchDirs {
		if p := filepath.Join(dir, name); fileExists(p) {
			return p
		}
		for _, ext := range textureExtensions {
			if p := filepath.Join(dir, cleanName+ext); fileExists(p) {
				return p
			}
		}
	}

	target := filepath.Base(cleanName)
	var foundPath string
	for _, root := range append([]string{"assets"}, AssetRoots...) {
		if !fileExists(root) {
			continue
		}
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			base := filepath.Base(path)
			ext := filepath.Ext(base)
			if strings.TrimSuffix(base, ext) == target && isTextureExt(ext) {
				foundPath = path
				return errFound
			}
			return nil
		})
		if foundPath != "" {
			break
		}
	}
	return foundPath
}

func isTextureExt(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range textureExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
