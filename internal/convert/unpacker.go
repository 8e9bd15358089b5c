package convert

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"volumecloud/internal/utils"
)

// PkgEntry is one file inside an asset package.
type PkgEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

func readPkgString(r io.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadPkgIndex reads the version string and the entry table. The returned
// offset is where entry data starts.
func ReadPkgIndex(r io.Reader) (string, []PkgEntry, int64, error) {
	version, err := readPkgString(r)
	if err != nil {
		return "", nil, 0, fmt.Errorf("read version: %w", err)
	}
	if !strings.HasPrefix(version, "PKGV") {
		return "", nil, 0, fmt.Errorf("not a package (version %q)", version)
	}

	var fileCount uint32
	if err := binary.Read(r, binary.LittleEndian, &fileCount); err != nil {
		return "", nil, 0, fmt.Errorf("read file count: %w", err)
	}

	// version (4 + len) + count (4)
	headerSize := int64(4 + len(version) + 4)
	entries := make([]PkgEntry, 0, fileCount)
	for i := uint32(0); i < fileCount; i++ {
		name, err := readPkgString(r)
		if err != nil {
			return "", nil, 0, fmt.Errorf("entry %d name: %w", i, err)
		}
		var fields [2]uint32
		if err := binary.Read(r, binary.LittleEndian, &fields); err != nil {
			return "", nil, 0, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, PkgEntry{Name: name, Offset: fields[0], Size: fields[1]})
		headerSize += int64(4 + len(name) + 8)
	}
	return version, entries, headerSize, nil
}

// ExtractPkg unpacks every entry of pkgPath under outputDir and returns the
// number of files written.
func ExtractPkg(pkgPath, outputDir string) (int, error) {
	utils.Debug("Unpacker: Opening package %s", pkgPath)
	f, err := os.Open(pkgPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	version, entries, dataStart, err := ReadPkgIndex(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", pkgPath, err)
	}
	utils.Debug("Unpacker: %s with %d files", version, len(entries))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, err
	}
	root, err := filepath.Abs(outputDir)
	if err != nil {
		return 0, err
	}

	for i, entry := range entries {
		destPath := filepath.Join(root, filepath.FromSlash(entry.Name))
		if !strings.HasPrefix(destPath, root+string(filepath.Separator)) {
			return i, fmt.Errorf("entry %q escapes %s", entry.Name, outputDir)
		}
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return i, err
		}

		if _, err := f.Seek(dataStart+int64(entry.Offset), io.SeekStart); err != nil {
			return i, err
		}

		out, err := os.Create(destPath)
		if err != nil {
			return i, err
		}
		_, err = io.CopyN(out, f, int64(entry.Size))
		out.Close()
		if err != nil {
			return i, fmt.Errorf("extract %s: %w", entry.Name, err)
		}
		utils.Debug("Unpacker: [%d/%d] %s", i+1, len(entries), entry.Name)
	}

	return len(entries), nil
}
