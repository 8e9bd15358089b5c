// Package noise builds the cloud density volume and packs it into a 2D atlas
// the fragment program can sample as a 3D texture.
package noise

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"volumecloud/internal/convert"
	"volumecloud/internal/utils"

	"github.com/chewxy/math32"
)

// Volume is a cube of densities in [0,1], indexed x fastest.
type Volume struct {
	Size int
	Data []float32
}

func NewVolume(size int) *Volume {
	return &Volume{Size: size, Data: make([]float32, size*size*size)}
}

func (v *Volume) index(x, y, z int) int {
	return (z*v.Size+y)*v.Size + x
}

func (v *Volume) At(x, y, z int) float32 {
	return v.Data[v.index(x, y, z)]
}

func (v *Volume) Set(x, y, z int, d float32) {
	v.Data[v.index(x, y, z)] = d
}

// Columns is the number of slices per atlas row.
func Columns(size int) int {
	return int(math32.Ceil(math32.Sqrt(float32(size))))
}

// AtlasSize is the pixel size of the atlas for a volume of the given size.
func AtlasSize(size int) (width, height int) {
	cols := Columns(size)
	rows := (size + cols - 1) / cols
	return cols * size, rows * size
}

func sliceOrigin(z, size int) (int, int) {
	cols := Columns(size)
	return (z % cols) * size, (z / cols) * size
}

// Atlas lays the z slices out left-to-right, top-to-bottom.
func (v *Volume) Atlas() *image.Gray {
	w, h := AtlasSize(v.Size)
	img := image.NewGray(image.Rect(0, 0, w, h))
	for z := 0; z < v.Size; z++ {
		ox, oy := sliceOrigin(z, v.Size)
		for y := 0; y < v.Size; y++ {
			for x := 0; x < v.Size; x++ {
				d := math32.Max(0, math32.Min(1, v.At(x, y, z)))
				img.SetGray(ox+x, oy+y, color.Gray{Y: uint8(d*255 + 0.5)})
			}
		}
	}
	return img
}

// FromAtlas reads a volume back out of an atlas laid out like Atlas.
func FromAtlas(img image.Image, size int) (*Volume, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid volume size %d", size)
	}
	w, h := AtlasSize(size)
	b := img.Bounds()
	if b.Dx() < w || b.Dy() < h {
		return nil, fmt.Errorf("atlas %dx%d too small for %d^3 volume (need %dx%d)", b.Dx(), b.Dy(), size, w, h)
	}

	vol := NewVolume(size)
	for z := 0; z < size; z++ {
		ox, oy := sliceOrigin(z, size)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				g := color.GrayModel.Convert(img.At(b.Min.X+ox+x, b.Min.Y+oy+y)).(color.Gray)
				vol.Set(x, y, z, float32(g.Y)/255)
			}
		}
	}
	return vol, nil
}

// Open finds the atlas named name in the asset roots, with or without its
// extension, and loads it.
func Open(name string, size int) (*Volume, string, error) {
	path := utils.FindTextureFile(name)
	if path == "" {
		return nil, "", fmt.Errorf("noise atlas %q: %w", name, os.ErrNotExist)
	}
	vol, err := Load(path, size)
	return vol, path, err
}

// Load reads an atlas from a .tex, PNG or JPEG file.
func Load(path string, size int) (*Volume, error) {
	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tex") {
		decoded, err := convert.DecodeTexToImage(path)
		if err != nil {
			return nil, err
		}
		img = decoded
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		decoded, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		img = decoded
	}

	vol, err := FromAtlas(img, size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vol, nil
}
