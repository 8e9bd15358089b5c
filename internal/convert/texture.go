package convert

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"volumecloud/internal/utils"

	"github.com/mauserzjeh/dxt"
	"github.com/pierrec/lz4/v4"
)

// Texture format ids stored in the TEXI header.
const (
	FormatRGBA8888 = 0
	FormatDXT5     = 4
	FormatDXT3     = 6
	FormatDXT1     = 7
	FormatRG88     = 8
	FormatR8       = 9
)

const (
	texMagic       = "TEXV0005"
	texInfoMagic   = "TEXI0001"
	containerB0001 = "TEXB0001"
	containerB0002 = "TEXB0002"
	containerB0003 = "TEXB0003"
)

var ErrNoImage = errors.New("no image found in texture")

// ErrTooLarge reports header sizes that cannot belong to the declared mip.
var ErrTooLarge = errors.New("texture size exceeds mip dimensions")

// MaxDimension bounds mip width and height.
const MaxDimension = 16384

// texReader reads little-endian fields and remembers the first failure.
type texReader struct {
	r   io.Reader
	err error
}

func (t *texReader) uint32() uint32 {
	var v uint32
	if t.err == nil {
		t.err = binary.Read(t.r, binary.LittleEndian, &v)
	}
	return v
}

// magic reads an 8 byte tag followed by its NUL terminator.
func (t *texReader) magic() string {
	b := make([]byte, 9)
	if t.err == nil {
		_, t.err = io.ReadFull(t.r, b)
	}
	return string(bytes.Trim(b, "\x00"))
}

func (t *texReader) bytes(n uint32) []byte {
	if t.err != nil {
		return nil
	}
	b := make([]byte, n)
	_, t.err = io.ReadFull(t.r, b)
	return b
}

// DecodeTexToImage decodes the first mip of the first image in a .tex file.
func DecodeTexToImage(path string) (image.Image, error) {
	utils.Debug("Texture: Decoding %s", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := DecodeTex(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// DecodeTex decodes a TEXV0005 stream.
func DecodeTex(r io.Reader) (image.Image, error) {
	t := &texReader{r: r}

	if m := t.magic(); t.err == nil && m != texMagic {
		return nil, fmt.Errorf("invalid magic: %s", m)
	}
	if m := t.magic(); t.err == nil && m != texInfoMagic {
		return nil, fmt.Errorf("invalid info magic: %s", m)
	}

	format := t.uint32()
	_ = t.uint32() // flags
	_ = t.uint32() // texture width
	_ = t.uint32() // texture height
	imgW := t.uint32()
	imgH := t.uint32()
	_ = t.uint32()

	container := t.magic()
	imageCount := t.uint32()
	if t.err != nil {
		return nil, t.err
	}

	switch container {
	case containerB0001, containerB0002:
	case containerB0003:
		_ = t.uint32() // image format
	default:
		return nil, fmt.Errorf("unsupported container: %s", container)
	}

	utils.Debug("Texture: Format %d, %dx%d, container %s", format, imgW, imgH, container)

	if imageCount == 0 {
		return nil, ErrNoImage
	}

	mipCount := t.uint32()
	if t.err != nil {
		return nil, t.err
	}
	if mipCount == 0 {
		return nil, ErrNoImage
	}

	mipW := t.uint32()
	mipH := t.uint32()
	var isLZ4 bool
	var decompressedSize uint32
	if container != containerB0001 {
		isLZ4 = t.uint32() == 1
		decompressedSize = t.uint32()
	}
	dataSize := t.uint32()
	if t.err != nil {
		return nil, t.err
	}

	if mipW == 0 || mipH == 0 || mipW > MaxDimension || mipH > MaxDimension {
		return nil, fmt.Errorf("mip %dx%d: %w", mipW, mipH, ErrTooLarge)
	}
	pixelBytes := int(mipW) * int(mipH) * 4
	if isLZ4 && int(decompressedSize) > pixelBytes {
		return nil, fmt.Errorf("decompressed size %d for %dx%d mip: %w", decompressedSize, mipW, mipH, ErrTooLarge)
	}
	if int(dataSize) > lz4.CompressBlockBound(pixelBytes) {
		return nil, fmt.Errorf("data size %d for %dx%d mip: %w", dataSize, mipW, mipH, ErrTooLarge)
	}

	data := t.bytes(dataSize)
	if t.err != nil {
		return nil, t.err
	}

	if isLZ4 {
		utils.Debug("Texture: Decompressing LZ4 %d -> %d", len(data), decompressedSize)
		out := make([]byte, decompressedSize)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		data = out[:n]
	}

	pix, err := decodePixels(data, format, mipW, mipH)
	if err != nil {
		return nil, err
	}

	rgba := &image.RGBA{
		Pix:    pix,
		Stride: int(mipW * 4),
		Rect:   image.Rect(0, 0, int(mipW), int(mipH)),
	}
	if imgW == 0 || imgH == 0 || (imgW == mipW && imgH == mipH) {
		return rgba, nil
	}
	return rgba.SubImage(image.Rect(0, 0, int(imgW), int(imgH))), nil
}

func decodePixels(data []byte, format, w, h uint32) ([]byte, error) {
	blocks := ((w + 3) / 4) * ((h + 3) / 4)
	size := uint32(len(data))

	switch {
	case size == w*h*4:
		return data, nil
	case format == FormatR8 && size == w*h:
		pix := make([]byte, w*h*4)
		for i, v := range data {
			pix[i*4] = v
			pix[i*4+1] = v
			pix[i*4+2] = v
			pix[i*4+3] = 255
		}
		return pix, nil
	case format == FormatRG88 && size == w*h*2:
		pix := make([]byte, w*h*4)
		for i := uint32(0); i < w*h; i++ {
			pix[i*4] = data[i*2]
			pix[i*4+1] = data[i*2]
			pix[i*4+2] = data[i*2]
			pix[i*4+3] = data[i*2+1]
		}
		return pix, nil
	case size == blocks*16 || format == FormatDXT5 || format == FormatDXT3:
		return dxt.DecodeDXT5(data, uint(w), uint(h))
	case size == blocks*8 || format == FormatDXT1:
		return dxt.DecodeDXT1(data, uint(w), uint(h))
	}
	return nil, fmt.Errorf("unsupported format %d with size %d", format, size)
}
