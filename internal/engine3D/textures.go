package engine3D

import (
	"image"

	"volumecloud/internal/cloud"
	"volumecloud/internal/noise"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Image is a sampled texture.
type Image struct {
	Texture rl.Texture2D
}

func (i *Image) Width() int32  { return i.Texture.Width }
func (i *Image) Height() int32 { return i.Texture.Height }

// Target is a render texture. Its colour attachment is stored bottom-up, so
// it is flipped when sampled through DrawTexturePro.
type Target struct {
	RT rl.RenderTexture2D
}

func NewTarget(w, h int32) *Target {
	rt := rl.LoadRenderTexture(w, h)
	rl.SetTextureWrap(rt.Texture, rl.TextureWrapClamp)
	rl.SetTextureFilter(rt.Texture, rl.FilterBilinear)
	return &Target{RT: rt}
}

func (t *Target) Width() int32  { return t.RT.Texture.Width }
func (t *Target) Height() int32 { return t.RT.Texture.Height }

func (t *Target) Unload() {
	rl.UnloadRenderTexture(t.RT)
}

// textureOf unwraps a backend texture. flip reports a render target.
func textureOf(t cloud.Texture) (tex rl.Texture2D, flip bool, ok bool) {
	switch v := t.(type) {
	case *Image:
		return v.Texture, false, true
	case *Target:
		return v.RT.Texture, true, true
	}
	return rl.Texture2D{}, false, false
}

// UploadImage creates a repeating, filtered GPU texture from img.
func UploadImage(img image.Image) *Image {
	rlImg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	rl.SetTextureWrap(tex, rl.TextureWrapRepeat)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return &Image{Texture: tex}
}

// UploadNoise packs vol into its atlas and uploads it.
func UploadNoise(vol *noise.Volume) *Image {
	return UploadImage(vol.Atlas())
}

func UnloadImage(img *Image) {
	if img != nil && img.Texture.ID != 0 {
		rl.UnloadTexture(img.Texture)
	}
}
