package imaging

import (
	"image"

	"github.com/tauraamui/xerror"
	"golang.org/x/image/draw"
)

// Blender combines an original image with a background using a mask.
type Blender interface {
	Blend(base, background, mask image.Image) (image.Image, error)
}

// RedMaskBlender weights each pixel by the red channel of the mask:
//
//	out = m*base + (1-m)*background, m = mask.R / 255
//
// A high mask value keeps the original pixel. The output covers the bounds of
// base. The background is anchored at the bottom left corner of base and the
// mask at the top left, anything either of them does not cover counts as
// transparent and zero respectively.
type RedMaskBlender struct{}

func (RedMaskBlender) Blend(base, background, mask image.Image) (image.Image, error) {
	if base == nil || background == nil || mask == nil {
		return nil, xerror.New("blend requires base, background and mask images")
	}
	bounds := base.Bounds()
	if bounds.Empty() {
		return nil, xerror.New("cannot blend onto empty base image")
	}

	src := toRGBA(base)
	bg := toRGBA(background)
	m := toRGBA(mask)

	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	// offset of the background's first row relative to the base's first row
	bgOffsetY := h - bg.Rect.Dy()
	bgW, bgH := bg.Rect.Dx(), bg.Rect.Dy()
	mW, mH := m.Rect.Dx(), m.Rect.Dy()

	for y := 0; y < h; y++ {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+w*4]
		outRow := out.Pix[y*out.Stride : y*out.Stride+w*4]

		by := y - bgOffsetY
		var bgRow []byte
		if by >= 0 && by < bgH {
			bgRow = bg.Pix[by*bg.Stride : by*bg.Stride+bgW*4]
		}
		var mRow []byte
		if y < mH {
			mRow = m.Pix[y*m.Stride : y*m.Stride+mW*4]
		}

		for x := 0; x < w; x++ {
			i := x * 4
			var weight uint32
			if mRow != nil && x < mW {
				weight = uint32(mRow[i])
			}
			for c := 0; c < 4; c++ {
				var b uint32
				if bgRow != nil && x < bgW {
					b = uint32(bgRow[i+c])
				}
				o := uint32(srcRow[i+c])
				outRow[i+c] = uint8((weight*o + (255-weight)*b + 127) / 255)
			}
		}
	}
	return out, nil
}

// toRGBA returns img as an RGBA image whose bounds start at the origin,
// copying only when it has to.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Clone deep copies img into a new RGBA image with origin bounds.
func Clone(img image.Image) *image.RGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
