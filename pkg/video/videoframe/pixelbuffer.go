package videoframe

import (
	"fmt"

	"github.com/tauraamui/xerror"
)

type PixelFormat uint8

const (
	FormatUnknown PixelFormat = iota
	FormatBGRA32
	FormatRGBA32
	FormatBGR24
	// FormatOneComponent8 is a single 8 bit channel, used for segmentation masks.
	FormatOneComponent8
)

func (p PixelFormat) String() string {
	switch p {
	case FormatBGRA32:
		return "BGRA32"
	case FormatRGBA32:
		return "RGBA32"
	case FormatBGR24:
		return "BGR24"
	case FormatOneComponent8:
		return "OneComponent8"
	default:
		return fmt.Sprintf("PixelFormat(%d)", uint8(p))
	}
}

// BytesPerPixel returns zero for formats that have no packed layout.
func (p PixelFormat) BytesPerPixel() int {
	switch p {
	case FormatBGRA32, FormatRGBA32:
		return 4
	case FormatBGR24:
		return 3
	case FormatOneComponent8:
		return 1
	default:
		return 0
	}
}

// PixelBuffer is a packed raster: Height rows of Stride bytes each.
type PixelBuffer struct {
	Format PixelFormat
	Width  int
	Height int
	Stride int
	Data   []byte
}

func NewPixelBuffer(format PixelFormat, w, h int) (*PixelBuffer, error) {
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		return nil, xerror.Errorf("unsupported pixel format: %s", format)
	}
	if w <= 0 || h <= 0 {
		return nil, xerror.Errorf("invalid pixel buffer size: %dx%d", w, h)
	}
	return &PixelBuffer{
		Format: format,
		Width:  w,
		Height: h,
		Stride: w * bpp,
		Data:   make([]byte, w*h*bpp),
	}, nil
}

// WrapPixelBuffer builds a buffer over existing bytes without copying.
func WrapPixelBuffer(format PixelFormat, w, h, stride int, data []byte) (*PixelBuffer, error) {
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		return nil, xerror.Errorf("unsupported pixel format: %s", format)
	}
	if stride < w*bpp {
		return nil, xerror.Errorf("stride %d too small for %d pixels of %s", stride, w, format)
	}
	if h > 0 && len(data) < stride*(h-1)+w*bpp {
		return nil, xerror.Errorf("pixel data too short: have %d bytes", len(data))
	}
	return &PixelBuffer{Format: format, Width: w, Height: h, Stride: stride, Data: data}, nil
}

func (p *PixelBuffer) Dimensions() Dimensions {
	return Dimensions{W: p.Width, H: p.Height}
}

// Row returns the bytes of row y, without the stride padding.
func (p *PixelBuffer) Row(y int) []byte {
	off := y * p.Stride
	return p.Data[off : off+p.Width*p.Format.BytesPerPixel()]
}

// I420Buffer is a planar YUV 4:2:0 buffer, as delivered by some capture SDKs.
type I420Buffer struct {
	Width, Height int
	Y, U, V       []byte
}

func (b *I420Buffer) Dimensions() Dimensions {
	return Dimensions{W: b.Width, H: b.Height}
}
