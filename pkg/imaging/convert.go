package imaging

import (
	"image"

	"github.com/tauraamui/bgswap/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
	"golang.org/x/image/draw"
)

// Converter moves pixels between frame buffers and Go images.
type Converter interface {
	ToImage(*videoframe.PixelBuffer) (image.Image, error)
	ToPixelBuffer(image.Image, videoframe.PixelFormat) (*videoframe.PixelBuffer, error)
}

type PixelConverter struct{}

// ToImage wraps RGBA and single channel buffers without copying, other
// formats are converted into a new RGBA image.
func (PixelConverter) ToImage(pb *videoframe.PixelBuffer) (image.Image, error) {
	if pb == nil {
		return nil, xerror.New("cannot convert nil pixel buffer")
	}
	if pb.Width <= 0 || pb.Height <= 0 {
		return nil, xerror.Errorf("cannot convert empty pixel buffer %dx%d", pb.Width, pb.Height)
	}
	rect := image.Rect(0, 0, pb.Width, pb.Height)

	switch pb.Format {
	case videoframe.FormatRGBA32:
		return &image.RGBA{Pix: pb.Data, Stride: pb.Stride, Rect: rect}, nil
	case videoframe.FormatOneComponent8:
		return &image.Gray{Pix: pb.Data, Stride: pb.Stride, Rect: rect}, nil
	case videoframe.FormatBGRA32:
		img := image.NewRGBA(rect)
		for y := 0; y < pb.Height; y++ {
			src := pb.Row(y)
			dst := img.Pix[y*img.Stride:]
			for x := 0; x < pb.Width; x++ {
				i := x * 4
				dst[i+0] = src[i+2]
				dst[i+1] = src[i+1]
				dst[i+2] = src[i+0]
				dst[i+3] = src[i+3]
			}
		}
		return img, nil
	case videoframe.FormatBGR24:
		img := image.NewRGBA(rect)
		for y := 0; y < pb.Height; y++ {
			src := pb.Row(y)
			dst := img.Pix[y*img.Stride:]
			for x := 0; x < pb.Width; x++ {
				s, d := x*3, x*4
				dst[d+0] = src[s+2]
				dst[d+1] = src[s+1]
				dst[d+2] = src[s+0]
				dst[d+3] = 0xff
			}
		}
		return img, nil
	default:
		return nil, xerror.Errorf("unsupported pixel format: %s", pb.Format)
	}
}

// ToPixelBuffer renders img into a freshly allocated buffer of the given format.
func (PixelConverter) ToPixelBuffer(img image.Image, format videoframe.PixelFormat) (*videoframe.PixelBuffer, error) {
	if img == nil {
		return nil, xerror.New("cannot render nil image")
	}
	b := img.Bounds()
	pb, err := videoframe.NewPixelBuffer(format, b.Dx(), b.Dy())
	if err != nil {
		return nil, xerror.Errorf("unable to allocate output buffer: %w", err)
	}

	if format == videoframe.FormatOneComponent8 {
		gray := &image.Gray{Pix: pb.Data, Stride: pb.Stride, Rect: image.Rect(0, 0, pb.Width, pb.Height)}
		draw.Draw(gray, gray.Rect, img, b.Min, draw.Src)
		return pb, nil
	}

	rgba := toRGBA(img)
	for y := 0; y < pb.Height; y++ {
		src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+pb.Width*4]
		dst := pb.Row(y)
		for x := 0; x < pb.Width; x++ {
			s := x * 4
			switch format {
			case videoframe.FormatRGBA32:
				copy(dst[s:s+4], src[s:s+4])
			case videoframe.FormatBGRA32:
				dst[s+0] = src[s+2]
				dst[s+1] = src[s+1]
				dst[s+2] = src[s+0]
				dst[s+3] = src[s+3]
			case videoframe.FormatBGR24:
				d := x * 3
				dst[d+0] = src[s+2]
				dst[d+1] = src[s+1]
				dst[d+2] = src[s+0]
			}
		}
	}
	return pb, nil
}
