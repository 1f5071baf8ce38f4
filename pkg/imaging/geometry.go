package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"github.com/tauraamui/xerror"
)

// Extent is the width and height of an image in pixels.
type Extent struct {
	W, H float64
}

func ExtentOf(img image.Image) Extent {
	b := img.Bounds()
	return Extent{W: float64(b.Dx()), H: float64(b.Dy())}
}

func (e Extent) Max() float64 {
	return math.Max(e.W, e.H)
}

func (e Extent) Empty() bool {
	return e.W <= 0 || e.H <= 0
}

// ScaleFactors returns the per axis factors which map from onto to.
func ScaleFactors(from, to Extent) (sx, sy float64) {
	return to.W / from.W, to.H / from.H
}

// SquareExtent is the square whose side is the longest side of e.
func SquareExtent(e Extent) Extent {
	side := e.Max()
	return Extent{W: side, H: side}
}

// Scale resamples img anisotropically by sx and sy.
func Scale(img image.Image, sx, sy float64) (image.Image, error) {
	if img == nil {
		return nil, xerror.New("cannot scale nil image")
	}
	e := ExtentOf(img)
	if e.Empty() {
		return nil, xerror.New("cannot scale empty image")
	}
	w := int(math.Round(e.W * sx))
	h := int(math.Round(e.H * sy))
	if w <= 0 || h <= 0 {
		return nil, xerror.Errorf("scale %vx%v of %vx%v yields empty image", sx, sy, e.W, e.H)
	}
	if w == int(e.W) && h == int(e.H) && img.Bounds().Min == (image.Point{}) {
		return img, nil
	}
	return transform.Resize(img, w, h, transform.Linear), nil
}

// ScaleToExtent stretches img so its extent becomes exactly to.
func ScaleToExtent(img image.Image, to Extent) (image.Image, error) {
	if img == nil {
		return nil, xerror.New("cannot scale nil image")
	}
	from := ExtentOf(img)
	if from.Empty() {
		return nil, xerror.New("cannot scale empty image")
	}
	sx, sy := ScaleFactors(from, to)
	return Scale(img, sx, sy)
}

// ScaleToSquare stretches img into a square covering the longest side of frame.
// Non square images are distorted rather than cropped.
func ScaleToSquare(img image.Image, frame Extent) (image.Image, error) {
	return ScaleToExtent(img, SquareExtent(frame))
}
