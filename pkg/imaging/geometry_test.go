package imaging_test

import (
	"image"
	"math"
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/bgswap/pkg/imaging"
)

const epsilon = 1e-9

func TestScaleFactors(t *testing.T) {
	is := is.New(t)
	sx, sy := imaging.ScaleFactors(imaging.Extent{W: 160, H: 90}, imaging.Extent{W: 1280, H: 720})
	is.True(math.Abs(sx-8) < epsilon)
	is.True(math.Abs(sy-8) < epsilon)
}

func TestSquareExtentUsesLongestSide(t *testing.T) {
	is := is.New(t)
	is.Equal(imaging.SquareExtent(imaging.Extent{W: 1280, H: 720}), imaging.Extent{W: 1280, H: 1280})
	is.Equal(imaging.SquareExtent(imaging.Extent{W: 480, H: 640}), imaging.Extent{W: 640, H: 640})
}

func TestScaleMaskToFrameExtent(t *testing.T) {
	is := is.New(t)
	mask := image.NewGray(image.Rect(0, 0, 160, 90))

	scaled, err := imaging.ScaleToExtent(mask, imaging.Extent{W: 1280, H: 720})
	is.NoErr(err)

	e := imaging.ExtentOf(scaled)
	is.True(math.Abs(e.W-1280) < epsilon)
	is.True(math.Abs(e.H-720) < epsilon)
}

func TestScaleBackgroundToSquare(t *testing.T) {
	is := is.New(t)
	bg := image.NewRGBA(image.Rect(0, 0, 400, 400))

	scaled, err := imaging.ScaleToSquare(bg, imaging.Extent{W: 1280, H: 720})
	is.NoErr(err)

	e := imaging.ExtentOf(scaled)
	is.True(math.Abs(e.W-1280) < epsilon)
	is.True(math.Abs(e.H-1280) < epsilon)
}

func TestScaleNonSquareBackgroundIsStretched(t *testing.T) {
	is := is.New(t)
	bg := image.NewRGBA(image.Rect(0, 0, 300, 100))

	scaled, err := imaging.ScaleToSquare(bg, imaging.Extent{W: 640, H: 480})
	is.NoErr(err)
	is.Equal(scaled.Bounds(), image.Rect(0, 0, 640, 640))
}

func TestScaleRejectsEmptyResults(t *testing.T) {
	is := is.New(t)
	_, err := imaging.Scale(nil, 1, 1)
	is.True(err != nil)

	_, err = imaging.Scale(image.NewRGBA(image.Rect(0, 0, 10, 10)), 0.01, 1)
	is.True(err != nil)

	_, err = imaging.ScaleToExtent(image.NewRGBA(image.Rectangle{}), imaging.Extent{W: 10, H: 10})
	is.True(err != nil)
}

func TestScaleIdentityReturnsSameImage(t *testing.T) {
	is := is.New(t)
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	scaled, err := imaging.Scale(img, 1, 1)
	is.NoErr(err)
	is.True(scaled == image.Image(img))
}
