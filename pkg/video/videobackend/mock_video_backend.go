package videobackend

import (
	"context"
	"image"
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"github.com/tauraamui/bgswap/pkg/imaging"
	"github.com/tauraamui/bgswap/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	mockFrameWidth  = 640
	mockFrameHeight = 360
)

type mockVideoBackend struct{}

func (b *mockVideoBackend) Connect(cancel context.Context, addr string) (Connection, error) {
	if err := cancel.Err(); err != nil {
		return nil, xerror.New("connection cancelled")
	}
	return &mockVideoConnection{title: addr, isOpen: true}, nil
}

// mockVideoConnection renders synthetic BGRA frames so the pipeline can run
// without a camera attached.
type mockVideoConnection struct {
	uuid            string
	title           string
	mu              sync.Mutex
	isOpen          bool
	baseFrameCanvas image.Image
}

func (mvc *mockVideoConnection) UUID() string {
	if len(mvc.uuid) == 0 {
		mvc.uuid = uuid.NewString()
	}
	return mvc.uuid
}

func (mvc *mockVideoConnection) Read() (videoframe.Frame, error) {
	mvc.mu.Lock()
	defer mvc.mu.Unlock()

	if !mvc.isOpen {
		return videoframe.Frame{}, xerror.New("mock video connection is closed")
	}

	if mvc.baseFrameCanvas == nil {
		mvc.baseFrameCanvas = renderBaseFrameCanvas(mockFrameWidth, mockFrameHeight)
	}

	ts := TimestampNs()
	img, err := drawTextLayerOntoBaseFrameClone(mvc.baseFrameCanvas, mvc.title, ts)
	if err != nil {
		return videoframe.Frame{}, err
	}

	pb, err := imaging.PixelConverter{}.ToPixelBuffer(img, videoframe.FormatBGRA32)
	if err != nil {
		return videoframe.Frame{}, xerror.Errorf("unable to convert mock frame: %w", err)
	}
	return videoframe.New(pb, ts), nil
}

func (mvc *mockVideoConnection) IsOpen() bool {
	mvc.mu.Lock()
	defer mvc.mu.Unlock()
	return mvc.isOpen
}

func (mvc *mockVideoConnection) Close() error {
	mvc.mu.Lock()
	defer mvc.mu.Unlock()
	mvc.isOpen = false
	mvc.baseFrameCanvas = nil
	return nil
}

func drawTextLayerOntoBaseFrameClone(base image.Image, title string, ts int64) (image.Image, error) {
	baseClone := imaging.Clone(base)
	if err := drawText(baseClone, 5, 50, "BGSWAP_MOCK_STREAM"); err != nil {
		return nil, xerror.Errorf("unable to draw text onto mock frame: %w", err)
	}
	if err := drawText(baseClone, 5, 130, title); err != nil {
		return nil, xerror.Errorf("unable to draw text onto mock frame: %w", err) //nolint
	}
	if err := drawText(baseClone, 5, 210, time.Duration(ts).String()); err != nil {
		return nil, xerror.Errorf("unable to draw text onto mock frame: %w", err) //nolint
	}
	return baseClone, nil
}

func renderBaseFrameCanvas(w, h int) image.Image {
	var hw, hh float64 = float64(w / 2), float64(h / 2)
	r := float64(h) / 3
	θ := 2 * math.Pi / 3
	cr := &circle{hw - r*math.Sin(0), hh - r*math.Cos(0), r * 1.5}
	cg := &circle{hw - r*math.Sin(θ), hh - r*math.Cos(θ), r * 1.5}
	cb := &circle{hw - r*math.Sin(-θ), hh - r*math.Cos(-θ), r * 1.5}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.SetRGBA(x, y, color.RGBA{
				cr.Brightness(float64(x), float64(y)),
				cg.Brightness(float64(x), float64(y)),
				cb.Brightness(float64(x), float64(y)),
				255,
			})
		}
	}
	return img
}

var parseFont = func() (*truetype.Font, error) {
	return freetype.ParseFont(goregular.TTF)
}

func drawText(canvas *image.RGBA, x, y int, text string) error {
	fontFace, err := parseFont()
	if err != nil {
		return err
	}
	fontDrawer := &font.Drawer{
		Dst: canvas,
		Src: image.White,
		Face: truetype.NewFace(fontFace, &truetype.Options{
			Size:    32,
			Hinting: font.HintingFull,
		}),
	}
	textBounds, _ := fontDrawer.BoundString(text)
	textHeight := textBounds.Max.Y - textBounds.Min.Y
	fontDrawer.Dot = fixed.Point26_6{
		X: fixed.I(x),
		Y: fixed.I(y-textHeight.Ceil())/2 + fixed.I(textHeight.Ceil()),
	}
	fontDrawer.DrawString(text)
	return nil
}

type circle struct {
	X, Y, R float64
}

func (c *circle) Brightness(x, y float64) uint8 {
	var dx, dy float64 = c.X - x, c.Y - y
	d := math.Sqrt(dx*dx+dy*dy) / c.R
	if d > 1 {
		return 0
	}
	return 255
}
