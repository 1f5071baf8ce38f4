// Package opencvsegment runs person segmentation models through OpenCV's DNN module.
package opencvsegment

import (
	"context"
	"image"
	"os"
	"sync"

	"github.com/tauraamui/bgswap/pkg/log"
	"github.com/tauraamui/bgswap/pkg/segment"
	"github.com/tauraamui/bgswap/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

// Config describes the ONNX model to load. The model is expected to take an
// RGB image scaled to [0,1] and to produce one person probability per input pixel.
type Config struct {
	ModelPath string
	// InputSizes maps quality tiers onto the square input the model is fed.
	InputSizes map[segment.Quality]int
}

func DefaultConfig() Config {
	return Config{
		ModelPath: "models/selfie_segmentation.onnx",
		InputSizes: map[segment.Quality]int{
			segment.Fast:     144,
			segment.Balanced: 256,
			segment.Accurate: 512,
		},
	}
}

type DNN struct {
	mu     sync.Mutex
	net    gocv.Net
	config Config
}

var _ segment.Segmenter = (*DNN)(nil)

func New(cfg Config) (*DNN, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, xerror.Errorf("segmentation model not found: %s", cfg.ModelPath)
	}

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, xerror.Errorf("unable to load segmentation model from %s", cfg.ModelPath)
	}
	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		log.Warn("unable to set preferred DNN backend: %v", err)
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		log.Warn("unable to set preferred DNN target: %v", err)
	}

	if len(cfg.InputSizes) == 0 {
		cfg.InputSizes = DefaultConfig().InputSizes
	}
	return &DNN{net: net, config: cfg}, nil
}

func (d *DNN) inputSize(q segment.Quality) int {
	if s, ok := d.config.InputSizes[q]; ok && s > 0 {
		return s
	}
	return DefaultConfig().InputSizes[segment.Balanced]
}

// Segment blocks for the duration of the forward pass, which cannot be
// interrupted. The context is only checked before inference starts.
func (d *DNN) Segment(ctx context.Context, req segment.Request, frame *videoframe.PixelBuffer) (*videoframe.PixelBuffer, error) {
	if req.OutputFormat != videoframe.FormatOneComponent8 {
		return nil, segment.ErrUnsupportedOutputFormat
	}
	if frame == nil {
		return nil, xerror.New("cannot segment nil frame")
	}

	img, err := toBGRMat(frame)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	size := d.inputSize(req.Quality)

	d.mu.Lock()
	defer d.mu.Unlock()

	blob := gocv.BlobFromImage(img, 1.0/255.0, image.Pt(size, size), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	if output.Empty() {
		return nil, nil
	}

	probs, err := output.DataPtrFloat32()
	if err != nil {
		return nil, xerror.Errorf("unable to read segmentation output: %w", err)
	}
	if len(probs) < size*size {
		log.Debug("segmentation output has %d values, expected %d", len(probs), size*size)
		return nil, nil
	}

	mask, err := videoframe.NewPixelBuffer(videoframe.FormatOneComponent8, size, size)
	if err != nil {
		return nil, err
	}
	for i := 0; i < size*size; i++ {
		mask.Data[i] = probabilityToByte(probs[i])
	}
	return mask, nil
}

func probabilityToByte(p float32) uint8 {
	switch {
	case p <= 0:
		return 0
	case p >= 1:
		return 0xff
	default:
		return uint8(p*255 + 0.5)
	}
}

func toBGRMat(pb *videoframe.PixelBuffer) (gocv.Mat, error) {
	var (
		matType gocv.MatType
		code    gocv.ColorConversionCode
		convert = true
	)
	switch pb.Format {
	case videoframe.FormatBGR24:
		matType, convert = gocv.MatTypeCV8UC3, false
	case videoframe.FormatBGRA32:
		matType, code = gocv.MatTypeCV8UC4, gocv.ColorBGRAToBGR
	case videoframe.FormatRGBA32:
		matType, code = gocv.MatTypeCV8UC4, gocv.ColorRGBAToBGR
	default:
		return gocv.Mat{}, xerror.Errorf("unsupported pixel format for segmentation: %s", pb.Format)
	}

	data := make([]byte, 0, pb.Width*pb.Height*pb.Format.BytesPerPixel())
	for y := 0; y < pb.Height; y++ {
		data = append(data, pb.Row(y)...)
	}
	mat, err := gocv.NewMatFromBytes(pb.Height, pb.Width, matType, data)
	if err != nil {
		return gocv.Mat{}, xerror.Errorf("unable to wrap frame into OpenCV mat: %w", err)
	}
	defer mat.Close()
	// the mat borrows data, so hand back a copy owned by OpenCV
	if !convert {
		return mat.Clone(), nil
	}

	bgr := gocv.NewMat()
	gocv.CvtColor(mat, &bgr, code)
	return bgr, nil
}

func (d *DNN) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}
