// Package segment defines the person segmentation capability the swapper
// consumes, along with a deterministic mock implementation.
package segment

import (
	"context"
	"errors"

	"github.com/tauraamui/bgswap/pkg/video/videoframe"
)

type Quality int

const (
	Fast Quality = iota
	Balanced
	Accurate
)

func (q Quality) String() string {
	switch q {
	case Fast:
		return "fast"
	case Balanced:
		return "balanced"
	case Accurate:
		return "accurate"
	default:
		return "unknown"
	}
}

// Request configures a single segmentation run.
type Request struct {
	Quality      Quality
	OutputFormat videoframe.PixelFormat
}

// DefaultRequest trades mask accuracy for latency headroom.
var DefaultRequest = Request{
	Quality:      Balanced,
	OutputFormat: videoframe.FormatOneComponent8,
}

var ErrUnsupportedOutputFormat = errors.New("unsupported mask output format")

// Segmenter produces a single channel mask where high values mark the person.
// A nil mask with a nil error means the run succeeded without a result.
type Segmenter interface {
	Segment(ctx context.Context, req Request, frame *videoframe.PixelBuffer) (*videoframe.PixelBuffer, error)
}

// Func adapts a plain function to the Segmenter interface.
type Func func(ctx context.Context, req Request, frame *videoframe.PixelBuffer) (*videoframe.PixelBuffer, error)

func (f Func) Segment(ctx context.Context, req Request, frame *videoframe.PixelBuffer) (*videoframe.PixelBuffer, error) {
	return f(ctx, req, frame)
}
