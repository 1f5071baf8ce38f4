package segment

import (
	"context"

	"github.com/tauraamui/bgswap/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
)

const mockMaskDownscale = 8

// Mock marks an upright ellipse in the middle of the frame as the person.
// Masks come back at an eighth of the frame resolution, the way real models
// return low resolution masks.
type Mock struct{}

func NewMock() *Mock { return &Mock{} }

func (m *Mock) Segment(ctx context.Context, req Request, frame *videoframe.PixelBuffer) (*videoframe.PixelBuffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if frame == nil {
		return nil, xerror.New("cannot segment nil frame")
	}
	if req.OutputFormat != videoframe.FormatOneComponent8 {
		return nil, ErrUnsupportedOutputFormat
	}

	w, h := maxInt(frame.Width/mockMaskDownscale, 1), maxInt(frame.Height/mockMaskDownscale, 1)
	mask, err := videoframe.NewPixelBuffer(videoframe.FormatOneComponent8, w, h)
	if err != nil {
		return nil, err
	}

	cx, cy := float64(w)/2, float64(h)*0.6
	rx, ry := float64(w)*0.2, float64(h)*0.45
	for y := 0; y < h; y++ {
		row := mask.Row(y)
		for x := 0; x < w; x++ {
			dx, dy := (float64(x)+0.5-cx)/rx, (float64(y)+0.5-cy)/ry
			if dx*dx+dy*dy <= 1 {
				row[x] = 0xff
			}
		}
	}
	return mask, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
