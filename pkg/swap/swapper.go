// Package swap replaces the background behind the person in each video frame.
//
// A Swapper runs on whichever goroutine calls Process and never spawns its
// own. At most one frame is processed at a time; frames arriving while one
// is in flight are dropped rather than queued, so a slow segmentation model
// can never build up a backlog behind the capture source. Segmentation and
// rendering are blocking calls made from within Process.
package swap

import (
	"context"
	"image"
	"time"

	"github.com/tauraamui/bgswap/pkg/imaging"
	"github.com/tauraamui/bgswap/pkg/log"
	"github.com/tauraamui/bgswap/pkg/segment"
	"github.com/tauraamui/bgswap/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
	"go.uber.org/atomic"
)

// CaptureFunc receives frames leaving the swapper.
type CaptureFunc func(videoframe.Frame)

type Option func(*Swapper)

func WithBlender(b imaging.Blender) Option {
	return func(s *Swapper) { s.blender = b }
}

func WithConverter(c imaging.Converter) Option {
	return func(s *Swapper) { s.converter = c }
}

// WithSegmentTimeout bounds each segmentation run with a context deadline.
// Segmenters which do not watch their context are unaffected.
func WithSegmentTimeout(d time.Duration) Option {
	return func(s *Swapper) { s.segmentTimeout = d }
}

func WithBackground(img image.Image) Option {
	return func(s *Swapper) { s.background.Set(img) }
}

type Swapper struct {
	segmenter      segment.Segmenter
	blender        imaging.Blender
	converter      imaging.Converter
	segmentTimeout time.Duration
	background     Background
	busy           atomic.Bool
	counters       counters
}

func New(segmenter segment.Segmenter, opts ...Option) *Swapper {
	s := &Swapper{
		segmenter: segmenter,
		blender:   imaging.RedMaskBlender{},
		converter: imaging.PixelConverter{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetBackground replaces the background image. A nil image disables
// swapping and frames pass through untouched. The image is copied, so the
// caller is free to keep modifying it afterwards.
func (s *Swapper) SetBackground(img image.Image) {
	s.background.Set(img)
}

func (s *Swapper) Background() image.Image {
	return s.background.Snapshot()
}

// Busy reports whether a frame is currently being processed.
func (s *Swapper) Busy() bool {
	return s.busy.Load()
}

// Process sends either the frame itself or a copy with its background
// replaced to capture. It calls capture at most once, and not at all when
// the frame is dropped because another is in flight or because segmentation
// or compositing failed. Failures are logged, never returned.
func (s *Swapper) Process(frame videoframe.Frame, capture CaptureFunc) {
	s.counters.received.Inc()

	if !s.busy.CompareAndSwap(false, true) {
		s.counters.droppedBusy.Inc()
		log.Info("Already busy, dropping frame [%d]...", frame.TimestampNs())
		return
	}
	call := newCallTrace(frame.TimestampNs())
	defer func() {
		if r := recover(); r != nil {
			s.counters.aborted.Inc()
			log.Error("Processing frame [%d] panicked: %v", frame.TimestampNs(), r)
		}
		call.to(stateIdle)
		s.busy.Store(false)
	}()
	call.to(stateAdmitted)

	background := s.background.Snapshot()
	if background == nil {
		s.passThrough(call, frame, capture)
		return
	}

	pb, ok := frame.PixelBuffer()
	if !ok {
		log.Debug("Frame [%d] has no pixel buffer, passing through...", frame.TimestampNs())
		s.passThrough(call, frame, capture)
		return
	}

	call.to(stateSegmenting)
	mask, err := s.segment(pb)
	if err != nil {
		s.counters.segmentFailures.Inc()
		call.to(stateAborted)
		log.Error("Unable to segment frame [%d]: %v", frame.TimestampNs(), err)
		return
	}
	if mask == nil {
		s.counters.segmentFailures.Inc()
		call.to(stateAborted)
		log.Warn("Segmentation of frame [%d] produced no mask, dropping...", frame.TimestampNs())
		return
	}

	call.to(stateCompositing)
	out, err := s.composite(pb, mask, background)
	if err != nil {
		s.counters.compositeFailures.Inc()
		call.to(stateAborted)
		log.Error("Unable to composite frame [%d]: %v", frame.TimestampNs(), err)
		return
	}

	call.to(stateEmitted)
	s.counters.emitted.Inc()
	capture(frame.WithBuffer(out))
}

func (s *Swapper) passThrough(call *callTrace, frame videoframe.Frame, capture CaptureFunc) {
	call.to(statePassThrough)
	s.counters.passedThrough.Inc()
	capture(frame)
}

func (s *Swapper) segment(pb *videoframe.PixelBuffer) (*videoframe.PixelBuffer, error) {
	if s.segmenter == nil {
		return nil, xerror.New("no segmenter configured")
	}
	ctx := context.Background()
	if s.segmentTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.segmentTimeout)
		defer cancel()
	}
	return s.segmenter.Segment(ctx, segment.DefaultRequest, pb)
}
