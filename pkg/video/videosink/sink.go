package videosink

import "github.com/tauraamui/bgswap/pkg/video/videoframe"

// Sink receives every frame the swapper emits.
type Sink interface {
	Capture(videoframe.Frame)
	Received() uint64
}

var (
	_ Sink = (*SnapshotWriter)(nil)
	_ Sink = (*Discard)(nil)
)
