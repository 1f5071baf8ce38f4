package videosink

import (
	"bytes"
	"image/jpeg"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"github.com/tauraamui/bgswap/pkg/imaging"
	"github.com/tauraamui/bgswap/pkg/log"
	"github.com/tauraamui/bgswap/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
	"go.uber.org/atomic"
)

var fs afero.Fs = afero.NewOsFs()

const jpegQuality = 85

// SnapshotWriter overwrites a single JPEG file with every nth frame it is given.
type SnapshotWriter struct {
	path     string
	every    uint64
	mu       sync.Mutex
	received atomic.Uint64
	written  atomic.Uint64
	lastTS   atomic.Int64
}

// NewSnapshotWriter writes every nth frame to path, n below 1 is treated as 1.
func NewSnapshotWriter(path string, every int) *SnapshotWriter {
	if every < 1 {
		every = 1
	}
	return &SnapshotWriter{path: path, every: uint64(every)}
}

// Capture is the sink handed to the swapper. Write failures are logged.
func (w *SnapshotWriter) Capture(frame videoframe.Frame) {
	n := w.received.Inc()
	w.lastTS.Store(frame.TimestampNs())
	if (n-1)%w.every != 0 {
		return
	}
	if err := w.write(frame); err != nil {
		log.Error("Unable to write snapshot of frame [%d]: %v", frame.TimestampNs(), err)
		return
	}
	w.written.Inc()
}

func (w *SnapshotWriter) write(frame videoframe.Frame) error {
	pb, ok := frame.PixelBuffer()
	if !ok {
		return xerror.New("frame has no pixel buffer")
	}
	img, err := imaging.PixelConverter{}.ToImage(pb)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return xerror.Errorf("unable to encode snapshot: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := fs.MkdirAll(filepath.Dir(w.path), os.ModePerm|os.ModeDir); err != nil {
		return xerror.Errorf("unable to create snapshot directory: %w", err)
	}
	tmp := w.path + ".tmp"
	if err := afero.WriteFile(fs, tmp, buf.Bytes(), 0644); err != nil {
		return xerror.Errorf("unable to write snapshot: %w", err)
	}
	return fs.Rename(tmp, w.path)
}

func (w *SnapshotWriter) Received() uint64 { return w.received.Load() }

func (w *SnapshotWriter) Written() uint64 { return w.written.Load() }

func (w *SnapshotWriter) LastTimestampNs() int64 { return w.lastTS.Load() }

// Discard counts frames and throws them away.
type Discard struct {
	received atomic.Uint64
}

func (d *Discard) Capture(videoframe.Frame) { d.received.Inc() }

func (d *Discard) Received() uint64 { return d.received.Load() }
