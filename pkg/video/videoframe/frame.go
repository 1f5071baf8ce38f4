package videoframe

type Dimensions struct {
	W, H int
}

// Buffer is any kind of frame storage a capture source can hand over.
type Buffer interface {
	Dimensions() Dimensions
}

// Frame pairs a buffer with the capture timestamp in nanoseconds.
// Frames are passed by value and never retained past a single call.
type Frame struct {
	buffer      Buffer
	timestampNs int64
}

func New(buffer Buffer, timestampNs int64) Frame {
	return Frame{buffer: buffer, timestampNs: timestampNs}
}

func (f Frame) Buffer() Buffer { return f.buffer }

func (f Frame) TimestampNs() int64 { return f.timestampNs }

func (f Frame) Dimensions() Dimensions {
	if f.buffer == nil {
		return Dimensions{}
	}
	return f.buffer.Dimensions()
}

// HasPixelBuffer reports whether the frame is backed by a raw pixel buffer.
func (f Frame) HasPixelBuffer() bool {
	_, ok := f.PixelBuffer()
	return ok
}

// PixelBuffer returns the raw pixel buffer backing the frame, if there is one.
func (f Frame) PixelBuffer() (*PixelBuffer, bool) {
	pb, ok := f.buffer.(*PixelBuffer)
	if !ok || pb == nil {
		return nil, false
	}
	return pb, true
}

// WithBuffer returns a new frame holding buf and the timestamp of f.
func (f Frame) WithBuffer(buf Buffer) Frame {
	return Frame{buffer: buf, timestampNs: f.timestampNs}
}
