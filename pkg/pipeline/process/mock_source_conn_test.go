package process_test

import (
	"sync"

	"github.com/tauraamui/bgswap/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
)

type mockSourceConn struct {
	mu         sync.Mutex
	uuid       string
	width      int
	height     int
	nextTS     int64
	readCount  int
	readFunc   func() (videoframe.Frame, error)
	onPostRead func()
	isOpen     bool
	closeErr   error
}

func (m *mockSourceConn) UUID() string {
	return m.uuid
}

func (m *mockSourceConn) Read() (videoframe.Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.onPostRead != nil {
		defer m.onPostRead()
	}
	m.readCount++

	if m.readFunc != nil {
		return m.readFunc()
	}

	pb, err := videoframe.NewPixelBuffer(videoframe.FormatBGRA32, m.width, m.height)
	if err != nil {
		return videoframe.Frame{}, xerror.Errorf("unable to allocate mock frame: %w", err)
	}
	m.nextTS++
	return videoframe.New(pb, m.nextTS), nil
}

func (m *mockSourceConn) reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readCount
}

func (m *mockSourceConn) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isOpen
}

func (m *mockSourceConn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isOpen = false
	return m.closeErr
}

type recordingSink struct {
	mu     sync.Mutex
	frames []videoframe.Frame
}

func (r *recordingSink) Capture(frame videoframe.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
}

func (r *recordingSink) Received() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint64(len(r.frames))
}

func (r *recordingSink) captured() []videoframe.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]videoframe.Frame{}, r.frames...)
}
