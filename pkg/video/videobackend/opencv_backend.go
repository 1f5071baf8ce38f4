package videobackend

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tauraamui/bgswap/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

type openCVBackend struct{}

func (b *openCVBackend) Connect(cancel context.Context, addr string) (Connection, error) {
	conn := openCVConnection{}
	err := conn.connect(cancel, addr)
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

type openCVConnection struct {
	uuid   string
	mu     sync.Mutex
	isOpen bool
	vc     *gocv.VideoCapture
	mat    gocv.Mat
}

func (c *openCVConnection) connect(cancel context.Context, addr string) error {
	connAndError := make(chan openVideoStreamResult, 1)
	go openVideoStream(addr, connAndError)
	select {
	case r := <-connAndError:
		if r.err != nil {
			return xerror.Errorf("unable to open video stream [%s]: %w", addr, r.err)
		}
		c.vc = r.vc
		c.mat = gocv.NewMat()
		c.isOpen = true
		return nil
	case <-cancel.Done():
		return xerror.New("connection cancelled")
	}
}

type openVideoStreamResult struct {
	vc  *gocv.VideoCapture
	err error
}

func openVideoStream(addr string, d chan openVideoStreamResult) {
	vc, err := openVideoCapture(addr)
	d <- openVideoStreamResult{vc: vc, err: err}
}

var openVideoCapture = func(addr string) (*gocv.VideoCapture, error) {
	return gocv.OpenVideoCapture(addr)
}

var readFromVideoConnection = func(vc *gocv.VideoCapture, mat *gocv.Mat) bool {
	if vc.IsOpened() {
		return vc.Read(mat)
	}
	return false
}

func (c *openCVConnection) UUID() string {
	if len(c.uuid) == 0 {
		c.uuid = uuid.NewString()
	}
	return c.uuid
}

// Read grabs the next frame and copies it out of OpenCV memory into a BGR
// pixel buffer, so the frame outlives the capture's reusable mat.
func (c *openCVConnection) Read() (videoframe.Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isOpen {
		return videoframe.Frame{}, xerror.New("video connection is closed")
	}
	if ok := readFromVideoConnection(c.vc, &c.mat); !ok || c.mat.Empty() {
		return videoframe.Frame{}, xerror.New("unable to read from video connection")
	}
	ts := TimestampNs()

	pb, err := matToPixelBuffer(c.mat)
	if err != nil {
		return videoframe.Frame{}, err
	}
	return videoframe.New(pb, ts), nil
}

func matToPixelBuffer(mat gocv.Mat) (*videoframe.PixelBuffer, error) {
	var format videoframe.PixelFormat
	switch mat.Type() {
	case gocv.MatTypeCV8UC3:
		format = videoframe.FormatBGR24
	case gocv.MatTypeCV8UC4:
		format = videoframe.FormatBGRA32
	case gocv.MatTypeCV8UC1:
		format = videoframe.FormatOneComponent8
	default:
		return nil, xerror.Errorf("unsupported OpenCV mat type: %v", mat.Type())
	}
	w, h := mat.Cols(), mat.Rows()
	return videoframe.WrapPixelBuffer(format, w, h, w*format.BytesPerPixel(), mat.ToBytes())
}

func (c *openCVConnection) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isOpen {
		return c.vc.IsOpened()
	}
	return false
}

func (c *openCVConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isOpen {
		return nil
	}
	c.isOpen = false
	c.mat.Close()
	return c.vc.Close()
}
