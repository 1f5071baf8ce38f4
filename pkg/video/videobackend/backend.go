package videobackend

import (
	"context"
	"time"

	"github.com/tauraamui/bgswap/pkg/video/videoframe"
)

// Connection is an open capture source handing out frames one at a time.
type Connection interface {
	UUID() string
	Read() (videoframe.Frame, error)
	IsOpen() bool
	Close() error
}

type Backend interface {
	Connect(context.Context, string) (Connection, error)
}

func Default() Backend {
	return OpenCV()
}

func OpenCV() Backend {
	return &openCVBackend{}
}

func Mock() Backend {
	return &mockVideoBackend{}
}

func Resolve(t string) Backend {
	switch t {
	case "mock":
		return Mock()
	default:
		return Default()
	}
}

var clockStart = time.Now()

// TimestampNs is the capture clock: nanoseconds on a monotonic clock since
// the process started.
var TimestampNs = func() int64 {
	return time.Since(clockStart).Nanoseconds()
}
