package videobackend

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/bgswap/pkg/video/videoframe"
	"gocv.io/x/gocv"
)

func overloadOpenVideoCapture(overload func(string) (*gocv.VideoCapture, error)) func() {
	ref := openVideoCapture
	openVideoCapture = overload
	return func() { openVideoCapture = ref }
}

func TestOpenCVConnectReturnsOpenError(t *testing.T) {
	is := is.New(t)
	reset := overloadOpenVideoCapture(func(string) (*gocv.VideoCapture, error) {
		return nil, errors.New("no such device")
	})
	defer reset()

	conn, err := OpenCV().Connect(context.Background(), "/dev/video9")
	is.True(conn == nil)
	is.Equal(err.Error(), "unable to open video stream [/dev/video9]: no such device")
}

func TestOpenCVConnectCancelled(t *testing.T) {
	is := is.New(t)
	block := make(chan struct{})
	reset := overloadOpenVideoCapture(func(string) (*gocv.VideoCapture, error) {
		<-block
		return nil, errors.New("too late")
	})
	defer reset()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	conn, err := OpenCV().Connect(ctx, "rtsp://fake")
	is.True(conn == nil)
	is.Equal(err.Error(), "connection cancelled")
}

func TestMatToPixelBuffer(t *testing.T) {
	is := is.New(t)
	mat := gocv.NewMatWithSize(3, 4, gocv.MatTypeCV8UC3)
	defer mat.Close()

	pb, err := matToPixelBuffer(mat)
	is.NoErr(err)
	is.Equal(pb.Format, videoframe.FormatBGR24)
	is.Equal(pb.Dimensions(), videoframe.Dimensions{W: 4, H: 3})
	is.Equal(len(pb.Data), 36)
}

func TestMatToPixelBufferRejectsFloatMats(t *testing.T) {
	is := is.New(t)
	mat := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV32F)
	defer mat.Close()

	_, err := matToPixelBuffer(mat)
	is.True(err != nil)
}
