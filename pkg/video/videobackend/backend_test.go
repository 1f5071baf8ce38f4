package videobackend_test

import (
	"context"
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/bgswap/pkg/video/videobackend"
	"github.com/tauraamui/bgswap/pkg/video/videoframe"
)

func TestVideoBackendDefaultBackend(t *testing.T) {
	is := is.New(t)
	is.True(videobackend.Default() != nil)
}

func TestVideoBackendResolve(t *testing.T) {
	is := is.New(t)
	is.True(videobackend.Resolve("mock") != nil)
	is.True(videobackend.Resolve("") != nil)
}

func TestMockConnectionReadsBGRAFrames(t *testing.T) {
	is := is.New(t)
	conn, err := videobackend.Mock().Connect(context.Background(), "FakeCam")
	is.NoErr(err)
	is.True(conn.IsOpen())
	is.True(len(conn.UUID()) > 0)
	is.Equal(conn.UUID(), conn.UUID())

	first, err := conn.Read()
	is.NoErr(err)
	pb, ok := first.PixelBuffer()
	is.True(ok)
	is.Equal(pb.Format, videoframe.FormatBGRA32)
	is.Equal(pb.Dimensions(), videoframe.Dimensions{W: 640, H: 360})

	second, err := conn.Read()
	is.NoErr(err)
	is.True(second.TimestampNs() >= first.TimestampNs())

	is.NoErr(conn.Close())
	is.True(!conn.IsOpen())
	_, err = conn.Read()
	is.True(err != nil)
}

func TestMockConnectFailsWhenCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	conn, err := videobackend.Mock().Connect(ctx, "FakeCam")
	is.True(conn == nil)
	is.Equal(err.Error(), "connection cancelled")
}

func TestTimestampsAreMonotonic(t *testing.T) {
	is := is.New(t)
	a := videobackend.TimestampNs()
	b := videobackend.TimestampNs()
	is.True(b >= a)
}
