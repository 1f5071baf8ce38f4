package process

import (
	"context"
	"sync"
	"time"

	"github.com/tauraamui/bgswap/pkg/log"
	"github.com/tauraamui/bgswap/pkg/swap"
	"github.com/tauraamui/bgswap/pkg/video/videobackend"
	"github.com/tauraamui/bgswap/pkg/video/videosink"
)

// SwapFramesProcess reads from conn at fps and hands every frame to the
// swapper on its own goroutine, so a frame arriving while the previous one
// is still being processed is dropped by the swapper instead of queueing.
func SwapFramesProcess(
	title string, conn videobackend.Connection, swapper *swap.Swapper, sink videosink.Sink, fps int,
) func(context.Context) []chan interface{} {
	return func(cancel context.Context) []chan interface{} {
		log.Info("Swapping backgrounds on video from source [%s]", title)
		stopping := make(chan interface{})
		go swapFrames(cancel, stopping, conn, swapper, sink, fps)
		return []chan interface{}{stopping}
	}
}

func swapFrames(
	cancel context.Context, stopping chan interface{},
	conn videobackend.Connection, swapper *swap.Swapper, sink videosink.Sink, fps int,
) {
	if fps < 1 {
		fps = 1
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	inFlight := sync.WaitGroup{}
	for {
		select {
		case <-cancel.Done():
			inFlight.Wait()
			close(stopping)
			return
		case <-ticker.C:
			if !conn.IsOpen() {
				continue
			}
			frame, err := conn.Read()
			if err != nil {
				log.Error("Unable to retrieve frame: %v", err)
				continue
			}
			log.Debug("Read frame [%d] from source [%s]", frame.TimestampNs(), conn.UUID())
			inFlight.Add(1)
			go func() {
				defer inFlight.Done()
				swapper.Process(frame, sink.Capture)
			}()
		}
	}
}
