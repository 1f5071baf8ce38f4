package process

import (
	"fmt"
	"sync"
	"time"

	"github.com/tauraamui/bgswap/pkg/swap"
	"github.com/tauraamui/bgswap/pkg/video/videobackend"
	"github.com/tauraamui/bgswap/pkg/video/videosink"
)

type CoreSettings struct {
	Title         string
	FPS           int
	StatsInterval time.Duration
}

func NewCoreProcess(
	conn videobackend.Connection, swapper *swap.Swapper, sink videosink.Sink, settings CoreSettings,
) Process {
	return &swapSourceFrames{
		conn:     conn,
		swapper:  swapper,
		sink:     sink,
		settings: settings,
	}
}

type swapSourceFrames struct {
	conn        videobackend.Connection
	swapper     *swap.Swapper
	sink        videosink.Sink
	settings    CoreSettings
	swapProcess Process
	logStats    Process
}

func (proc *swapSourceFrames) Setup() Process {
	swapFramesProcess := Settings{
		Name:               "swap-frames",
		WaitForShutdownMsg: fmt.Sprintf("Closing source [%s] video stream...", proc.settings.Title),
		Process:            SwapFramesProcess(proc.settings.Title, proc.conn, proc.swapper, proc.sink, proc.settings.FPS),
	}
	proc.swapProcess = New(swapFramesProcess)

	logStatsProcess := Settings{
		Name:               "log-stats",
		WaitForShutdownMsg: fmt.Sprintf("Stopping stats reporting for source [%s]...", proc.settings.Title),
		Process:            LogStatsProcess(proc.settings.Title, proc.swapper, proc.settings.StatsInterval),
	}
	proc.logStats = New(logStatsProcess)
	return proc
}

func (proc *swapSourceFrames) Start() {
	proc.logStats.Start()
	proc.swapProcess.Start()
}

func (proc *swapSourceFrames) Stop() {
	proc.swapProcess.Stop()
	proc.logStats.Stop()
}

func (proc *swapSourceFrames) Wait() {
	wg := sync.WaitGroup{}
	wg.Add(2)
	go func(wg *sync.WaitGroup) {
		proc.swapProcess.Wait()
		wg.Done()
	}(&wg)
	go func(wg *sync.WaitGroup) {
		proc.logStats.Wait()
		wg.Done()
	}(&wg)
	wg.Wait()
}
