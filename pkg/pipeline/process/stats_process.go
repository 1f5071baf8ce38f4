package process

import (
	"context"
	"time"

	"github.com/tauraamui/bgswap/pkg/log"
	"github.com/tauraamui/bgswap/pkg/swap"
)

type statsSource interface {
	Stats() swap.Stats
}

// LogStatsProcess periodically logs the swapper counters, an interval
// of zero disables it.
func LogStatsProcess(title string, source statsSource, interval time.Duration) func(context.Context) []chan interface{} {
	return func(cancel context.Context) []chan interface{} {
		stopping := make(chan interface{})
		if interval <= 0 {
			close(stopping)
			return []chan interface{}{stopping}
		}
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-cancel.Done():
					logStats(title, source.Stats())
					close(stopping)
					return
				case <-ticker.C:
					logStats(title, source.Stats())
				}
			}
		}()
		return []chan interface{}{stopping}
	}
}

func logStats(title string, stats swap.Stats) {
	log.Info(
		"Source [%s] frames received: %d, emitted: %d, passed through: %d, dropped: %d (busy: %d)",
		title, stats.Received, stats.Emitted, stats.PassedThrough, stats.Dropped(), stats.DroppedBusy,
	)
}
