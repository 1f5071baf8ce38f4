package swap

import "github.com/tauraamui/bgswap/pkg/log"

type state int

const (
	stateIdle state = iota
	stateAdmitted
	statePassThrough
	stateSegmenting
	stateCompositing
	stateAborted
	stateEmitted
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateAdmitted:
		return "admitted"
	case statePassThrough:
		return "pass-through"
	case stateSegmenting:
		return "segmenting"
	case stateCompositing:
		return "compositing"
	case stateAborted:
		return "aborted"
	case stateEmitted:
		return "emitted"
	default:
		return "unknown"
	}
}

type callTrace struct {
	timestamp int64
	current   state
}

func newCallTrace(timestamp int64) *callTrace {
	return &callTrace{timestamp: timestamp, current: stateIdle}
}

func (c *callTrace) to(next state) {
	log.Debug("Frame [%d]: %s -> %s", c.timestamp, c.current, next)
	c.current = next
}
