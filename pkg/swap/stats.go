package swap

import "go.uber.org/atomic"

type Stats struct {
	Received          uint64
	DroppedBusy       uint64
	PassedThrough     uint64
	SegmentFailures   uint64
	CompositeFailures uint64
	Aborted           uint64
	Emitted           uint64
}

// Dropped is the number of accepted or rejected frames which never reached capture.
func (s Stats) Dropped() uint64 {
	return s.DroppedBusy + s.SegmentFailures + s.CompositeFailures + s.Aborted
}

type counters struct {
	received          atomic.Uint64
	droppedBusy       atomic.Uint64
	passedThrough     atomic.Uint64
	segmentFailures   atomic.Uint64
	compositeFailures atomic.Uint64
	aborted           atomic.Uint64
	emitted           atomic.Uint64
}

func (s *Swapper) Stats() Stats {
	return Stats{
		Received:          s.counters.received.Load(),
		DroppedBusy:       s.counters.droppedBusy.Load(),
		PassedThrough:     s.counters.passedThrough.Load(),
		SegmentFailures:   s.counters.segmentFailures.Load(),
		CompositeFailures: s.counters.compositeFailures.Load(),
		Aborted:           s.counters.aborted.Load(),
		Emitted:           s.counters.emitted.Load(),
	}
}
