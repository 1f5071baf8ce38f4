package process_test

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tauraamui/bgswap/pkg/log"
)

func overloadLog(dst *func(string, ...interface{}), overload func(string, ...interface{})) func() {
	ref := *dst
	*dst = overload
	return func() { *dst = ref }
}

type logRecorder struct {
	mu   sync.Mutex
	logs []string
}

func (r *logRecorder) record(format string, a ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, fmt.Sprintf(format, a...))
}

func (r *logRecorder) contains(sub string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.logs {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

func silenceLogs(r *logRecorder) func() {
	resets := []func(){
		overloadLog(&log.Debug, func(string, ...interface{}) {}),
		overloadLog(&log.Info, r.record),
		overloadLog(&log.Warn, r.record),
		overloadLog(&log.Error, r.record),
	}
	return func() {
		for _, reset := range resets {
			reset()
		}
	}
}
