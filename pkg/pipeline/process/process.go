package process

import (
	"context"
	"sync"

	"github.com/tauraamui/bgswap/pkg/log"
)

type Process interface {
	Setup() Process
	Start()
	Stop()
	Wait()
}

// Settings describe a single long running routine. Process is handed a
// context cancelled on Stop and returns the channels it closes once it has
// fully wound down.
type Settings struct {
	Name               string
	WaitForShutdownMsg string
	Process            func(context.Context) []chan interface{}
}

func New(settings Settings) Process {
	return &process{
		name:               settings.Name,
		waitForShutdownMsg: settings.WaitForShutdownMsg,
		process:            settings.Process,
	}
}

type process struct {
	mu                 sync.Mutex
	name               string
	process            func(context.Context) []chan interface{}
	waitForShutdownMsg string
	canceller          context.CancelFunc
	signals            []chan interface{}
	stopOnce           sync.Once
}

func (p *process) logShutdown() {
	if len(p.waitForShutdownMsg) > 0 {
		log.Info(p.waitForShutdownMsg)
	}
}

func (p *process) Setup() Process { return p }

// Start is a no-op for a process that is already running.
func (p *process) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.canceller != nil {
		return
	}

	if len(p.name) > 0 {
		log.Debug("Starting process [%s]", p.name)
	}
	ctx, canceller := context.WithCancel(context.Background())
	p.canceller = canceller
	p.signals = append(p.signals, p.process(ctx)...)
}

func (p *process) Stop() {
	p.mu.Lock()
	canceller := p.canceller
	p.mu.Unlock()
	if canceller == nil {
		return
	}

	p.stopOnce.Do(func() {
		p.logShutdown()
		canceller()
	})
}

// Wait blocks until every signal returned by the routine has closed.
func (p *process) Wait() {
	p.mu.Lock()
	signals := p.signals
	p.mu.Unlock()
	for _, sig := range signals {
		<-sig
	}
}
