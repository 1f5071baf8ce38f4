package pipeline

import (
	"time"

	"github.com/tauraamui/bgswap/pkg/log"
	"github.com/tauraamui/bgswap/pkg/pipeline/process"
)

func (s *Server) SetupProcesses() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		log.Warn("No source connected, skipping process setup")
		return
	}

	s.coreProcess = process.NewCoreProcess(s.conn, s.swapper, s.sink, process.CoreSettings{
		Title:         s.config.Source.Title,
		FPS:           s.config.Source.FPS,
		StatsInterval: time.Duration(s.config.StatsIntervalSecs) * time.Second,
	}).Setup()
}

func (s *Server) RunProcesses() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coreProcess != nil {
		s.coreProcess.Start()
	}
}

func (s *Server) shutdownProcesses() {
	s.mu.Lock()
	proc := s.coreProcess
	s.mu.Unlock()
	if proc == nil {
		return
	}
	proc.Stop()
	proc.Wait()
}
