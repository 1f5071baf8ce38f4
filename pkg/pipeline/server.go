package pipeline

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/tauraamui/bgswap/pkg/background"
	"github.com/tauraamui/bgswap/pkg/configdef"
	"github.com/tauraamui/bgswap/pkg/log"
	"github.com/tauraamui/bgswap/pkg/pipeline/process"
	"github.com/tauraamui/bgswap/pkg/segment"
	"github.com/tauraamui/bgswap/pkg/segment/opencvsegment"
	"github.com/tauraamui/bgswap/pkg/swap"
	"github.com/tauraamui/bgswap/pkg/video/videobackend"
	"github.com/tauraamui/bgswap/pkg/video/videosink"
	"github.com/tauraamui/xerror"
)

type Server struct {
	shutdownDone chan interface{}
	shutdownOnce sync.Once
	config       configdef.Values
	mu           sync.Mutex
	videoBackend videobackend.Backend
	segmenter    segment.Segmenter
	swapper      *swap.Swapper
	sink         videosink.Sink
	conn         videobackend.Connection
	coreProcess  process.Process
}

// NewServer resolves the configuration and builds everything needed to swap
// backgrounds on a single source. A nil backend is picked from the config.
func NewServer(cr configdef.Resolver, backend videobackend.Backend) (*Server, error) {
	config, err := cr.Resolve()
	if err != nil {
		return nil, err
	}

	if backend == nil {
		backend = videobackend.Resolve(config.Source.Backend)
	}

	segmenter, err := newSegmenter(config.Segmenter)
	if err != nil {
		return nil, err
	}

	bg, err := background.Load(config.Background.Path)
	if err != nil {
		closeSegmenter(segmenter)
		return nil, err
	}
	if bg == nil {
		log.Warn("No background image configured, frames will pass through untouched")
	}

	return &Server{
		shutdownDone: make(chan interface{}),
		config:       config,
		videoBackend: backend,
		segmenter:    segmenter,
		swapper: swap.New(
			segmenter,
			swap.WithBackground(bg),
			swap.WithSegmentTimeout(time.Duration(config.Segmenter.TimeoutMS)*time.Millisecond),
		),
		sink: newSink(config.Output),
	}, nil
}

var newSegmenter = func(cfg configdef.Segmenter) (segment.Segmenter, error) {
	switch cfg.Backend {
	case configdef.SegmenterOpenCV:
		dnnConfig := opencvsegment.DefaultConfig()
		dnnConfig.ModelPath = cfg.ModelPath
		dnn, err := opencvsegment.New(dnnConfig)
		if err != nil {
			return nil, xerror.Errorf("unable to load segmenter: %w", err)
		}
		return dnn, nil
	default:
		return segment.NewMock(), nil
	}
}

func newSink(cfg configdef.Output) videosink.Sink {
	if len(cfg.SnapshotPath) == 0 {
		return &videosink.Discard{}
	}
	log.Info("Writing every %d output frame(s) to: %s", cfg.SnapshotEvery, cfg.SnapshotPath)
	return videosink.NewSnapshotWriter(cfg.SnapshotPath, cfg.SnapshotEvery)
}

func closeSegmenter(segmenter segment.Segmenter) {
	if closer, ok := segmenter.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Error("Unable to close segmenter: %v", err)
		}
	}
}

func (s *Server) Connect(cancel context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.config.Source
	log.Info("Connecting to source: [%s@%s]...", src.Title, src.Address)
	addr := src.Address
	if len(addr) == 0 {
		addr = src.Title
	}
	conn, err := s.videoBackend.Connect(cancel, addr)
	if err != nil {
		return xerror.Errorf("unable to connect to source [%s]: %w", src.Title, err)
	}

	log.Info("Connected successfully to source: [%s]", src.Title)
	s.conn = conn
	return nil
}

// SetBackground swaps the background image used for every following frame.
func (s *Server) SetBackground(path string) error {
	bg, err := background.Load(path)
	if err != nil {
		return err
	}
	s.swapper.SetBackground(bg)
	return nil
}

func (s *Server) Stats() swap.Stats {
	return s.swapper.Stats()
}

// Shutdown stops the processes and closes the source, the returned channel
// closes once everything has wound down.
func (s *Server) Shutdown() chan interface{} {
	s.shutdownOnce.Do(func() { go s.shutdown() })
	return s.shutdownDone
}

func (s *Server) shutdown() {
	s.shutdownProcesses()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		log.Info("Closing source connection: [%s]...", s.config.Source.Title)
		if err := s.conn.Close(); err != nil {
			log.Error("Unable to close source connection: %v", err)
		}
	}
	closeSegmenter(s.segmenter)
	close(s.shutdownDone)
}
