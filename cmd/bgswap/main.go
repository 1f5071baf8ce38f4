package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tacusci/logging/v2"
	"github.com/takama/daemon"
	"github.com/tauraamui/bgswap/pkg/config"
	"github.com/tauraamui/bgswap/pkg/configdef"
	"github.com/tauraamui/bgswap/pkg/log"
	"github.com/tauraamui/bgswap/pkg/pipeline"
	"github.com/tauraamui/bgswap/pkg/video/videobackend"
	"gocv.io/x/gocv"
)

const (
	name        = "bgswap"
	description = "Background swap service which replaces the background of live camera frames"
)

type Service struct {
	daemon.Daemon
}

// Setup writes the default config file
func (service *Service) Setup() (string, error) {
	log.Info("Setting up bgswap service...")

	err := config.DefaultCreator().Create()
	if err != nil {
		if !errors.Is(err, configdef.ErrConfigAlreadyExists) {
			return "", err
		}
		log.Error(err.Error())
	}

	return "Setup successful...", nil
}

func (service *Service) Manage() (string, error) {
	usage := "Usage: bgswap setup | install | remove | start | stop | status"

	if len(os.Args) > 1 {
		command := os.Args[1]
		switch command {
		case "setup":
			return service.Setup()
		case "install":
			return service.Install()
		case "remove":
			return service.Remove()
		case "start":
			return service.Start()
		case "stop":
			return service.Stop()
		case "status":
			return service.Status()
		default:
			return usage, nil
		}
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)

	log.Info("Starting bgswap...")

	server, err := pipeline.NewServer(config.DefaultResolver(), resolveBackendOverride())
	if err != nil {
		log.Fatal(err.Error())
	}

	ctx, cancelStartup := context.WithCancel(context.Background())
	go startupServer(ctx, server)

	var killSignal os.Signal
waitForSignal:
	for {
		select {
		case <-reload:
			reloadBackground(server)
		case killSignal = <-interrupt:
			break waitForSignal
		}
	}
	fmt.Print("\r")
	log.Error("Received signal: %s", killSignal)

	cancelStartup()
	log.Info("Shutting down server...")
	<-server.Shutdown()

	if logging.CurrentLoggingLevel == logging.DebugLevel {
		var b bytes.Buffer
		gocv.MatProfile.WriteTo(&b, 1)
		fmt.Print(b.String())
	}

	return "Shutdown successful... BYE! 👋", nil
}

// resolveBackendOverride returns nil unless BGSWAP_VIDEO_BACKEND is set,
// leaving the server to pick the backend named in the config.
func resolveBackendOverride() videobackend.Backend {
	if backend := os.Getenv("BGSWAP_VIDEO_BACKEND"); len(backend) > 0 {
		return videobackend.Resolve(backend)
	}
	return nil
}

func startupServer(ctx context.Context, server *pipeline.Server) {
	if err := server.Connect(ctx); err != nil {
		log.Error(err.Error())
		return
	}
	server.SetupProcesses()
	server.RunProcesses()
}

func reloadBackground(server *pipeline.Server) {
	values, err := config.DefaultResolver().Resolve()
	if err != nil {
		log.Error("Unable to reload config: %v", err)
		return
	}
	if err := server.SetBackground(values.Background.Path); err != nil {
		log.Error("Unable to reload background: %v", err)
		return
	}
	log.Info("Reloaded background from: %s", values.Background.Path)
}

func init() {
	log.SetLevel(os.Getenv("BGSWAP_LOGGING_LEVEL"))
}

func main() {
	daemonType := daemon.SystemDaemon
	if runtime.GOOS == "darwin" {
		daemonType = daemon.UserAgent
	}

	srv, err := daemon.New(name, description, daemonType)
	if err != nil {
		logging.Error(err.Error()) //nolint
		os.Exit(1)
	}

	service := &Service{srv}
	status, err := service.Manage()
	if err != nil {
		logging.Error(err.Error()) //nolint
		os.Exit(1)
	}

	logging.Info(status) //nolint
}
