// Command eyes runs the animatronic eye controller: a camera watching
// the room, two round displays looking back at it.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/tolian500/go-eyes/internal/config"
	"github.com/tolian500/go-eyes/internal/log"
	"github.com/tolian500/go-eyes/pkg/camera"
	"github.com/tolian500/go-eyes/pkg/display"
	"github.com/tolian500/go-eyes/pkg/tracker"
	"github.com/tolian500/go-eyes/pkg/vision"
	"github.com/tolian500/go-eyes/pkg/web"
)

type flags struct {
	configPath string
	debug      bool
	headless   bool
	noWeb      bool
	device     int
	webAddr    string
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "Path to YAML config file")
	flag.BoolVar(&f.debug, "debug", false, "Enable verbose debug logging")
	flag.BoolVar(&f.headless, "headless", false, "Run without SPI displays")
	flag.BoolVar(&f.noWeb, "no-web", false, "Disable the web dashboard")
	flag.IntVar(&f.device, "device", -1, "Camera device index (overrides config)")
	flag.StringVar(&f.webAddr, "web-addr", "", "Dashboard listen address (overrides config)")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()
	level := "info"
	if f.debug {
		level = "debug"
	}
	log.Init(level)

	cfg, err := config.Load(f.configPath)
	if err != nil {
		log.Error("config", "error", err)
		os.Exit(1)
	}
	if f.device >= 0 {
		cfg.Camera.DeviceID = f.device
	}
	if f.webAddr != "" {
		cfg.WebAddr = f.webAddr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	source, err := camera.OpenWebcam(cfg.Camera)
	if err != nil {
		log.Error("camera", "error", err)
		os.Exit(1)
	}
	defer source.Close()

	motion := vision.NewMotionDetector(cfg.Motion)
	defer motion.Close()

	var face tracker.FaceDetector
	if fd, err := vision.NewFaceDetector(cfg.Face); err != nil {
		log.Warn("face detection disabled", "error", err)
	} else {
		face = fd
		defer fd.Close()
	}

	left, right, err := openDisplays(cfg, f.headless)
	if err != nil {
		log.Error("displays", "error", err)
		os.Exit(1)
	}

	var server *web.Server
	if !f.noWeb {
		server = web.NewServer(cfg.WebAddr)
		server.StartAsync(ctx)
	}

	t := tracker.New(tracker.Options{
		Config: tracker.Config{
			RenderInterval: cfg.RenderInterval,
			FaceEveryN:     cfg.FaceEveryN,
			CacheCapacity:  cfg.CacheCapacity,
			ErrorBackoff:   tracker.DefaultConfig().ErrorBackoff,
		},
		Gaze:   cfg.Gaze,
		Look:   cfg.Look,
		Source: source,
		Motion: motion,
		Face:   face,
		Projector: vision.Projector{
			SensorWidth:   cfg.Camera.Width,
			SensorHeight:  cfg.Camera.Height,
			DisplayWidth:  cfg.Gaze.DisplayWidth,
			DisplayHeight: cfg.Gaze.DisplayHeight,
			Margin:        cfg.Gaze.EdgeMargin,
		},
		Left:   left,
		Right:  right,
		Server: server,
	})

	log.Info("eye controller starting",
		"camera", cfg.Camera.DeviceID,
		"headless", f.headless,
	)
	if err := t.Run(ctx); err != nil && err != context.Canceled {
		log.Error("tracker", "error", err)
		os.Exit(1)
	}
}

// openDisplays opens the two SPI panels, or null sinks when headless.
func openDisplays(cfg config.App, headless bool) (display.Display, display.Display, error) {
	if headless {
		return &display.Null{}, &display.Null{}, nil
	}
	if err := display.InitHost(); err != nil {
		return nil, nil, err
	}
	left, err := display.OpenGC9A01(cfg.LeftEye)
	if err != nil {
		return nil, nil, err
	}
	right, err := display.OpenGC9A01(cfg.RightEye)
	if err != nil {
		left.Close()
		return nil, nil, err
	}
	return left, right, nil
}
