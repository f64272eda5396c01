// Package config loads the application configuration from YAML,
// layering file values over package defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tolian500/go-eyes/pkg/camera"
	"github.com/tolian500/go-eyes/pkg/display"
	"github.com/tolian500/go-eyes/pkg/gaze"
	"github.com/tolian500/go-eyes/pkg/render"
	"github.com/tolian500/go-eyes/pkg/vision"
)

// App is the full application configuration.
type App struct {
	Camera camera.Config       `yaml:"camera"`
	Motion vision.MotionConfig `yaml:"motion"`
	Face   vision.FaceConfig   `yaml:"face"`
	Gaze   gaze.Config         `yaml:"gaze"`
	Look   render.Appearance   `yaml:"look"`

	LeftEye  display.GC9A01Config `yaml:"left_eye"`
	RightEye display.GC9A01Config `yaml:"right_eye"`

	RenderInterval time.Duration `yaml:"render_interval"` // Frame period
	FaceEveryN     int           `yaml:"face_every_n"`    // Face detection cadence
	CacheCapacity  int           `yaml:"cache_capacity"`

	WebAddr string `yaml:"web_addr"`
}

// Default returns the built-in configuration.
func Default() App {
	return App{
		Camera:         camera.DefaultConfig(),
		Motion:         vision.DefaultMotionConfig(),
		Face:           vision.DefaultFaceConfig(),
		Gaze:           gaze.DefaultConfig(),
		Look:           render.DefaultAppearance(),
		LeftEye:        display.LeftEyeConfig(),
		RightEye:       display.RightEyeConfig(),
		RenderInterval: 40 * time.Millisecond,
		FaceEveryN:     20,
		CacheCapacity:  50,
		WebAddr:        ":8080",
	}
}

// Load reads path and overlays it on the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (App, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
