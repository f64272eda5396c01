// Package web serves the live eye dashboard: current gaze state over
// JSON and a websocket preview of the rendered frames.
package web

import (
	"context"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/tolian500/go-eyes/internal/log"
	"github.com/tolian500/go-eyes/pkg/hub"
)

// State is the dashboard view of the controller.
type State struct {
	Mode      string  `json:"mode"`
	TargetX   float64 `json:"target_x"`
	TargetY   float64 `json:"target_y"`
	EyeX      float64 `json:"eye_x"`
	EyeY      float64 `json:"eye_y"`
	ColorR    uint8   `json:"color_r"`
	ColorG    uint8   `json:"color_g"`
	ColorB    uint8   `json:"color_b"`
	IrisSize  float64 `json:"iris_size"`
	Blink     float64 `json:"blink"`
	FPS       float64 `json:"fps"`
	CacheSize int     `json:"cache_size"`
	IdleAnim  string  `json:"idle_anim,omitempty"`
}

// Server is the dashboard HTTP and websocket server.
type Server struct {
	app  *fiber.App
	addr string

	state   State
	stateMu sync.RWMutex

	statusHub  *hub.Hub
	previewHub *hub.Hub
}

// NewServer builds the server and its routes. addr is host:port.
func NewServer(addr string) *Server {
	s := &Server{
		addr:       addr,
		statusHub:  hub.New("status"),
		previewHub: hub.New("preview"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "go-eyes dashboard",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	app.Get("/", s.handleIndex)
	app.Get("/api/state", s.handleState)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	app.Get("/ws/preview", websocket.New(s.handlePreviewWS))

	s.app = app
	return s
}

// Start runs the hubs and listens until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	go s.statusHub.Run(ctx)
	go s.previewHub.Run(ctx)
	go func() {
		<-ctx.Done()
		if err := s.app.Shutdown(); err != nil {
			log.Warn("web shutdown", "error", err)
		}
	}()
	log.Info("dashboard listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// StartAsync runs Start in a goroutine, logging any listen error.
func (s *Server) StartAsync(ctx context.Context) {
	go func() {
		if err := s.Start(ctx); err != nil {
			log.Error("web server", "error", err)
		}
	}()
}

// UpdateState applies update under the lock and broadcasts the result.
func (s *Server) UpdateState(update func(*State)) {
	s.stateMu.Lock()
	update(&s.state)
	state := s.state
	s.stateMu.Unlock()
	s.statusHub.BroadcastJSON(state)
}

// SendPreviewFrame broadcasts one encoded frame to preview clients.
// Skipped entirely when nobody is watching.
func (s *Server) SendPreviewFrame(frame []byte) {
	if s.previewHub.ClientCount() == 0 {
		return
	}
	buf := make([]byte, len(frame))
	copy(buf, frame)
	s.previewHub.BroadcastBinary(buf)
}

// PreviewWatchers reports how many preview clients are connected.
func (s *Server) PreviewWatchers() int {
	return s.previewHub.ClientCount()
}

func (s *Server) handleState(c *fiber.Ctx) error {
	s.stateMu.RLock()
	state := s.state
	s.stateMu.RUnlock()
	return c.JSON(state)
}

func (s *Server) handleStatusWS(c *websocket.Conn) {
	hub.NewClient(s.statusHub, c).Run()
}

func (s *Server) handlePreviewWS(c *websocket.Conn) {
	hub.NewClient(s.previewHub, c).Run()
}
