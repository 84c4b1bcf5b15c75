// Package web serves a browser view of the flip core: an embedded page
// applies the published transforms with CSS matrix3d, fed over a
// websocket fan-out, and clicks come back as flip commands.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/flipdeck/flipdeck/internal/config"
	"github.com/flipdeck/flipdeck/internal/flip"
	"github.com/flipdeck/flipdeck/internal/geom"
)

//go:embed index.html
var indexHTML string

// FramePayload is the wire form of one published frame. Matrices are
// row-major; the page transposes them into matrix3d's column order.
type FramePayload struct {
	Current  geom.Mat4 `json:"current"`
	Opposite geom.Mat4 `json:"opposite"`
	Face     string    `json:"face"`
	Progress float64   `json:"progress"`
	Angle    float64   `json:"angle"`
}

func payloadFrom(fr flip.Frame) FramePayload {
	return FramePayload{
		Current:  fr.Current,
		Opposite: fr.Opposite,
		Face:     fr.Face.String(),
		Progress: fr.Progress,
		Angle:    fr.Angle,
	}
}

// StatsPayload mirrors flip.Stats for the dashboard.
type StatsPayload struct {
	Ticks     int `json:"ticks"`
	Published int `json:"published"`
	Skipped   int `json:"skipped"`
	Flips     int `json:"flips"`
	Dropped   int `json:"dropped"`
}

// StatePayload answers /api/state.
type StatePayload struct {
	Frame      FramePayload `json:"frame"`
	Stats      StatsPayload `json:"stats"`
	Preset     string       `json:"preset"`
	Axis       string       `json:"axis"`
	Backface   string       `json:"backface"`
	DurationMS int          `json:"duration_ms"`
	TickRate   int          `json:"tick_rate"`
	Clients    int          `json:"clients"`
}

// Server hosts the dashboard and owns the animation runner.
type Server struct {
	app    *fiber.App
	port   string
	preset string

	appCfg *config.Config
	anim   flip.Config
	runner *flip.Runner
	frames <-chan flip.Frame
	hub    *Hub
}

// NewServer builds the fiber app and the runner it fronts. The preset
// name is informational and may be empty.
func NewServer(cfg *config.Config, preset, port string) (*Server, error) {
	anim, err := cfg.Animation()
	if err != nil {
		return nil, err
	}
	ctrl, err := flip.New(anim)
	if err != nil {
		return nil, err
	}
	runner := flip.NewRunner(ctrl, cfg.Tick())

	s := &Server{
		port:   port,
		preset: preset,
		appCfg: cfg,
		anim:   anim,
		runner: runner,
		frames: runner.Frames(),
		hub:    NewHub(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "flipdeck",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		c.Type("html")
		return c.SendString(indexHTML)
	})

	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Post("/flip", s.handleFlip)
	api.Get("/presets", s.handlePresets)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(s.handleWS))

	s.app = app
	return s, nil
}

// Run serves until ctx is canceled. The runner, the hub, and the frame
// pump all live and die with ctx.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.hub.Run(ctx)
	go func() {
		if err := s.runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Printf("[web] runner stopped: %v\n", err)
		}
	}()
	go s.pumpFrames(ctx)
	go func() {
		<-ctx.Done()
		s.app.Shutdown()
	}()

	fmt.Printf("[web] card view on http://localhost:%s\n", s.port)
	if err := s.app.Listen(":" + s.port); err != nil {
		return err
	}
	return ctx.Err()
}

// pumpFrames forwards every published frame to the hub.
func (s *Server) pumpFrames(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fr := <-s.frames:
			s.hub.BroadcastJSON(payloadFrom(fr))
		}
	}
}

func (s *Server) handleState(c *fiber.Ctx) error {
	fr, stats := s.runner.Snapshot()
	return c.JSON(StatePayload{
		Frame: payloadFrom(fr),
		Stats: StatsPayload{
			Ticks:     stats.Ticks,
			Published: stats.Published,
			Skipped:   stats.Skipped,
			Flips:     stats.Flips,
			Dropped:   stats.Dropped,
		},
		Preset:     s.preset,
		Axis:       s.anim.Axis.String(),
		Backface:   s.anim.Backface.String(),
		DurationMS: s.appCfg.DurationMS,
		TickRate:   s.appCfg.TickRate,
		Clients:    s.hub.ClientCount(),
	})
}

func (s *Server) handleFlip(c *fiber.Ctx) error {
	s.runner.Flip()
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "flipping"})
}

func (s *Server) handlePresets(c *fiber.Ctx) error {
	names := config.ListPresets()
	sort.Strings(names)
	return c.JSON(fiber.Map{
		"presets": names,
		"active":  s.preset,
	})
}

// handleWS registers the connection with the hub, primes it with the
// current frame, and turns clicks into flips.
func (s *Server) handleWS(c *websocket.Conn) {
	client := NewClient(s.hub, c, func(cmd Command) {
		if cmd.Action == "flip" {
			s.runner.Flip()
		}
	})

	fr, _ := s.runner.Snapshot()
	if data, err := json.Marshal(payloadFrom(fr)); err == nil {
		client.Send(data)
	}

	client.Run()
}
