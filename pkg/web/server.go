// Package web provides the real-time haptic dashboard: REST endpoints for
// driving the pipeline by hand and a websocket feed of live events.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/FujiiNoritsugu/go-haptic/internal/history"
	"github.com/FujiiNoritsugu/go-haptic/internal/log"
	"github.com/FujiiNoritsugu/go-haptic/pkg/device"
	"github.com/FujiiNoritsugu/go-haptic/pkg/hub"
)

// Server is the dashboard web server.
type Server struct {
	app  *fiber.App
	port string

	manager *device.Manager
	history *history.Store
	events  *hub.Hub
}

// NewServer wires the dashboard against the shared device manager, history
// store and event hub.
func NewServer(port string, manager *device.Manager, hist *history.Store, events *hub.Hub) *Server {
	s := &Server{
		port:    port,
		manager: manager,
		history: hist,
		events:  events,
	}

	app := fiber.New(fiber.Config{
		AppName:               "Haptic Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// Static files
	app.Static("/", "./web")

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/devices", s.handleDevices)
	api.Get("/events", s.handleEvents)
	api.Post("/vibrate", s.handleVibrate)
	api.Post("/touch", s.handleTouch)
	api.Post("/alert", s.handleAlert)
	api.Post("/stop", s.handleStop)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/events", websocket.New(s.handleEventsWS))

	s.app = app
	return s
}

// Start runs the hub and blocks serving HTTP.
func (s *Server) Start() error {
	log.Info("dashboard listening", "port", s.port)
	go s.events.Run()
	return s.app.Listen(":" + s.port)
}

// StartAsync runs the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("dashboard server failed", "error", err)
		}
	}()
}

// Shutdown stops the HTTP listener.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// handleEventsWS feeds live pipeline events to a dashboard client.
func (s *Server) handleEventsWS(c *websocket.Conn) {
	client := hub.NewClient(s.events, c)
	client.Run()
}
