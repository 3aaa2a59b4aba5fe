// haptic-mcp - MCP server exposing haptic feedback tools over stdio.
//
// The conversational agent connects here and drives the vibration device
// through tool calls. stdout carries the MCP transport; all logging goes
// to stderr.
//
// Usage:
//
//	DEVICE_IP=192.168.1.100 haptic-mcp
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/FujiiNoritsugu/go-haptic/internal/config"
	"github.com/FujiiNoritsugu/go-haptic/internal/log"
	haptic "github.com/FujiiNoritsugu/go-haptic/internal/server"
	"github.com/FujiiNoritsugu/go-haptic/pkg/device"
)

func main() {
	log.Init(os.Getenv("LOG_LEVEL"))

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("haptic-mcp v%s\n", haptic.Version)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	manager := device.NewManager()

	// Pre-register the default device when DEVICE_IP is set; connection
	// failure is not fatal, the agent can retry via initialize_device.
	if ip := config.DeviceIP(""); ip != "" {
		c := device.NewClient(ip, config.DevicePort())
		ctx, cancel := context.WithTimeout(context.Background(), device.DefaultTimeout)
		if c.Connect(ctx) {
			log.Info("default device connected", "url", c.BaseURL())
		} else {
			log.Warn("default device not reachable yet", "url", c.BaseURL())
		}
		cancel()
		manager.Add("default", c)
	}

	s, cleanup := haptic.New(haptic.Options{Manager: manager})
	defer cleanup()

	log.Info("haptic MCP server starting", "version", haptic.Version)
	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Println(`haptic-mcp - haptic feedback MCP server (stdio transport)

Environment:
  DEVICE_IP      actuator address, pre-registered as device "default"
  DEVICE_PORT    actuator HTTP port (default 80)
  VOICEVOX_URL   TTS engine URL (default http://localhost:50021)
  HISTORY_PATH   event-log database path (default haptic-history.db)`)
}
