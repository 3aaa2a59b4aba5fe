// Package server wires the haptic MCP server: it creates the concrete
// device manager, history store and TTS provider, and registers every tool
// against them. No business logic lives here, only wiring.
package server

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/FujiiNoritsugu/go-haptic/internal/config"
	"github.com/FujiiNoritsugu/go-haptic/internal/history"
	"github.com/FujiiNoritsugu/go-haptic/internal/log"
	"github.com/FujiiNoritsugu/go-haptic/internal/tools"
	"github.com/FujiiNoritsugu/go-haptic/pkg/device"
	"github.com/FujiiNoritsugu/go-haptic/pkg/hub"
	"github.com/FujiiNoritsugu/go-haptic/pkg/tts"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Options carries the optional pieces main can override.
type Options struct {
	// Manager is the device registry. A fresh one is created when nil.
	Manager *device.Manager
	// TTS overrides the speech provider. Defaults to VOICEVOX at the
	// configured URL.
	TTS tts.Provider
	// HistoryPath overrides the history database location.
	HistoryPath string
	// Events receives pipeline events for the dashboard. Optional.
	Events *hub.Hub
}

// New creates the MCP server with every haptic tool registered. The
// returned cleanup closes the history store and disconnects devices; it is
// always non-nil and safe to call.
func New(opts Options) (*server.MCPServer, func()) {
	manager := opts.Manager
	if manager == nil {
		manager = device.NewManager()
	}

	historyPath := opts.HistoryPath
	if historyPath == "" {
		historyPath = config.HistoryPath()
	}
	hist := history.Open(historyPath)
	if !hist.Enabled() {
		log.Warn("running without haptic history")
	}

	provider := opts.TTS
	if provider == nil {
		provider = tts.NewVoiceVox(config.VoiceVoxURL())
	}

	s := server.NewMCPServer(
		"go-haptic",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	generateTool := tools.NewGenerateTool()
	s.AddTool(generateTool.Definition(), generateTool.Handle)

	controlTool := tools.NewControlTool(manager, hist, opts.Events)
	s.AddTool(controlTool.Definition(), controlTool.Handle)

	sendTool := tools.NewSendTool(manager, hist)
	s.AddTool(sendTool.Definition(), sendTool.Handle)

	initializeTool := tools.NewInitializeTool(manager)
	s.AddTool(initializeTool.Definition(), initializeTool.Handle)

	statusTool := tools.NewStatusTool(manager)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	sensorTool := tools.NewSensorTool(manager, hist)
	s.AddTool(sensorTool.Definition(), sensorTool.Handle)

	emojiTool := tools.NewEmojiTool()
	s.AddTool(emojiTool.Definition(), emojiTool.Handle)

	speakTool := tools.NewSpeakTool(provider)
	s.AddTool(speakTool.Definition(), speakTool.Handle)

	historyTool := tools.NewHistoryTool(hist)
	s.AddTool(historyTool.Definition(), historyTool.Handle)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, name := range manager.Names() {
			manager.Remove(ctx, name)
		}
		provider.Close()
		hist.Close()
	}
	return s, cleanup
}

const instructions = `This server turns conversation emotion into physical haptic feedback.

Typical flow:
1. initialize_device to connect to the actuator (or rely on DEVICE_IP).
2. After each user exchange, estimate joy/fun/anger/sad (0-5 each) and
   call control_vibration so the device reacts.
3. Use add_emoji to decorate replies and speak to voice them.
4. read_touch_sensor and haptic_history help you reason about what the
   device has felt.

Dispatch results acknowledge transmission only; patterns play out on the
device asynchronously.`
