package tools

import (
	"context"
	"encoding/base64"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/FujiiNoritsugu/go-haptic/pkg/tts"
)

// maxInlineAudio caps how much synthesized audio is returned inline.
// Larger results report metadata only; callers stream from the engine
// directly when they need the full clip.
const maxInlineAudio = 512 * 1024

// SpeakTool handles speak: renders agent text to audio through the
// configured TTS provider.
type SpeakTool struct {
	provider tts.Provider
}

// NewSpeakTool creates a SpeakTool.
func NewSpeakTool(provider tts.Provider) *SpeakTool {
	return &SpeakTool{provider: provider}
}

// Definition returns the MCP tool definition for registration.
func (t *SpeakTool) Definition() mcp.Tool {
	return mcp.NewTool("speak",
		mcp.WithDescription(
			"Synthesize speech for the given text through the configured "+
				"text-to-speech engine. Returns WAV audio, base64-encoded when "+
				"small enough to inline.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to speak"),
		),
		mcp.WithNumber("speaker",
			mcp.Description("Speaker (voice) ID. Omit to keep the engine's current voice."),
		),
	)
}

// Handle processes the speak tool call.
func (t *SpeakTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}

	if id := req.GetFloat("speaker", -1); id >= 0 {
		if sw, ok := t.provider.(tts.SpeakerSetter); ok {
			sw.SetSpeaker(int(id))
		}
	}

	res, err := t.provider.Synthesize(ctx, text)
	if err != nil {
		return mcp.NewToolResultError("synthesis failed: " + err.Error()), nil
	}

	out := map[string]any{
		"format":      res.Format,
		"sample_rate": res.SampleRate,
		"speaker_id":  res.SpeakerID,
		"bytes":       len(res.Audio),
	}
	if len(res.Audio) <= maxInlineAudio {
		out["audio_base64"] = base64.StdEncoding.EncodeToString(res.Audio)
	}
	return jsonResult(out), nil
}
