package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/FujiiNoritsugu/go-haptic/pkg/emoji"
)

// EmojiTool handles add_emoji: decorates agent replies with emojis that
// match the current emotion state.
type EmojiTool struct{}

// NewEmojiTool creates an EmojiTool.
func NewEmojiTool() *EmojiTool {
	return &EmojiTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *EmojiTool) Definition() mcp.Tool {
	return mcp.NewTool("add_emoji",
		withEmotionParams(
			mcp.WithDescription(
				"Pick emojis matching an emotion state. With 'text' given, returns "+
					"the text with the emojis appended; otherwise just the emojis.",
			),
			mcp.WithString("text",
				mcp.Description("Message text to decorate"),
			),
		)...,
	)
}

// Handle processes the add_emoji tool call.
func (t *EmojiTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v := emotionArgs(req)
	emojis := emoji.For(v)

	text := req.GetString("text", "")
	decorated := text
	if text != "" && emojis != "" {
		decorated = text + " " + emojis
	} else if text == "" {
		decorated = emojis
	}

	dominant, value := v.Dominant()
	return jsonResult(map[string]any{
		"text":             decorated,
		"emojis":           emojis,
		"dominant_emotion": string(dominant),
		"emotion_level":    value,
	}), nil
}
