// Package tts provides a unified interface for text-to-speech providers.
//
// The agent speaks through whichever Provider the process was wired with;
// callers never depend on a concrete engine. The default engine is a local
// VOICEVOX server, with a mock for tests and audio-less deployments.
package tts

import "context"

// Provider defines the TTS provider interface.
type Provider interface {
	// Synthesize converts text to audio, returning the complete buffer.
	Synthesize(ctx context.Context, text string) (*AudioResult, error)

	// Health checks provider connectivity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// SpeakerSetter is the optional capability of providers with selectable
// voices. Callers type-assert for it; providers with a single voice simply
// don't implement it.
type SpeakerSetter interface {
	SetSpeaker(id int)
}

// AudioResult is a complete synthesis result.
type AudioResult struct {
	// Audio contains the raw audio data in the given format.
	Audio []byte
	// Format names the container, e.g. "wav".
	Format string
	// SampleRate is in Hz.
	SampleRate int
	// SpeakerID identifies the voice that produced the audio.
	SpeakerID int
}
