package tts

import "context"

// Mock is a Provider for tests and audio-less deployments. It records the
// texts it was asked to speak and returns a canned result.
type Mock struct {
	Spoken    []string
	SpeakerID int
	FailErr   error
}

// Synthesize records the text and returns a tiny fake WAV buffer.
func (m *Mock) Synthesize(ctx context.Context, text string) (*AudioResult, error) {
	if m.FailErr != nil {
		return nil, m.FailErr
	}
	m.Spoken = append(m.Spoken, text)
	speaker := m.SpeakerID
	if speaker == 0 {
		speaker = DefaultSpeakerID
	}
	return &AudioResult{
		Audio:      []byte("RIFF"),
		Format:     "wav",
		SampleRate: voicevoxSampleRate,
		SpeakerID:  speaker,
	}, nil
}

// Health reports the configured failure, if any.
func (m *Mock) Health(ctx context.Context) error { return m.FailErr }

// Close is a no-op.
func (m *Mock) Close() error { return nil }

// SetSpeaker records the requested voice.
func (m *Mock) SetSpeaker(id int) { m.SpeakerID = id }

var (
	_ Provider      = (*Mock)(nil)
	_ SpeakerSetter = (*Mock)(nil)
)
