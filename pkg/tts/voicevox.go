package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/FujiiNoritsugu/go-haptic/internal/httpc"
	"github.com/FujiiNoritsugu/go-haptic/internal/log"
)

// VOICEVOX output format. The engine always renders 24kHz WAV.
const (
	voicevoxFormat     = "wav"
	voicevoxSampleRate = 24000
	DefaultSpeakerID   = 1
)

// VoiceVox synthesizes speech through a local VOICEVOX engine.
// Synthesis is two requests: POST /audio_query builds the prosody query,
// POST /synthesis renders it to WAV.
type VoiceVox struct {
	baseURL string
	http    *http.Client

	mu      sync.Mutex
	speaker int
}

// VoiceVoxOption configures a VoiceVox provider.
type VoiceVoxOption func(*VoiceVox)

// WithSpeaker sets the initial speaker (voice) ID.
func WithSpeaker(id int) VoiceVoxOption {
	return func(v *VoiceVox) { v.speaker = id }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) VoiceVoxOption {
	return func(v *VoiceVox) { v.http = h }
}

// NewVoiceVox creates a provider against the engine at baseURL
// (typically http://localhost:50021).
func NewVoiceVox(baseURL string, opts ...VoiceVoxOption) *VoiceVox {
	v := &VoiceVox{
		baseURL: baseURL,
		http:    httpc.NewClient(httpc.DefaultTimeout),
		speaker: DefaultSpeakerID,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Synthesize renders text to WAV audio using the current speaker.
func (v *VoiceVox) Synthesize(ctx context.Context, text string) (*AudioResult, error) {
	speaker := v.Speaker()

	query, err := v.audioQuery(ctx, text, speaker)
	if err != nil {
		return nil, fmt.Errorf("audio query: %w", err)
	}

	audio, err := v.synthesis(ctx, query, speaker)
	if err != nil {
		return nil, fmt.Errorf("synthesis: %w", err)
	}

	log.Debug("speech synthesized", "chars", len(text), "speaker", speaker, "bytes", len(audio))
	return &AudioResult{
		Audio:      audio,
		Format:     voicevoxFormat,
		SampleRate: voicevoxSampleRate,
		SpeakerID:  speaker,
	}, nil
}

// Health checks the engine by listing its speakers.
func (v *VoiceVox) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/speakers", nil)
	if err != nil {
		return err
	}
	resp, err := v.http.Do(req)
	if err != nil {
		return fmt.Errorf("voicevox unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("voicevox returned %s", resp.Status)
	}
	return nil
}

// Close releases idle connections.
func (v *VoiceVox) Close() error {
	v.http.CloseIdleConnections()
	return nil
}

// Speaker returns the current speaker ID.
func (v *VoiceVox) Speaker() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.speaker
}

// SetSpeaker switches the voice used by subsequent Synthesize calls.
func (v *VoiceVox) SetSpeaker(id int) {
	v.mu.Lock()
	v.speaker = id
	v.mu.Unlock()
}

// audioQuery asks the engine to build the prosody query for text.
func (v *VoiceVox) audioQuery(ctx context.Context, text string, speaker int) ([]byte, error) {
	u := v.baseURL + "/audio_query?" + url.Values{
		"text":    {text},
		"speaker": {strconv.Itoa(speaker)},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return nil, err
	}
	return v.roundTrip(req)
}

// synthesis renders a prosody query to WAV.
func (v *VoiceVox) synthesis(ctx context.Context, query []byte, speaker int) ([]byte, error) {
	u := v.baseURL + "/synthesis?" + url.Values{
		"speaker": {strconv.Itoa(speaker)},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(query))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return v.roundTrip(req)
}

func (v *VoiceVox) roundTrip(req *http.Request) ([]byte, error) {
	resp, err := v.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("voicevox returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

var (
	_ Provider      = (*VoiceVox)(nil)
	_ SpeakerSetter = (*VoiceVox)(nil)
)
