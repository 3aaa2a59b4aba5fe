package tts

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FujiiNoritsugu/go-haptic/internal/httpc"
)

func voicevoxServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	mux := http.NewServeMux()
	mux.HandleFunc("/audio_query", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path+"?speaker="+r.URL.Query().Get("speaker"))
		w.Write([]byte(`{"accent_phrases":[]}`))
	})
	mux.HandleFunc("/synthesis", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path+"?speaker="+r.URL.Query().Get("speaker"))
		body, _ := io.ReadAll(r.Body)
		if len(body) == 0 {
			http.Error(w, "missing query", http.StatusBadRequest)
			return
		}
		w.Write([]byte("RIFFfakewav"))
	})
	mux.HandleFunc("/speakers", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &paths
}

func TestVoiceVox_Synthesize(t *testing.T) {
	srv, paths := voicevoxServer(t)
	v := NewVoiceVox(srv.URL, WithSpeaker(3))

	res, err := v.Synthesize(context.Background(), "こんにちは")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(res.Audio[:4]) != "RIFF" {
		t.Errorf("audio does not look like WAV: %q", res.Audio[:4])
	}
	if res.Format != "wav" || res.SampleRate != 24000 || res.SpeakerID != 3 {
		t.Errorf("result metadata = %+v", res)
	}

	want := []string{"/audio_query?speaker=3", "/synthesis?speaker=3"}
	if len(*paths) != 2 || (*paths)[0] != want[0] || (*paths)[1] != want[1] {
		t.Errorf("request sequence = %v, want %v", *paths, want)
	}
}

func TestVoiceVox_SetSpeaker(t *testing.T) {
	srv, paths := voicevoxServer(t)
	v := NewVoiceVox(srv.URL)
	v.SetSpeaker(8)

	if _, err := v.Synthesize(context.Background(), "test"); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if (*paths)[0] != "/audio_query?speaker=8" {
		t.Errorf("speaker change not applied: %v", *paths)
	}
}

func TestVoiceVox_Health(t *testing.T) {
	srv, _ := voicevoxServer(t)
	v := NewVoiceVox(srv.URL)
	if err := v.Health(context.Background()); err != nil {
		t.Errorf("Health against live engine: %v", err)
	}

	dead := NewVoiceVox("http://127.0.0.1:1")
	if err := dead.Health(context.Background()); err == nil {
		t.Error("Health against dead engine should fail")
	}
}

func TestVoiceVox_SynthesisFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/audio_query", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "engine busy", http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	v := NewVoiceVox(srv.URL)
	if _, err := v.Synthesize(context.Background(), "test"); err == nil {
		t.Error("Synthesize should surface engine errors")
	}
}

func TestNewVoiceVox_ClientDefaults(t *testing.T) {
	v := NewVoiceVox("http://localhost:50021")
	if v.http.Timeout != httpc.DefaultTimeout {
		t.Errorf("timeout = %v, want %v", v.http.Timeout, httpc.DefaultTimeout)
	}
	if v.Speaker() != DefaultSpeakerID {
		t.Errorf("speaker = %d, want %d", v.Speaker(), DefaultSpeakerID)
	}
}
