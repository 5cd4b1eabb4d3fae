package audio

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var fakeMP3 = []byte{0xff, 0xfb, 0x90, 0x00, 0x01, 0x02}

func TestElevenLabsSynthesize(t *testing.T) {
	var (
		path    string
		headers http.Header
		got     ttsRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		headers = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(fakeMP3)
	}))
	defer srv.Close()

	cfg := DefaultElevenLabsConfig()
	cfg.BaseURL = srv.URL
	cfg.APIKey = "xi-key"
	cfg.VoiceID = "calm-voice"
	cfg.ModelID = "eleven_turbo_v2"
	e, err := NewElevenLabs(cfg, srv.Client())
	if err != nil {
		t.Fatalf("NewElevenLabs: %v", err)
	}

	rc, err := e.Synthesize(context.Background(), "Stillness speaks.")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	body, _ := io.ReadAll(rc)
	rc.Close()

	if path != "/v1/text-to-speech/calm-voice" {
		t.Errorf("path = %q", path)
	}
	if headers.Get("xi-api-key") != "xi-key" || headers.Get("Accept") != "audio/mpeg" {
		t.Errorf("headers = %v", headers)
	}
	if got.Text != "Stillness speaks." || got.ModelID != "eleven_turbo_v2" {
		t.Errorf("request = %+v", got)
	}
	if got.VoiceSettings.Stability != 0.4 || got.VoiceSettings.SimilarityBoost != 0.7 {
		t.Errorf("voice settings = %+v", got.VoiceSettings)
	}
	if string(body) != string(fakeMP3) {
		t.Errorf("body = %x", body)
	}
}

func TestElevenLabsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	e, err := NewElevenLabs(ElevenLabsConfig{BaseURL: srv.URL, APIKey: "k", VoiceID: "v"}, nil)
	if err != nil {
		t.Fatalf("NewElevenLabs: %v", err)
	}
	_, err = e.Synthesize(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error on 429")
	}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("error = %v", err)
	}
}

func TestElevenLabsRequiresCredentials(t *testing.T) {
	if _, err := NewElevenLabs(ElevenLabsConfig{VoiceID: "v"}, nil); err == nil {
		t.Error("expected error without api key")
	}
	if _, err := NewElevenLabs(ElevenLabsConfig{APIKey: "k"}, nil); err == nil {
		t.Error("expected error without voice id")
	}
}

func TestOpenAISpeechSynthesize(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/audio/speech") {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(fakeMP3)
	}))
	defer srv.Close()

	o, err := NewOpenAISpeech(OpenAISpeechConfig{
		BaseURL: srv.URL,
		APIKey:  "sk-test",
		Voice:   "sage",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewOpenAISpeech: %v", err)
	}

	rc, err := o.Synthesize(context.Background(), "A quiet answer.")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	body, _ := io.ReadAll(rc)
	rc.Close()

	if got["input"] != "A quiet answer." || got["voice"] != "sage" || got["model"] != "tts-1" {
		t.Errorf("request = %v", got)
	}
	if got["response_format"] != "mp3" {
		t.Errorf("response_format = %v", got["response_format"])
	}
	if string(body) != string(fakeMP3) {
		t.Errorf("body = %x", body)
	}
}

func TestOpenAISpeechRequiresKey(t *testing.T) {
	if _, err := NewOpenAISpeech(OpenAISpeechConfig{}); err == nil {
		t.Error("expected error without api key")
	}
}
