// Package speech wraps the ElevenLabs text-to-speech API.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultBaseURL = "https://api.elevenlabs.io"

// Client synthesizes spoken audio from text. Voices may be referenced either
// by id or by display name ("Rachel"); names are resolved through the voices
// endpoint and cached for the life of the client.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client

	mu     sync.Mutex
	voices map[string]string // lowercased name -> voice id
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 120 * time.Second},
	}
}

type ttsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Synthesize renders the script with the given voice and returns raw MP3 bytes.
func (c *Client) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	voiceID, err := c.resolveVoice(ctx, voice)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(ttsRequest{Text: text, ModelID: "eleven_monolingual_v1"})
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.BaseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("speech synthesis: status %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	return io.ReadAll(resp.Body)
}

// resolveVoice maps a voice name to its id, fetching the voice list once.
// Inputs that already look like ids (no match by name) pass through unchanged.
func (c *Client) resolveVoice(ctx context.Context, voice string) (string, error) {
	c.mu.Lock()
	if c.voices != nil {
		if id, ok := c.voices[strings.ToLower(voice)]; ok {
			c.mu.Unlock()
			return id, nil
		}
		c.mu.Unlock()
		return voice, nil
	}
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/voices", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("xi-api-key", c.APIKey)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("list voices: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("list voices: status %s", resp.Status)
	}

	var parsed struct {
		Voices []struct {
			VoiceID string `json:"voice_id"`
			Name    string `json:"name"`
		} `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}

	c.mu.Lock()
	c.voices = make(map[string]string, len(parsed.Voices))
	for _, v := range parsed.Voices {
		c.voices[strings.ToLower(v.Name)] = v.VoiceID
	}
	id, ok := c.voices[strings.ToLower(voice)]
	c.mu.Unlock()
	if !ok {
		return voice, nil
	}
	return id, nil
}
