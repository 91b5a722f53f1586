package llm

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	transcriptionsPath = "/openai/v1/audio/transcriptions"
	speechPath         = "/openai/v1/audio/speech"

	// MaxSpeechInput is the longest input the speech endpoint accepts,
	// in characters. Longer text is truncated before sending.
	MaxSpeechInput = 4000
)

// Blob is an opaque binary payload sent as the multipart "file" part.
type Blob struct {
	Name string
	Data []byte
}

// Transcription is the parsed transcription response.
type Transcription struct {
	openai.AudioResponse
	Raw json.RawMessage `json:"-"`
}

// TranscribeAudio uploads recorded audio and returns its transcription.
func (c *Client) TranscribeAudio(ctx context.Context, audio Blob) (*Transcription, error) {
	if audio.Name == "" {
		audio.Name = "recording.webm"
	}
	cl := call{op: OpTranscribe, model: c.cfg.TranscriptionModel, path: transcriptionsPath}
	res, err := c.doMultipart(ctx, cl, audio, map[string]string{"model": c.cfg.TranscriptionModel})
	if err != nil {
		return nil, err
	}

	out := &Transcription{Raw: json.RawMessage(res.body)}
	if err := json.Unmarshal(res.body, &out.AudioResponse); err != nil {
		return nil, &ErrInvalidResponse{Content: res.body, Err: fmt.Errorf("decode transcription: %w", err)}
	}
	return out, nil
}

// Speech synthesizes text remotely and returns the encoded audio bytes.
func (c *Client) Speech(ctx context.Context, text string) ([]byte, error) {
	body := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(c.cfg.SpeechModel),
		Input:          truncateRunes(text, MaxSpeechInput),
		Voice:          openai.SpeechVoice(c.cfg.SpeechVoice),
		ResponseFormat: openai.SpeechResponseFormat(c.cfg.SpeechFormat),
	}
	res, err := c.doJSON(ctx, call{op: OpSpeech, model: c.cfg.SpeechModel, path: speechPath}, body)
	if err != nil {
		return nil, err
	}
	return res.body, nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
