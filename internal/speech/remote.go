package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/abhisek/linguaspark/internal/llm"
)

// Synthesizer turns text into encoded audio. *llm.Client satisfies it.
type Synthesizer interface {
	Speech(ctx context.Context, text string) ([]byte, error)
}

// AudioSink receives one encoded audio clip per segment.
type AudioSink interface {
	Write(ctx context.Context, index int, audio []byte) error
}

// RemoteVoice synthesizes each segment remotely and hands the audio to a
// sink.
type RemoteVoice struct {
	synth Synthesizer
	sink  AudioSink

	mu    sync.Mutex
	index int
}

// NewRemoteVoice creates a RemoteVoice.
func NewRemoteVoice(synth Synthesizer, sink AudioSink) *RemoteVoice {
	return &RemoteVoice{synth: synth, sink: sink}
}

func (v *RemoteVoice) Say(ctx context.Context, text string) error {
	audio, err := v.synth.Speech(llm.WithPurpose(ctx, llm.PurposeSpeech), text)
	if err != nil {
		return err
	}

	v.mu.Lock()
	idx := v.index
	v.index++
	v.mu.Unlock()

	return v.sink.Write(ctx, idx, audio)
}

// DirSink writes clips as numbered files in a directory.
type DirSink struct {
	Dir    string
	Prefix string
	Ext    string
}

func (d DirSink) Write(_ context.Context, index int, audio []byte) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("create audio dir: %w", err)
	}
	ext := d.Ext
	if ext == "" {
		ext = "mp3"
	}
	name := filepath.Join(d.Dir, fmt.Sprintf("%s%03d.%s", d.Prefix, index, ext))
	if err := os.WriteFile(name, audio, 0o644); err != nil {
		return fmt.Errorf("write audio: %w", err)
	}
	return nil
}
