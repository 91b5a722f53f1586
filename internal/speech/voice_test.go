package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func stubLookPath(t *testing.T, available ...string) {
	t.Helper()
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	set := map[string]bool{}
	for _, a := range available {
		set[a] = true
	}
	lookPath = func(file string) (string, error) {
		if set[file] {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("not found")
	}
}

func TestDetectVoice(t *testing.T) {
	stubLookPath(t, "say", "spd-say")
	v, err := DetectVoice("", VoiceOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Program != "say" {
		t.Errorf("program = %q, want say", v.Program)
	}
}

func TestDetectVoiceNone(t *testing.T) {
	stubLookPath(t)
	if _, err := DetectVoice("", VoiceOptions{}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestDetectVoiceExplicitCommand(t *testing.T) {
	stubLookPath(t, "festival")
	v, err := DetectVoice("festival --tts", VoiceOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Program != "festival" || !reflect.DeepEqual(v.Args, []string{"--tts"}) {
		t.Errorf("voice = %+v", v)
	}

	if _, err := DetectVoice("missing-tts", VoiceOptions{}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported for missing program, got %v", err)
	}
}

func TestCommandVoiceArgs(t *testing.T) {
	tests := []struct {
		name  string
		voice CommandVoice
		want  []string
	}{
		{"espeak defaults", CommandVoice{Program: "espeak-ng"}, []string{"hi"}},
		{"espeak tuned", CommandVoice{Program: "espeak-ng", Options: VoiceOptions{Name: "es", Rate: 0.8, Pitch: 1}}, []string{"-v", "es", "-s", "140", "-p", "50", "hi"}},
		{"say", CommandVoice{Program: "say", Options: VoiceOptions{Name: "Monica"}}, []string{"-v", "Monica", "hi"}},
		{"spd-say waits", CommandVoice{Program: "spd-say"}, []string{"-w", "hi"}},
		{"custom args kept", CommandVoice{Program: "festival", Args: []string{"--tts"}}, []string{"--tts", "hi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.voice.args("hi"); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("args = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandVoiceFailureCode(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	v := &CommandVoice{Program: "/bin/sh", Args: []string{"-c", "exit 3", "--"}}
	err := v.Say(context.Background(), "ignored")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := errorCode(err); got != "exit-3" {
		t.Errorf("code = %q, want exit-3", got)
	}
}

type fakeSynth struct {
	texts []string
	err   error
}

func (f *fakeSynth) Speech(_ context.Context, text string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.texts = append(f.texts, text)
	return []byte("mp3:" + text), nil
}

func TestRemoteVoiceWritesNumberedFiles(t *testing.T) {
	dir := t.TempDir()
	synth := &fakeSynth{}
	s := NewSpeaker(NewRemoteVoice(synth, DirSink{Dir: dir, Prefix: "seg-"}), nil)

	if err := s.Speak(context.Background(), "Uno. Dos."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []string{"mp3:Uno.", "mp3:Dos."} {
		data, err := os.ReadFile(filepath.Join(dir, []string{"seg-000.mp3", "seg-001.mp3"}[i]))
		if err != nil {
			t.Fatalf("read clip %d: %v", i, err)
		}
		if string(data) != want {
			t.Errorf("clip %d = %q, want %q", i, data, want)
		}
	}
}

func TestRemoteVoiceFailure(t *testing.T) {
	synth := &fakeSynth{err: errors.New("http 500")}
	s := NewSpeaker(NewRemoteVoice(synth, DirSink{Dir: t.TempDir()}), nil)

	var segErr *SegmentError
	if err := s.Speak(context.Background(), "Hola."); !errors.As(err, &segErr) {
		t.Fatalf("expected *SegmentError, got %v", err)
	}
	if segErr.Code != "synthesis-failed" {
		t.Errorf("code = %q", segErr.Code)
	}
}

func TestLanguageVoice(t *testing.T) {
	if LanguageVoice("spanish") != "es" || LanguageVoice("klingon") != "en" {
		t.Error("unexpected language voice mapping")
	}
}
