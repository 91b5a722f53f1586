package speech

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// VoiceOptions tune a host voice. Zero values keep the program defaults.
type VoiceOptions struct {
	Name  string  // voice or language name passed to the program
	Rate  float64 // 1.0 is normal speed
	Pitch float64 // 1.0 is normal pitch
}

// CommandVoice speaks through a host text-to-speech program.
type CommandVoice struct {
	Program string
	Args    []string
	Options VoiceOptions
}

// hostPrograms are tried in order by DetectVoice.
var hostPrograms = []string{"espeak-ng", "espeak", "say", "spd-say"}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// DetectVoice returns a CommandVoice for command, or for the first host
// program found when command is empty. It returns ErrUnsupported when no
// program is available.
func DetectVoice(command string, opts VoiceOptions) (*CommandVoice, error) {
	if command != "" {
		fields := strings.Fields(command)
		if _, err := lookPath(fields[0]); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnsupported, fields[0], err)
		}
		return &CommandVoice{Program: fields[0], Args: fields[1:], Options: opts}, nil
	}
	for _, p := range hostPrograms {
		if _, err := lookPath(p); err == nil {
			return &CommandVoice{Program: p, Options: opts}, nil
		}
	}
	return nil, ErrUnsupported
}

// Say runs the program for one segment and waits for it to exit.
func (v *CommandVoice) Say(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, v.Program, v.args(text)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &commandError{program: v.Program, output: strings.TrimSpace(string(out)), err: err}
	}
	return nil
}

func (v *CommandVoice) args(text string) []string {
	args := append([]string(nil), v.Args...)
	o := v.Options
	switch v.Program {
	case "espeak-ng", "espeak":
		if o.Name != "" {
			args = append(args, "-v", o.Name)
		}
		if o.Rate > 0 {
			args = append(args, "-s", strconv.Itoa(int(175*o.Rate)))
		}
		if o.Pitch > 0 {
			args = append(args, "-p", strconv.Itoa(min(99, int(50*o.Pitch))))
		}
	case "say":
		if o.Name != "" {
			args = append(args, "-v", o.Name)
		}
		if o.Rate > 0 {
			args = append(args, "-r", strconv.Itoa(int(175*o.Rate)))
		}
	case "spd-say":
		// Without -w spd-say returns before speech finishes.
		args = append(args, "-w")
		if o.Name != "" {
			args = append(args, "-l", o.Name)
		}
		if o.Rate > 0 {
			args = append(args, "-r", strconv.Itoa(max(-100, min(100, int((o.Rate-1)*100)))))
		}
		if o.Pitch > 0 {
			args = append(args, "-p", strconv.Itoa(max(-100, min(100, int((o.Pitch-1)*100)))))
		}
	}
	return append(args, text)
}

type commandError struct {
	program string
	output  string
	err     error
}

func (e *commandError) Error() string {
	if e.output != "" {
		return fmt.Sprintf("%s: %v: %s", e.program, e.err, e.output)
	}
	return fmt.Sprintf("%s: %v", e.program, e.err)
}

func (e *commandError) Unwrap() error { return e.err }

// Code reports the exit status, or "not-allowed" when the program could
// not be started.
func (e *commandError) Code() string {
	if ee, ok := e.err.(*exec.ExitError); ok {
		return fmt.Sprintf("exit-%d", ee.ExitCode())
	}
	return "not-allowed"
}

// LanguageVoice maps a target language code to an espeak voice name.
func LanguageVoice(language string) string {
	switch language {
	case "spanish":
		return "es"
	case "french":
		return "fr"
	case "german":
		return "de"
	case "italian":
		return "it"
	case "japanese":
		return "ja"
	case "chinese":
		return "cmn"
	case "hindi":
		return "hi"
	case "arabic":
		return "ar"
	default:
		return "en"
	}
}
