package aura

import (
	"context"
	"errors"
	"fmt"
)

// Listen failures. The session loop logs these and keeps going.
var (
	ErrNoSpeech       = errors.New("no speech detected")
	ErrUnintelligible = errors.New("speech not recognized")
	ErrSTTUnavailable = errors.New("speech service unavailable")
)

// ErrAppNotFound is what a launcher reports for an unknown identifier.
var ErrAppNotFound = errors.New("application not found")

// Model failures the dispatcher turns into spoken sentences.
var (
	ErrLLMUnreachable = errors.New("model server unreachable")
	ErrLLMTimeout     = errors.New("model request timed out")
)

// LLMStatusError reports a non-200 answer from the model server.
type LLMStatusError struct {
	Code int
}

func (e *LLMStatusError) Error() string {
	return fmt.Sprintf("model server returned status %d", e.Code)
}

// AudioInput delivers one lower-cased utterance per call. Timeouts and
// phrase limits belong to the implementation.
type AudioInput interface {
	Listen(ctx context.Context) (string, error)
}

// SpeechOutput voices a sentence and blocks until it has been said.
// Callers log failures and never let them stop the session.
type SpeechOutput interface {
	Speak(text string) error
}

// Launcher starts a program by its opaque identifier.
type Launcher interface {
	Launch(id string) error
}

// Terminator stops every process matching the identifier and reports how
// many it reached.
type Terminator interface {
	TerminateAll(proc string) (int, error)
}

// Filesystem is the slice of the OS the dispatcher touches.
type Filesystem interface {
	Exists(path string) bool
	IsDir(path string) bool
	OpenInShell(path string) error
	Remove(path string) error
	Home() string
}

// LLM generates a completion for a composite prompt.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
