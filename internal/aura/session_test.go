package aura

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aura/internal/nlu"
)

func newSessionFixture(script []listenStep) (*fixture, *Session) {
	f := newFixture()
	f.ears.script = script

	cls := nlu.NewClassifier(nlu.NewResolver(f.fs.home))
	s := NewSession(f.ears, f.voice, cls, f.disp)
	s.RetryPause = time.Millisecond
	return f, s
}

func TestSessionGreetsAndExits(t *testing.T) {
	f, s := newSessionFixture([]listenStep{
		{text: "open notepad"},
		{text: "exit"},
	})

	err := s.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"notepad"}, f.launcher.launched)
	assert.Equal(t, []string{
		"Hello! I'm your voice assistant. How can I help you today?",
		"Opened notepad.",
		"Goodbye! Have a great day.",
	}, f.voice.spoken)
}

func TestSessionEventOrder(t *testing.T) {
	_, s := newSessionFixture([]listenStep{{text: "exit"}})

	type event struct{ kind, payload string }
	var events []event
	s.Observe(func(kind, payload string) {
		events = append(events, event{kind, payload})
	})

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, []event{
		{EventState, "listening"},
		{EventUtterance, "exit"},
		{EventState, "classifying"},
		{EventState, "dispatching"},
		{EventReply, "Goodbye! Have a great day."},
		{EventState, "speaking"},
		{EventState, "stopped"},
	}, events)
}

func TestSessionInterrupt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	f, s := newSessionFixture(nil)
	f.ears.onEmpty = cancel

	err := s.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Hello! I'm your voice assistant. How can I help you today?",
		"Goodbye!",
	}, f.voice.spoken)
}

func TestSessionInterruptDuringConfirmation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	f, s := newSessionFixture([]listenStep{{text: "delete file test.txt"}})
	f.ears.onEmpty = cancel
	f.fs.files["/home/tester/test.txt"] = true

	require.NoError(t, s.Run(ctx))

	// No "Deletion cancelled." on the way out, and nothing removed.
	assert.Empty(t, f.fs.removed)
	assert.Equal(t, []string{
		"Hello! I'm your voice assistant. How can I help you today?",
		"Are you sure you want to delete test.txt? Say yes to confirm.",
		"Goodbye!",
	}, f.voice.spoken)
}

func TestSessionRetriesFailedListens(t *testing.T) {
	f, s := newSessionFixture([]listenStep{
		{err: ErrUnintelligible},
		{err: ErrNoSpeech},
		{text: "exit"},
	})

	var states []string
	s.Observe(func(kind, payload string) {
		if kind == EventState {
			states = append(states, payload)
		}
	})

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, 3, f.ears.calls)
	assert.Equal(t, []string{
		"Hello! I'm your voice assistant. How can I help you today?",
		"Goodbye! Have a great day.",
	}, f.voice.spoken)

	// Each failed listen drops back to idle before the next attempt.
	assert.Equal(t, []string{
		"listening", "idle",
		"listening", "idle",
		"listening", "classifying", "dispatching", "speaking", "stopped",
	}, states)
}

func TestSessionSkipsBlankUtterances(t *testing.T) {
	_, s := newSessionFixture([]listenStep{
		{text: "   "},
		{text: "exit"},
	})

	var utterances []string
	s.Observe(func(kind, payload string) {
		if kind == EventUtterance {
			utterances = append(utterances, payload)
		}
	})

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, []string{"exit"}, utterances)
}

func TestSessionNormalizesInput(t *testing.T) {
	f, s := newSessionFixture([]listenStep{{text: "  Open NOTEPAD  "}, {text: "exit"}})

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, []string{"notepad"}, f.launcher.launched)
}

type boomLLM struct{}

func (boomLLM) Generate(context.Context, string) (string, error) { panic("kaboom") }

func TestSessionSurvivesHandlerPanic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	f, s := newSessionFixture([]listenStep{{text: "tell me a story"}})
	f.ears.onEmpty = cancel
	f.disp.llm = boomLLM{}

	require.NoError(t, s.Run(ctx))

	assert.Equal(t, []string{
		"Hello! I'm your voice assistant. How can I help you today?",
		"Let me think about that...",
		"I encountered an error. Please try again.",
		"Goodbye!",
	}, f.voice.spoken)
}
