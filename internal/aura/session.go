package aura

import (
	"context"
	"errors"
	"strings"
	"time"

	log "log/slog"

	"aura/internal/nlu"
)

const (
	greeting     = "Hello! I'm your voice assistant. How can I help you today?"
	interruptBye = "Goodbye!"
	handlerOops  = "I encountered an error. Please try again."
)

// State names the loop phases, mostly for observers and logs.
type State int

const (
	StateIdle State = iota
	StateListening
	StateClassifying
	StateDispatching
	StateSpeaking
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateClassifying:
		return "classifying"
	case StateDispatching:
		return "dispatching"
	case StateSpeaking:
		return "speaking"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Event kinds passed to an Observer.
const (
	EventState     = "state"
	EventUtterance = "utterance"
	EventReply     = "reply"
)

// Observer receives loop events: state transitions, recognized
// utterances, spoken replies. Called synchronously from the loop
// goroutine, so keep it cheap.
type Observer func(kind, payload string)

// Session runs the listen/classify/dispatch/speak loop until an exit
// command or context cancellation.
type Session struct {
	ears  AudioInput
	voice SpeechOutput
	cls   *nlu.Classifier
	disp  *Dispatcher
	obs   Observer

	// RetryPause spaces out listen retries after a failure.
	RetryPause time.Duration
}

func NewSession(in AudioInput, voice SpeechOutput, cls *nlu.Classifier, disp *Dispatcher) *Session {
	return &Session{
		ears:       in,
		voice:      voice,
		cls:        cls,
		disp:       disp,
		RetryPause: 500 * time.Millisecond,
	}
}

// Observe registers the event callback. Set it before Run.
func (s *Session) Observe(fn Observer) { s.obs = fn }

func (s *Session) Run(ctx context.Context) error {
	s.say(greeting)

	for {
		s.enter(StateListening)

		heard, err := s.ears.Listen(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return s.shutdown()
			}
			s.logListenErr(err)
			s.enter(StateIdle)
			select {
			case <-ctx.Done():
				return s.shutdown()
			case <-time.After(s.RetryPause):
			}
			continue
		}

		text := strings.ToLower(strings.TrimSpace(heard))
		if text == "" {
			continue
		}
		log.Info("Heard", "text", text)
		s.emit(EventUtterance, text)

		s.enter(StateClassifying)
		cmd := s.cls.Classify(text)
		log.Info("Command", "kind", cmd.Kind, "arg", cmd.Arg)

		s.enter(StateDispatching)
		res := s.dispatch(ctx, cmd)

		// An interrupt during dispatch skips the reply; the farewell is
		// the last thing said.
		if ctx.Err() != nil {
			return s.shutdown()
		}

		if res.Reply != "" {
			s.emit(EventReply, res.Reply)
			s.enter(StateSpeaking)
			s.say(res.Reply)
		}

		if res.Quit {
			s.enter(StateStopped)
			return nil
		}
		s.enter(StateIdle)

		if ctx.Err() != nil {
			return s.shutdown()
		}
	}
}

// dispatch shields the loop from a misbehaving handler: a panic becomes
// a spoken apology instead of a dead assistant.
func (s *Session) dispatch(ctx context.Context, cmd nlu.Command) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Command handler panicked", "panic", r)
			res = Result{Reply: handlerOops}
		}
	}()
	return s.disp.Dispatch(ctx, cmd)
}

func (s *Session) shutdown() error {
	s.say(interruptBye)
	s.enter(StateStopped)
	return nil
}

func (s *Session) logListenErr(err error) {
	switch {
	case errors.Is(err, ErrNoSpeech):
		log.Debug("No speech detected")
	case errors.Is(err, ErrUnintelligible):
		log.Info("Could not understand audio")
	case errors.Is(err, ErrSTTUnavailable):
		log.Error("Recognition unavailable", "err", err)
	default:
		log.Warn("Listen failed", "err", err)
	}
}

func (s *Session) enter(st State) { s.emit(EventState, st.String()) }

func (s *Session) emit(kind, payload string) {
	if s.obs != nil {
		s.obs(kind, payload)
	}
}

func (s *Session) say(text string) {
	if err := s.voice.Speak(text); err != nil {
		log.Error("Failed to voice out", "err", err)
	}
}
