package voice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aura/internal/audio"
	"aura/internal/aura"
)

// MicConfig bounds one listen: how long to wait for speech to start and
// how long a phrase may run.
type MicConfig struct {
	StartTimeout time.Duration
	MaxPhrase    time.Duration
}

// Mic is the microphone input: record one utterance, then recognize it.
type Mic struct {
	rec PCMSource
	tr  Transcriber
	cfg MicConfig
}

func NewMic(rec PCMSource, tr Transcriber, cfg MicConfig) *Mic {
	if cfg.StartTimeout <= 0 {
		cfg.StartTimeout = 5 * time.Second
	}
	if cfg.MaxPhrase <= 0 {
		cfg.MaxPhrase = 10 * time.Second
	}
	return &Mic{rec: rec, tr: tr, cfg: cfg}
}

var _ aura.AudioInput = (*Mic)(nil)

func (m *Mic) Listen(ctx context.Context) (string, error) {
	pcm, err := m.rec.Record(ctx, m.cfg.StartTimeout, m.cfg.MaxPhrase)
	if err != nil {
		if errors.Is(err, audio.ErrNoSpeech) {
			return "", aura.ErrNoSpeech
		}
		return "", err
	}
	if len(pcm) == 0 {
		return "", aura.ErrNoSpeech
	}

	text, err := m.tr.Transcribe(ctx, pcm)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", aura.ErrSTTUnavailable, err)
	}

	// Recognizers capitalize and punctuate; the rest of the pipeline
	// works on lower-cased text.
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return "", aura.ErrUnintelligible
	}
	return text, nil
}
