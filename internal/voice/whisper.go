package voice

import (
	"context"

	"aura/pkg/stt"
)

// Whisper recognizes speech with a local whisper.cpp model.
type Whisper struct {
	t   *stt.Transcriber
	opt stt.Options
}

func NewWhisper(modelPath, language string) (*Whisper, error) {
	t, err := stt.NewTranscriber(modelPath)
	if err != nil {
		return nil, err
	}
	return &Whisper{
		t: t,
		opt: stt.Options{
			Language: language,
			BeamSize: 5,
		},
	}, nil
}

var _ Transcriber = (*Whisper)(nil)

func (w *Whisper) Transcribe(ctx context.Context, pcm []float32) (string, error) {
	res, err := w.t.Transcribe(ctx, pcm, w.opt)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func (w *Whisper) Close() error { return w.t.Close() }
