package voice

import (
	"context"
	"time"
)

// Transcriber turns mono 16 kHz PCM into text.
type Transcriber interface {
	Transcribe(ctx context.Context, pcm []float32) (string, error)
}

// PCMSource captures one utterance worth of samples.
type PCMSource interface {
	Record(ctx context.Context, start, maxPhrase time.Duration) ([]float32, error)
}
