package voice

import (
	"context"
	"strings"

	"aura/internal/aura"
	"aura/pkg/audioconv"
)

// maxFileSamples caps injected recordings at one minute.
const maxFileSamples = 60 * audioconv.TargetRate

// TranscribeFile decodes an audio file and recognizes its speech.
func TranscribeFile(ctx context.Context, tr Transcriber, path string) (string, error) {
	pcm, err := audioconv.FileToPCM16k(ctx, path, audioconv.Options{MaxSamples: maxFileSamples})
	if err != nil {
		return "", err
	}
	if len(pcm) == 0 {
		return "", aura.ErrNoSpeech
	}

	text, err := tr.Transcribe(ctx, pcm)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", aura.ErrUnintelligible
	}
	return text, nil
}
