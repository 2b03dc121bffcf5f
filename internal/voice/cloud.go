package voice

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"aura/pkg/audioconv"
)

// Cloud recognizes speech through the OpenAI transcription API. The
// request wants a named file, so samples take a detour over a temp wav.
type Cloud struct {
	client openai.Client
	model  openai.AudioModel
}

// NewCloud builds the recognizer. A non-nil hc routes requests through
// it, e.g. over a socks proxy.
func NewCloud(apiKey string, hc *http.Client) *Cloud {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if hc != nil {
		opts = append(opts, option.WithHTTPClient(hc))
	}
	return &Cloud{
		client: openai.NewClient(opts...),
		model:  openai.AudioModelWhisper1,
	}
}

var _ Transcriber = (*Cloud)(nil)

func (c *Cloud) Transcribe(ctx context.Context, pcm []float32) (string, error) {
	tmp, err := os.CreateTemp("", "aura-*.wav")
	if err != nil {
		return "", err
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := audioconv.WriteWAV16k(path, pcm); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	resp, err := c.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: c.model,
		File:  f,
	})
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	return resp.Text, nil
}
