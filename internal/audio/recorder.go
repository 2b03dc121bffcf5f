package audio

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
)

// ErrNoSpeech means the start window elapsed without the level gate
// opening.
var ErrNoSpeech = errors.New("no speech detected")

// SampleRate is the fixed capture rate in Hz.
const SampleRate = 16000

const (
	frameSize        = 320 // 20ms
	frameDur         = 20 * time.Millisecond
	silenceThreshRMS = 0.015 // tune if needed
	silenceHold      = 600 * time.Millisecond
)

// Recorder captures microphone audio through the default input device.
// Call Init once before recording and Close on the way out.
type Recorder struct{}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// Record captures one utterance: it waits up to start for speech to
// begin, then records until the speaker pauses or maxPhrase of voiced
// audio is in. Samples are mono float32 at SampleRate.
func (r *Recorder) Record(ctx context.Context, start, maxPhrase time.Duration) ([]float32, error) {
	if start <= 0 {
		start = 5 * time.Second
	}
	if maxPhrase <= 0 {
		maxPhrase = 10 * time.Second
	}

	buf := make([]float32, frameSize)
	out := make([]float32, 0, SampleRate*3)

	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, len(buf), buf)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, err
	}
	defer stream.Stop()

	var (
		speaking       bool
		silenceFrames  int
		startDeadline  = time.Now().Add(start)
		phraseDeadline time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		now := time.Now()
		if !speaking && now.After(startDeadline) {
			return nil, ErrNoSpeech
		}
		if speaking && now.After(phraseDeadline) {
			break
		}

		if err := stream.Read(); err != nil {
			return nil, err
		}

		if frameRMS(buf) > silenceThreshRMS {
			if !speaking {
				speaking = true
				phraseDeadline = now.Add(maxPhrase)
			}
			silenceFrames = 0
			out = append(out, buf...)
			continue
		}

		if speaking {
			silenceFrames++
			if time.Duration(silenceFrames)*frameDur >= silenceHold {
				break
			}
			out = append(out, buf...)
		}
	}

	return out, nil
}

func frameRMS(f []float32) float64 {
	var s float64
	for _, x := range f {
		s += float64(x * x)
	}
	return math.Sqrt(s / float64(len(f)))
}
