package voice

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aura/internal/audio"
	"aura/internal/aura"
	"aura/pkg/audioconv"
)

type fakeSource struct {
	pcm []float32
	err error
}

func (f *fakeSource) Record(ctx context.Context, start, maxPhrase time.Duration) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pcm, nil
}

type fakeTranscriber struct {
	text string
	err  error
	got  []float32
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, pcm []float32) (string, error) {
	f.got = pcm
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeInput struct {
	text  string
	calls int
}

func (f *fakeInput) Listen(ctx context.Context) (string, error) {
	f.calls++
	return f.text, nil
}

func TestQueueOrder(t *testing.T) {
	q := NewQueue(nil)

	require.True(t, q.Push("first"))
	require.True(t, q.Push("second"))

	text, err := q.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", text)

	text, err = q.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", text)
}

func TestQueuePushNormalizes(t *testing.T) {
	q := NewQueue(nil)

	require.True(t, q.Push("  Yes.  "))

	text, err := q.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "yes.", text)
}

func TestQueueWaitsForPush(t *testing.T) {
	q := NewQueue(nil)

	go func() {
		time.Sleep(10 * time.Millisecond)
		q.Push("late")
	}()

	text, err := q.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "late", text)
}

func TestQueueCancel(t *testing.T) {
	q := NewQueue(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := q.Listen(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQueueFallsThroughToSource(t *testing.T) {
	src := &fakeInput{text: "mic words"}
	q := NewQueue(src)

	text, err := q.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mic words", text)
	assert.Equal(t, 1, src.calls)

	q.Push("typed words")
	text, err = q.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "typed words", text)
	assert.Equal(t, 1, src.calls, "queued text wins over the source")
}

func TestQueueDropsWhenFull(t *testing.T) {
	q := NewQueue(nil)

	for i := 0; i < 16; i++ {
		require.True(t, q.Push("x"))
	}
	assert.False(t, q.Push("overflow"))
}

func TestMicListen(t *testing.T) {
	t.Run("recognizes and normalizes", func(t *testing.T) {
		src := &fakeSource{pcm: []float32{0.1, 0.2, 0.3}}
		tr := &fakeTranscriber{text: "  Open Chrome \n"}
		m := NewMic(src, tr, MicConfig{})

		text, err := m.Listen(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "open chrome", text)
		assert.Equal(t, src.pcm, tr.got)
	})

	t.Run("lower-cases the transcript", func(t *testing.T) {
		m := NewMic(&fakeSource{pcm: []float32{0.1}}, &fakeTranscriber{text: "Yes."}, MicConfig{})

		text, err := m.Listen(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "yes.", text)
	})

	t.Run("no speech", func(t *testing.T) {
		m := NewMic(&fakeSource{err: audio.ErrNoSpeech}, &fakeTranscriber{}, MicConfig{})

		_, err := m.Listen(context.Background())
		assert.ErrorIs(t, err, aura.ErrNoSpeech)
	})

	t.Run("empty capture", func(t *testing.T) {
		tr := &fakeTranscriber{text: "should not run"}
		m := NewMic(&fakeSource{}, tr, MicConfig{})

		_, err := m.Listen(context.Background())
		assert.ErrorIs(t, err, aura.ErrNoSpeech)
		assert.Nil(t, tr.got)
	})

	t.Run("silence comes back unintelligible", func(t *testing.T) {
		m := NewMic(&fakeSource{pcm: []float32{0.1}}, &fakeTranscriber{text: "   "}, MicConfig{})

		_, err := m.Listen(context.Background())
		assert.ErrorIs(t, err, aura.ErrUnintelligible)
	})

	t.Run("recognizer failure", func(t *testing.T) {
		tr := &fakeTranscriber{err: errors.New("model exploded")}
		m := NewMic(&fakeSource{pcm: []float32{0.1}}, tr, MicConfig{})

		_, err := m.Listen(context.Background())
		assert.ErrorIs(t, err, aura.ErrSTTUnavailable)
	})

	t.Run("cancellation passes through", func(t *testing.T) {
		tr := &fakeTranscriber{err: context.Canceled}
		m := NewMic(&fakeSource{pcm: []float32{0.1}}, tr, MicConfig{})

		_, err := m.Listen(context.Background())
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, aura.ErrSTTUnavailable)
	})

	t.Run("config defaults", func(t *testing.T) {
		m := NewMic(&fakeSource{}, &fakeTranscriber{}, MicConfig{})
		assert.Equal(t, 5*time.Second, m.cfg.StartTimeout)
		assert.Equal(t, 10*time.Second, m.cfg.MaxPhrase)
	})
}

func TestTranscribeFile(t *testing.T) {
	pcm := make([]float32, audioconv.TargetRate/5)
	for i := range pcm {
		pcm[i] = 0.2
	}
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, audioconv.WriteWAV16k(path, pcm))

	t.Run("recognizes", func(t *testing.T) {
		tr := &fakeTranscriber{text: "hello there"}

		text, err := TranscribeFile(context.Background(), tr, path)

		require.NoError(t, err)
		assert.Equal(t, "hello there", text)
		assert.Len(t, tr.got, len(pcm))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := TranscribeFile(context.Background(), &fakeTranscriber{}, "/no/such/clip.wav")
		assert.Error(t, err)
	})

	t.Run("nothing recognized", func(t *testing.T) {
		_, err := TranscribeFile(context.Background(), &fakeTranscriber{text: ""}, path)
		assert.ErrorIs(t, err, aura.ErrUnintelligible)
	})
}
