package voice

import (
	"context"
	"strings"

	"aura/internal/aura"
)

// Queue lets utterances be injected in front of another input. Injected
// text is consumed before the wrapped source gets asked; with a nil
// source the queue is the only input.
type Queue struct {
	src aura.AudioInput
	ch  chan string
}

func NewQueue(src aura.AudioInput) *Queue {
	return &Queue{src: src, ch: make(chan string, 16)}
}

var _ aura.AudioInput = (*Queue)(nil)

// Push queues an utterance without blocking. A full queue drops it.
// Text is lower-cased and trimmed, same as recognized speech.
func (q *Queue) Push(text string) bool {
	select {
	case q.ch <- strings.ToLower(strings.TrimSpace(text)):
		return true
	default:
		return false
	}
}

func (q *Queue) Listen(ctx context.Context) (string, error) {
	select {
	case text := <-q.ch:
		return text, nil
	default:
	}

	if q.src == nil {
		select {
		case text := <-q.ch:
			return text, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return q.src.Listen(ctx)
}
