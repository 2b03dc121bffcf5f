package aura

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(10)

	for i := 0; i < 11; i++ {
		h.Add(fmt.Sprintf("question %d", i), fmt.Sprintf("answer %d", i))
	}

	require.Equal(t, 10, h.Len())
	turns := h.Turns()
	assert.Equal(t, "question 1", turns[0].User)
	assert.Equal(t, "question 10", turns[9].User)
}

func TestHistoryZeroBound(t *testing.T) {
	h := NewHistory(0)
	h.Add("hello", "hi")
	assert.Zero(t, h.Len())

	h = NewHistory(-3)
	h.Add("hello", "hi")
	assert.Zero(t, h.Len())
}

func TestHistoryPrompt(t *testing.T) {
	t.Run("no context", func(t *testing.T) {
		h := NewHistory(10)
		assert.Equal(t, "what time is it", h.Prompt("what time is it"))
	})

	t.Run("with context", func(t *testing.T) {
		h := NewHistory(10)
		h.Add("hello", "Hi there!")
		h.Add("who are you", "Your assistant.")

		want := "User: hello\nAssistant: Hi there!\n" +
			"User: who are you\nAssistant: Your assistant.\n" +
			"User: and now\nAssistant:"
		assert.Equal(t, want, h.Prompt("and now"))
	})
}

func TestHistoryTurnsIsACopy(t *testing.T) {
	h := NewHistory(10)
	h.Add("hello", "hi")

	turns := h.Turns()
	turns[0].User = "mutated"

	assert.Equal(t, "hello", h.Turns()[0].User)
}
