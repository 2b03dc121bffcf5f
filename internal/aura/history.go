package aura

import (
	"fmt"
	"strings"
)

// DefaultContextTurns is how many exchanges feed back into the prompt.
const DefaultContextTurns = 10

// Turn is one completed user/assistant exchange.
type Turn struct {
	User      string
	Assistant string
}

// History keeps the most recent exchanges for prompt context. Oldest turns
// are evicted first and nothing survives a restart.
type History struct {
	max   int
	turns []Turn
}

func NewHistory(max int) *History {
	if max < 0 {
		max = 0
	}
	return &History{max: max}
}

// Add records a completed exchange, evicting the oldest past the bound.
func (h *History) Add(user, assistant string) {
	if h.max == 0 {
		return
	}
	h.turns = append(h.turns, Turn{User: user, Assistant: assistant})
	if len(h.turns) > h.max {
		h.turns = h.turns[len(h.turns)-h.max:]
	}
}

func (h *History) Len() int { return len(h.turns) }

// Turns returns a copy of the recorded exchanges, oldest first.
func (h *History) Turns() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Prompt builds the composite prompt for the next utterance: prior turns
// as alternating User:/Assistant: lines, the new text, then a bare
// Assistant: cue for the model to complete. With no history the text goes
// out untouched.
func (h *History) Prompt(text string) string {
	if len(h.turns) == 0 {
		return text
	}

	var b strings.Builder
	for _, t := range h.turns {
		fmt.Fprintf(&b, "User: %s\nAssistant: %s\n", t.User, t.Assistant)
	}
	fmt.Fprintf(&b, "User: %s\nAssistant:", text)
	return b.String()
}
