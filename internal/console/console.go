package console

import (
	"bufio"
	"io"
	"strings"

	"github.com/fatih/color"

	"aura/internal/aura"
)

// Printer "speaks" by printing to the terminal. It stands in for the
// voice engine when running in text mode.
type Printer struct {
	w io.Writer
	c *color.Color
}

func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = color.Output
	}
	return &Printer{
		w: w,
		c: color.New(color.FgCyan, color.Bold),
	}
}

var _ aura.SpeechOutput = (*Printer)(nil)

func (p *Printer) Speak(text string) error {
	_, err := p.c.Fprintf(p.w, "aura: %s\n", text)
	return err
}

// ReadLines feeds non-empty lines from r into push until EOF, then
// pushes "exit" so the session winds down like a spoken goodbye.
func ReadLines(r io.Reader, push func(string) bool) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		push(line)
	}
	push("exit")
}
