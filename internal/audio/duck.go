package audio

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

var percentRe = regexp.MustCompile(`(\d+)\s*%`)

type stream struct {
	id     int
	volume int
	app    string
}

// Ducker lowers every other playback stream while the assistant talks
// and restores them afterwards. Streams whose application.name is in
// self are left alone.
type Ducker struct {
	mu       sync.Mutex
	self     []string
	keep     float64     // fraction of current volume kept while ducked
	floor    int         // lowest percent a stream is pushed to
	original map[int]int // sink-input id -> volume before ducking
}

func NewDucker(self []string, keep float64, floor int) *Ducker {
	if keep < 0 {
		keep = 0
	}
	if keep > 1 {
		keep = 1
	}
	if floor < 0 {
		floor = 0
	}
	if floor > 150 {
		floor = 150
	}

	return &Ducker{
		self:  append([]string(nil), self...),
		keep:  keep,
		floor: floor,
	}
}

// Duck drops foreign streams to keep*current, no lower than floor.
// Ducking twice without a Restore in between is a no-op.
func (d *Ducker) Duck(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.original != nil {
		return nil
	}

	streams, err := listStreams(ctx)
	if err != nil {
		return err
	}

	d.original = make(map[int]int)

	for _, s := range streams {
		if d.isSelf(s.app) {
			continue
		}

		target := int(math.Round(float64(s.volume) * d.keep))
		if target < d.floor {
			target = d.floor
		}

		if err := setVolume(ctx, s.id, target); err != nil {
			return fmt.Errorf("set volume id=%d: %w", s.id, err)
		}
		d.original[s.id] = s.volume
	}

	return nil
}

// Restore puts every ducked stream back to its original volume. Streams
// that disappeared in the meantime are skipped.
func (d *Ducker) Restore(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.original == nil {
		return nil
	}

	var firstErr error
	for id, vol := range d.original {
		if err := setVolume(ctx, id, vol); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	d.original = nil
	return firstErr
}

func (d *Ducker) isSelf(app string) bool {
	for _, name := range d.self {
		if app == name {
			return true
		}
	}
	return false
}

func listStreams(ctx context.Context) ([]stream, error) {
	out, err := exec.CommandContext(ctx, "pactl", "list", "sink-inputs").Output()
	if err != nil {
		return nil, fmt.Errorf("pactl list sink-inputs: %w", err)
	}
	return parseSinkInputs(out), nil
}

func parseSinkInputs(out []byte) []stream {
	var (
		res []stream
		cur *stream
	)

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		switch {
		case strings.HasPrefix(line, "Sink Input #"):
			if cur != nil {
				res = append(res, *cur)
			}
			cur = nil
			if id, err := strconv.Atoi(strings.TrimPrefix(line, "Sink Input #")); err == nil {
				cur = &stream{id: id}
			}

		case cur == nil:

		case strings.HasPrefix(line, "Volume:") && cur.volume == 0:
			if m := percentRe.FindStringSubmatch(line); len(m) == 2 {
				cur.volume, _ = strconv.Atoi(m[1])
			}

		case strings.HasPrefix(line, "application.name =") && cur.app == "":
			// application.name = "Firefox"
			if _, rest, ok := strings.Cut(line, `"`); ok {
				if name, _, ok := strings.Cut(rest, `"`); ok {
					cur.app = name
				}
			}
		}
	}

	if cur != nil {
		res = append(res, *cur)
	}
	return res
}

func setVolume(ctx context.Context, id, percent int) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 150 {
		percent = 150
	}

	return exec.CommandContext(ctx, "pactl", "set-sink-input-volume",
		strconv.Itoa(id), fmt.Sprintf("%d%%", percent)).Run()
}
