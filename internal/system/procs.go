package system

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	log "log/slog"

	"aura/internal/aura"
)

// Terminator stops running programs by process name.
type Terminator struct{}

func NewTerminator() *Terminator { return &Terminator{} }

var _ aura.Terminator = (*Terminator)(nil)

// TerminateAll sends SIGTERM to every process whose name matches exactly
// and reports how many it reached. No matching process is zero with a
// nil error.
func (t *Terminator) TerminateAll(proc string) (int, error) {
	proc = strings.TrimSpace(proc)
	if proc == "" {
		return 0, nil
	}

	out, err := exec.Command("pgrep", "-x", proc).Output()
	if err != nil {
		// pgrep exits 1 when nothing matched.
		var exit *exec.ExitError
		if errors.As(err, &exit) && exit.ExitCode() == 1 {
			return 0, nil
		}
		return 0, fmt.Errorf("pgrep %s: %w", proc, err)
	}

	count := 0
	for _, field := range strings.Fields(string(out)) {
		pid, err := strconv.Atoi(field)
		if err != nil {
			continue
		}

		p, err := os.FindProcess(pid)
		if err != nil {
			continue
		}
		if err := p.Signal(syscall.SIGTERM); err != nil {
			log.Debug("Signal failed", "pid", pid, "err", err)
			continue
		}
		count++
	}

	return count, nil
}
