package system

import (
	"fmt"
	"os/exec"

	log "log/slog"

	"aura/internal/aura"
)

// Launcher starts desktop programs detached from the assistant.
type Launcher struct{}

func NewLauncher() *Launcher { return &Launcher{} }

var _ aura.Launcher = (*Launcher)(nil)

// Launch resolves the identifier on PATH and starts it without waiting
// for it to finish. Identifiers that are not executables are handed to
// the desktop opener instead.
func (l *Launcher) Launch(id string) error {
	if id == "" {
		return aura.ErrAppNotFound
	}

	bin, err := exec.LookPath(id)
	if err != nil {
		return l.openWithShell(id)
	}

	cmd := exec.Command(bin)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", id, err)
	}

	// Reap in the background so finished programs don't linger as zombies.
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Debug("Launched program exited", "app", id, "err", err)
		}
	}()

	return nil
}

func (l *Launcher) openWithShell(id string) error {
	opener, err := exec.LookPath("xdg-open")
	if err != nil {
		return aura.ErrAppNotFound
	}

	cmd := exec.Command(opener, id)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", aura.ErrAppNotFound, err)
	}

	go func() { _ = cmd.Wait() }()

	return nil
}
