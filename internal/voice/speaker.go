package voice

import (
	"context"
	"time"

	log "log/slog"

	"aura/internal/audio"
	"aura/internal/aura"
)

// Ducked wraps a speech output so other playback drops while the
// assistant talks. Ducking failures are logged and the sentence is
// spoken anyway.
type Ducked struct {
	Out    aura.SpeechOutput
	Ducker *audio.Ducker
}

var _ aura.SpeechOutput = (*Ducked)(nil)

func (d *Ducked) Speak(text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.Ducker.Duck(ctx); err != nil {
		log.Debug("Duck failed", "err", err)
	}
	defer func() {
		rctx, rcancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer rcancel()
		if err := d.Ducker.Restore(rctx); err != nil {
			log.Debug("Restore failed", "err", err)
		}
	}()

	return d.Out.Speak(text)
}
