package notify

import (
	"sync"
	"time"

	log "log/slog"

	"github.com/faiface/beep"
	"github.com/faiface/beep/generators"
	"github.com/faiface/beep/speaker"
)

const (
	chimeRate   = beep.SampleRate(44100)
	chimeFreq   = 880
	chimeLength = 120 * time.Millisecond
)

var (
	initOnce sync.Once
	initErr  error
)

// Chime plays a short tone to mark that the assistant is listening.
// Failures only get logged; a missing audio device must not stop the
// session.
func Chime() {
	initOnce.Do(func() {
		initErr = speaker.Init(chimeRate, chimeRate.N(time.Second/10))
	})
	if initErr != nil {
		log.Debug("Chime disabled", "err", initErr)
		return
	}

	tone, err := generators.SinTone(chimeRate, chimeFreq)
	if err != nil {
		log.Debug("Chime tone failed", "err", err)
		return
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(beep.Take(chimeRate.N(chimeLength), tone), beep.Callback(func() {
		close(done)
	})))
	<-done
}
