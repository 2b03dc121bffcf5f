package tts

/*
#cgo LDFLAGS: -lespeak-ng
#include <stdlib.h>
#include <string.h>
#include <espeak-ng/speak_lib.h>

static int
aura_espeak_init(const char *voice, int rate)
{
	if (espeak_Initialize(AUDIO_OUTPUT_SYNCH_PLAYBACK, 500, NULL, 0) < 0)
	{ return -1; }

	espeak_VOICE specs = { .languages = voice };
	if (espeak_SetVoiceByProperties(&specs) != EE_OK)
	{ return -2; }

	if (rate > 0 && espeak_SetParameter(espeakRATE, rate, 0) != EE_OK)
	{ return -3; }

	return 0;
}

static int
aura_espeak_say(const char *text)
{
	if (!text)
	{ return -1; }

	if (espeak_Synth(text, strlen(text) + 1, 0, 0, 0, espeakCHARS_AUTO, NULL, NULL) != EE_OK)
	{ return -2; }

	espeak_Synchronize();
	return 0;
}

static void
aura_espeak_close(void)
{
	espeak_Terminate();
}
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"
)

// Config selects the voice and speaking rate.
type Config struct {
	Voice string // espeak voice code, e.g. "en"
	Rate  int    // words per minute
}

// Engine speaks through espeak-ng. The library is a process-wide
// singleton, so keep one Engine. Speak blocks until playback finishes.
type Engine struct {
	mu    sync.Mutex
	voice *C.char
}

func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Voice == "" {
		cfg.Voice = "en"
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 150
	}

	cvoice := C.CString(cfg.Voice)
	if rc := C.aura_espeak_init(cvoice, C.int(cfg.Rate)); rc != 0 {
		C.free(unsafe.Pointer(cvoice))
		return nil, fmt.Errorf("espeak init failed: %d", int(rc))
	}

	return &Engine{voice: cvoice}, nil
}

func (e *Engine) Speak(text string) error {
	if text == "" {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))

	if rc := C.aura_espeak_say(ctext); rc != 0 {
		return fmt.Errorf("espeak synth failed: %d", int(rc))
	}
	return nil
}

func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.voice != nil {
		C.free(unsafe.Pointer(e.voice))
		e.voice = nil
	}
	C.aura_espeak_close()
	return nil
}
