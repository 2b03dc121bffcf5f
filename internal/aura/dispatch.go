package aura

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"strings"
	"time"

	log "log/slog"

	"aura/internal/nlu"
)

const (
	farewell       = "Goodbye! Have a great day."
	thinkingNotice = "Let me think about that..."
	emptyReply     = "I apologize, but I could not generate a response."
)

// DefaultLLMTimeout caps one model round trip.
const DefaultLLMTimeout = 30 * time.Second

// Result is what a dispatched command hands back to the session loop.
type Result struct {
	Reply string
	Quit  bool
}

// Deps wires a Dispatcher. History and LLMTimeout get defaults when left
// zero; everything else is required.
type Deps struct {
	Resolver   *nlu.Resolver
	Launcher   Launcher
	Terminator Terminator
	Files      Filesystem
	LLM        LLM
	Input      AudioInput
	Voice      SpeechOutput
	History    *History
	Endpoint   string
	LLMTimeout time.Duration
}

// Dispatcher executes parsed commands through the collaborators. Every
// handler returns a speakable status sentence; none of them panic or
// propagate errors.
type Dispatcher struct {
	res        *nlu.Resolver
	apps       Launcher
	procs      Terminator
	files      Filesystem
	llm        LLM
	ears       AudioInput
	voice      SpeechOutput
	history    *History
	endpoint   string
	llmTimeout time.Duration
}

func NewDispatcher(d Deps) *Dispatcher {
	if d.History == nil {
		d.History = NewHistory(DefaultContextTurns)
	}
	if d.LLMTimeout <= 0 {
		d.LLMTimeout = DefaultLLMTimeout
	}
	if d.Endpoint == "" {
		d.Endpoint = "http://localhost:11434"
	}
	return &Dispatcher{
		res:        d.Resolver,
		apps:       d.Launcher,
		procs:      d.Terminator,
		files:      d.Files,
		llm:        d.LLM,
		ears:       d.Input,
		voice:      d.Voice,
		history:    d.History,
		endpoint:   d.Endpoint,
		llmTimeout: d.LLMTimeout,
	}
}

// History exposes the conversation context owned by the dispatcher.
func (d *Dispatcher) History() *History { return d.history }

func (d *Dispatcher) Dispatch(ctx context.Context, cmd nlu.Command) Result {
	switch cmd.Kind {
	case nlu.KindExit:
		return Result{Reply: farewell, Quit: true}
	case nlu.KindOpenApp:
		return Result{Reply: d.openApp(cmd.Arg)}
	case nlu.KindCloseApp:
		return Result{Reply: d.closeApp(cmd.Arg)}
	case nlu.KindOpenFolder:
		return Result{Reply: d.openFolder(cmd.Arg)}
	case nlu.KindDeleteFile:
		return Result{Reply: d.deleteFile(ctx, cmd.Arg)}
	default:
		return Result{Reply: d.general(ctx, cmd.Arg)}
	}
}

func (d *Dispatcher) openApp(target string) string {
	id := d.res.LaunchID(target)

	if err := d.apps.Launch(id); err != nil {
		log.Warn("Launch failed", "app", target, "id", id, "err", err)
		return fmt.Sprintf("Sorry, I couldn't find or open '%s'. Please make sure it's installed.", target)
	}

	// A few identifiers have nicer display names than the raw target.
	switch id {
	case "ms-settings:":
		return "Opened Settings."
	case "explorer":
		return "Opened File Explorer."
	case "control":
		return "Opened Control Panel."
	case "taskmgr":
		return "Opened Task Manager."
	case "cmd", "powershell":
		return fmt.Sprintf("Opened %s.", id)
	}
	return fmt.Sprintf("Opened %s.", target)
}

func (d *Dispatcher) closeApp(target string) string {
	proc := d.res.ProcessID(target)

	count, err := d.procs.TerminateAll(proc)
	if err != nil {
		log.Warn("Terminate failed", "app", target, "proc", proc, "err", err)
		return fmt.Sprintf("Could not close %s. It may not be running or I don't have permission.", target)
	}
	if count == 0 {
		return fmt.Sprintf("%s is not currently running.", target)
	}

	log.Info("Closed processes", "proc", proc, "count", count)
	return fmt.Sprintf("Closed %s.", target)
}

func (d *Dispatcher) openFolder(name string) string {
	path := d.res.FolderPath(name)

	if !d.files.Exists(path) || !d.files.IsDir(path) {
		return fmt.Sprintf("Sorry, I couldn't find the folder '%s'.", name)
	}

	if err := d.files.OpenInShell(path); err != nil {
		log.Warn("Open folder failed", "path", path, "err", err)
		return fmt.Sprintf("Error opening folder: %v", err)
	}
	return fmt.Sprintf("Opened %s folder.", name)
}

func (d *Dispatcher) deleteFile(ctx context.Context, path string) string {
	resolved := d.resolveDeletePath(path)

	if !d.files.Exists(resolved) {
		return fmt.Sprintf("Sorry, I couldn't find the file '%s'.", path)
	}
	if d.files.IsDir(resolved) {
		return fmt.Sprintf("'%s' is a folder, not a file. I can only delete files.", path)
	}

	base := filepath.Base(resolved)
	d.say(fmt.Sprintf("Are you sure you want to delete %s? Say yes to confirm.", base))

	// The answer is lowered again here; the match must not depend on
	// the input's casing.
	answer, err := d.ears.Listen(ctx)
	if err != nil || !strings.Contains(strings.ToLower(answer), "yes") {
		return "Deletion cancelled."
	}

	if err := d.files.Remove(resolved); err != nil {
		if errors.Is(err, iofs.ErrPermission) {
			return fmt.Sprintf("Permission denied. I cannot delete '%s'.", path)
		}
		log.Warn("Remove failed", "path", resolved, "err", err)
		return fmt.Sprintf("Error deleting file: %v", err)
	}

	log.Info("Deleted file", "path", resolved)
	return fmt.Sprintf("Deleted %s successfully.", base)
}

// resolveDeletePath mirrors how spoken paths are tried: absolute as given,
// then relative to the working directory when that exists, then under
// home.
func (d *Dispatcher) resolveDeletePath(path string) string {
	path = strings.TrimSpace(path)

	if filepath.IsAbs(path) {
		return path
	}
	if path != "" && d.files.Exists(path) {
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	return filepath.Join(d.files.Home(), path)
}

func (d *Dispatcher) general(ctx context.Context, text string) string {
	d.say(thinkingNotice)

	prompt := d.history.Prompt(text)

	cctx, cancel := context.WithTimeout(ctx, d.llmTimeout)
	defer cancel()

	reply, err := d.llm.Generate(cctx, prompt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return ""
		}
		log.Warn("Model query failed", "err", err)

		var status *LLMStatusError
		switch {
		case errors.Is(err, ErrLLMUnreachable):
			return fmt.Sprintf("I cannot connect to Ollama. Please ensure Ollama is running and accessible at %s", d.endpoint)
		case errors.Is(err, ErrLLMTimeout):
			return "The request to Ollama timed out. Please try again."
		case errors.As(err, &status):
			return fmt.Sprintf("Error: Ollama API returned status code %d", status.Code)
		default:
			return fmt.Sprintf("An error occurred while querying Ollama: %v", err)
		}
	}

	if reply == "" {
		reply = emptyReply
	}
	d.history.Add(text, reply)
	return reply
}

func (d *Dispatcher) say(text string) {
	if err := d.voice.Speak(text); err != nil {
		log.Error("Failed to voice out", "err", err)
	}
}
