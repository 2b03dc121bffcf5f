package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	"aura/internal/audio"
	"aura/internal/aura"
	"aura/internal/bus"
	"aura/internal/console"
	"aura/internal/ipc"
	"aura/internal/nlu"
	"aura/internal/notify"
	"aura/internal/ollama"
	"aura/internal/proxy"
	"aura/internal/system"
	"aura/internal/tts"
	"aura/internal/voice"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	textMode := cli.BoolP("text", "t", false, "Type commands instead of speaking")
	socket := cli.StringP("socket", "s", ipc.DefaultSocket, "Control socket path")
	proxyAddr := cli.StringP("proxy", "p", "", "Socks proxy address for model traffic")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	log.Info("Booting up")

	godotenv.Load(*envFile)

	home, err := os.UserHomeDir()
	if err != nil {
		log.Error("Failed to resolve home directory", "err", err)
		os.Exit(1)
	}

	var httpClient *http.Client
	if *proxyAddr != "" {
		httpClient, err = proxy.Client(*proxyAddr, 0)
		if err != nil {
			log.Error("Failed to dial socks proxy", "proxy", *proxyAddr, "err", err)
			os.Exit(1)
		}
		log.Debug("Loaded proxy")
	}

	ollamaURL := envOr("OLLAMA_URL", ollama.DefaultURL)
	llm := ollama.New(ollamaURL, envOr("OLLAMA_MODEL", ollama.DefaultModel), httpClient)

	res := nlu.NewResolver(home)
	cls := nlu.NewClassifier(res)

	var speaker aura.SpeechOutput
	if *textMode {
		speaker = console.NewPrinter(nil)
	} else {
		engine, err := tts.NewEngine(tts.Config{
			Voice: envOr("AURA_VOICE", "en"),
			Rate:  envInt("AURA_RATE", 150),
		})
		if err != nil {
			log.Error("Failed to init speech engine", "err", err)
			os.Exit(1)
		}
		defer engine.Close()

		speaker = engine
		if envBool("AURA_DUCK") {
			speaker = &voice.Ducked{
				Out:    engine,
				Ducker: audio.NewDucker([]string{"aura", "espeak", "espeak-ng"}, 0.3, 10),
			}
		}
		log.Debug("Loaded speech engine")
	}

	var (
		queue      *voice.Queue
		recognizer voice.Transcriber
	)
	if *textMode {
		queue = voice.NewQueue(nil)
		go console.ReadLines(os.Stdin, queue.Push)
		log.Debug("Loaded console input")
	} else {
		rec := audio.NewRecorder()
		if err := rec.Init(); err != nil {
			log.Error("Failed to init audio", "err", err)
			os.Exit(1)
		}
		defer rec.Close()
		log.Debug("Loaded recorder")

		if envOr("AURA_STT", "local") == "cloud" {
			apiKey := os.Getenv("OPENAI_API_KEY")
			if apiKey == "" {
				log.Error("OPENAI_API_KEY not set")
				os.Exit(1)
			}
			recognizer = voice.NewCloud(apiKey, httpClient)
			log.Debug("Loaded cloud recognizer")
		} else {
			w, err := voice.NewWhisper(
				envOr("AURA_WHISPER_MODEL", "third_party/whisper.cpp/models/ggml-base.en.bin"),
				envOr("AURA_LANGUAGE", "en"),
			)
			if err != nil {
				log.Error("Failed to init whisper", "err", err)
				os.Exit(1)
			}
			defer w.Close()
			recognizer = w
			log.Debug("Loaded whisper")
		}

		queue = voice.NewQueue(voice.NewMic(rec, recognizer, voice.MicConfig{}))
	}

	disp := aura.NewDispatcher(aura.Deps{
		Resolver:   res,
		Launcher:   system.NewLauncher(),
		Terminator: system.NewTerminator(),
		Files:      system.NewFiles(),
		LLM:        llm,
		Input:      queue,
		Voice:      speaker,
		History:    aura.NewHistory(envInt("AURA_HISTORY", aura.DefaultContextTurns)),
		Endpoint:   ollamaURL,
	})

	session := aura.NewSession(queue, speaker, cls, disp)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var feed *bus.Client
	if busURL := os.Getenv("AURA_BUS"); busURL != "" {
		feed, err = bus.Dial(busURL, "aura")
		if err != nil {
			log.Warn("Bus unavailable", "url", busURL, "err", err)
			feed = nil
		} else {
			defer feed.Close()
			go func() {
				for {
					select {
					case <-ctx.Done():
						return
					case msg := <-feed.Messages():
						if msg.Kind == "say" && msg.Content != "" {
							queue.Push(msg.Content)
						}
					}
				}
			}()
		}
	}

	session.Observe(func(kind, payload string) {
		if feed != nil {
			feed.Publish(kind, payload)
		}
		if !*textMode && kind == aura.EventState && payload == aura.StateListening.String() {
			go notify.Chime()
		}
	})

	srv, err := ipc.Serve(*socket, func(msg ipc.ControlMessage) {
		switch msg.Cmd {
		case "stop":
			stop()
		case "say":
			if msg.Arg != "" {
				queue.Push(msg.Arg)
			}
		case "audio":
			if msg.Arg == "" {
				return
			}
			if recognizer == nil {
				log.Warn("No recognizer loaded, ignoring audio command")
				return
			}
			tctx, cancel := context.WithTimeout(ctx, 60*time.Second)
			defer cancel()

			text, err := voice.TranscribeFile(tctx, recognizer, msg.Arg)
			if err != nil {
				log.Warn("Failed to transcribe file", "path", msg.Arg, "err", err)
				return
			}
			queue.Push(text)
		default:
			log.Warn("Unknown command", "cmd", msg.Cmd)
		}
	})
	if err != nil {
		log.Error("Failed ipc server", "err", err)
		os.Exit(1)
	}
	defer srv.Close()

	log.Info("Boot up - successful")

	if err := session.Run(ctx); err != nil {
		log.Error("Session failed", "err", err)
		os.Exit(1)
	}

	log.Info("Session ended")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
