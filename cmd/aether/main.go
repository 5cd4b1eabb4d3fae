package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/aether/audio"
	"github.com/lixenwraith/aether/config"
	"github.com/lixenwraith/aether/core"
	"github.com/lixenwraith/aether/engine"
	"github.com/lixenwraith/aether/input"
	"github.com/lixenwraith/aether/parameter"
	"github.com/lixenwraith/aether/render"
	"github.com/lixenwraith/aether/session"
	"github.com/lixenwraith/aether/status"
)

func main() {
	// Restore the terminal before the stack trace if anything on this goroutine panics
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	opts, err := parseFlags(newFlagSet("aether", os.Stderr), os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "aether: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if logFile := setupLogging(opts.logPath); logFile != nil {
		defer logFile.Close()
	}
	logger := log.Default()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	opts.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Printf("seed %d", seed)

	// Opening a FIFO waits for its writer, so this happens before the screen takes over the terminal
	var transcripts io.ReadCloser
	if opts.transcripts != "" {
		if transcripts, err = openTranscripts(opts.transcripts); err != nil {
			return err
		}
	}

	// Audio is optional: every failure degrades to silence
	var (
		sounds *audio.SoundManager
		player audio.Player
	)
	if cfg.Audio.Enabled {
		sounds = audio.NewSoundManager()
		if err := sounds.Initialize(); err != nil {
			logger.Printf("audio unavailable: %v (continuing without audio)", err)
			sounds = nil
		} else {
			player = sounds
		}
	}

	opt := session.Options{
		Thoughts:          cfg.Thoughts,
		Stars:             cfg.Stars,
		Seed:              seed,
		Generator:         newGenerator(cfg.LLM, logger),
		Speaker:           newSpeaker(cfg.Speech, player, logger),
		SpeakAll:          cfg.Speech.SpeakAll,
		GenerationTimeout: cfg.LLM.Timeout,
		SpeechTimeout:     cfg.Speech.Timeout,
		FSMPath:           cfg.Scene.FSMPath,
		Clock:             engine.NewMonotonicTimeProvider(),
		Logger:            logger,
		Registry:          status.NewRegistry(),
	}
	if sounds != nil && cfg.Audio.Cues {
		opt.Sounds = sounds
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	core.SetCrashScreen(screen)
	screen.HideCursor()
	screen.Clear()

	opt.Cols, opt.Rows = screen.Size()
	sess, err := session.New(opt)
	if err != nil {
		core.SetCrashScreen(nil)
		screen.Fini()
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &app{
		screen:   screen,
		sess:     sess,
		renderer: render.NewRenderer(screen, cfg.Render, opt.Registry, int64(seed)),
		machine:  input.NewMachine(parameter.InputMaxLength),
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}

	a.draw(time.Now())
	sess.Start()
	if transcripts != nil {
		a.listen(input.NewLineTranscriber(transcripts))
	}

	a.run()

	// Shutdown: stop producers, then release the devices
	a.stop()
	if transcripts != nil {
		transcripts.Close()
	}
	sess.Close()
	if sounds != nil {
		sounds.Cleanup()
	}
	core.SetCrashScreen(nil)
	screen.Fini()
	logger.Printf("exit")
	return nil
}

func openTranscripts(path string) (io.ReadCloser, error) {
	if path == "-" {
		return os.Stdin, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("transcripts: %w", err)
	}
	return f, nil
}
