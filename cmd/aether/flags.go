package main

import (
	"flag"
	"io"

	"github.com/lixenwraith/aether/config"
)

// options are the command-line overrides, applied over the config file
type options struct {
	configPath  string
	logPath     string
	debug       bool
	seed        uint64
	model       string
	speech      string
	speakAll    bool
	noAudio     bool
	noHaze      bool
	fsmPath     string
	transcripts string
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var o options
	fs.StringVar(&o.configPath, "config", "", "TOML configuration file")
	fs.StringVar(&o.logPath, "log", "", "log file (default: none, or aether.log in the temp dir with -debug)")
	fs.BoolVar(&o.debug, "debug", false, "enable logging and show the metrics HUD")
	fs.Uint64Var(&o.seed, "seed", 0, "simulation seed, 0 for time-based")
	fs.StringVar(&o.model, "model", "", "LLM model slug")
	fs.StringVar(&o.speech, "speech", "", "speech provider: none, elevenlabs, openai")
	fs.BoolVar(&o.speakAll, "speak-all", false, "speak replies to typed input too")
	fs.BoolVar(&o.noAudio, "no-audio", false, "disable audio output")
	fs.BoolVar(&o.noHaze, "no-haze", false, "disable the backdrop haze")
	fs.StringVar(&o.fsmPath, "fsm", "", "scene graph TOML replacing the embedded one")
	fs.StringVar(&o.transcripts, "transcripts", "", "file or FIFO of voice transcripts, one per line; - for stdin")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.debug && o.logPath == "" {
		o.logPath = defaultLogPath()
	}
	return o, nil
}

// apply overlays the flags that were set
func (o options) apply(cfg *config.Config) {
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	if o.model != "" {
		cfg.LLM.Model = o.model
	}
	if o.speech != "" {
		cfg.Speech.Provider = config.Provider(o.speech)
	}
	if o.speakAll {
		cfg.Speech.SpeakAll = true
	}
	if o.noAudio {
		cfg.Audio.Enabled = false
	}
	if o.noHaze {
		cfg.Render.Haze = false
	}
	if o.fsmPath != "" {
		cfg.Scene.FSMPath = o.fsmPath
	}
	if o.debug {
		cfg.Render.HUD = true
	}
}

// newFlagSet returns a flag set that reports parse errors instead of exiting
func newFlagSet(name string, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	return fs
}
